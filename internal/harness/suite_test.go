package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: pays
description: x
roster: rosters/test.cue
steps: [{op: pay, employee: 4, expect: {amount: 800}}]
assertions: [{type: trace_contains, op: pay}]
`

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	createTestRoster(t, dir)
	writeScenario(t, dir, "b_pay.yaml", passingScenario)
	writeScenario(t, dir, "a_display.yml", passingScenario)
	writeScenario(t, dir, "notes.txt", "ignored")

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_display.yml"),
		filepath.Join(dir, "b_pay.yaml"),
	}, files)

	files, err = FindScenarios(dir, "b_*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b_pay.yaml")}, files)

	_, err = FindScenarios(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")

	_, err = FindScenarios(filepath.Join(dir, "missing"), "")
	assert.Error(t, err)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("demos", "golden", "leave.golden"), GoldenPath(filepath.Join("demos", "leave.yaml")))
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	createTestRoster(t, dir)
	h := New(nil)

	ok := h.RunFile(writeScenario(t, dir, "ok.yaml", passingScenario))
	assert.True(t, ok.Pass)
	assert.Equal(t, "pays", ok.Name)
	require.NotNil(t, ok.Result)

	broken := h.RunFile(writeScenario(t, dir, "broken.yaml", "name: [\n"))
	assert.False(t, broken.Pass)
	assert.Equal(t, "broken.yaml", broken.Name)
	assert.Contains(t, broken.Errors[0], "failed to load scenario")
	assert.Nil(t, broken.Result)

	aborted := h.RunFile(writeScenario(t, dir, "aborted.yaml", `
name: aborted
description: x
roster: rosters/test.cue
steps: [{op: display, employee: 99}]
assertions: [{type: trace_contains, op: display}]
`))
	assert.False(t, aborted.Pass)
	assert.Contains(t, aborted.Errors[0], "execution failed")

	var suite SuiteResult
	suite.Add(ok)
	suite.Add(broken)
	suite.Add(aborted)
	assert.Equal(t, 3, suite.Total)
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 2, suite.Failed)
}

func TestGoldenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	createTestRoster(t, dir)
	path := writeScenario(t, dir, "pays.yaml", passingScenario)

	sr := New(nil).RunFile(path)
	require.NotNil(t, sr.Result)

	exists, _, err := CheckGolden(path, sr.Result)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, UpdateGolden(path, sr.Result))
	data, err := os.ReadFile(filepath.Join(dir, "golden", "pays.golden"))
	require.NoError(t, err)
	assert.Equal(t, "Contract Employee Bob earns $800 for 40 hours of work at a rate of $20/hour\n", string(data))

	exists, match, err := CheckGolden(path, sr.Result)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, match)

	sr.Result.Print("extra")
	_, match, err = CheckGolden(path, sr.Result)
	require.NoError(t, err)
	assert.False(t, match)
}
