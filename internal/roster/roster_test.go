package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XTiNCT-7/oop/internal/employee"
)

const abstractionRoster = `
employee: alice: {
	id:     3
	name:   "Alice"
	kind:   "permanent"
	salary: 50000
}
employee: bob: {
	id:           4
	name:         "Bob"
	kind:         "contract"
	hourly_rate:  20
	hours_worked: 40
}
`

func TestCompile(t *testing.T) {
	r, err := Compile("abstraction.cue", []byte(abstractionRoster))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	employees := r.Employees()
	assert.Equal(t, "Alice", employees[0].Name())
	assert.Equal(t, "Bob", employees[1].Name())

	alice, ok := r.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, employee.KindPermanent, alice.Kind())
	assert.Equal(t, 50000.0, alice.CalculatePay().Amount)

	bob, ok := r.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, 800.0, bob.CalculatePay().Amount)

	_, ok = r.Lookup(99)
	assert.False(t, ok)
}

func TestCompileManagerReports(t *testing.T) {
	src := `
employee: frank: {
	id: 106, name: "Frank", kind: "permanent", salary: 95000
	role: "Manager"
	reports: [107, 108]
}
employee: grace: {id: 107, name: "Grace", kind: "permanent", salary: 72000}
employee: henry: {id: 108, name: "Henry", kind: "permanent", salary: 71000}
`
	r, err := Compile("leave.cue", []byte(src))
	require.NoError(t, err)

	e, ok := r.Lookup(106)
	require.True(t, ok)
	frank, ok := e.(*employee.Salaried)
	require.True(t, ok)
	assert.Equal(t, employee.RoleManager, frank.Role())
	require.Len(t, frank.Subordinates(), 2)
	assert.Equal(t, "Grace", frank.Subordinates()[0].Name())

	grace, _ := r.Lookup(107)
	assert.Equal(t, employee.RoleEmployee, grace.(*employee.Salaried).Role())
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			name: "syntax error",
			src:  `employee: x: {id: 1,,}`,
			code: ErrCodeCompile,
		},
		{
			name: "zero id",
			src:  `employee: x: {id: 0, name: "X", kind: "permanent", salary: 1}`,
			code: ErrCodeSchema,
		},
		{
			name: "blank name",
			src:  `employee: x: {id: 1, name: "   ", kind: "permanent", salary: 1}`,
			code: ErrCodeSchema,
		},
		{
			name: "unknown kind",
			src:  `employee: x: {id: 1, name: "X", kind: "intern"}`,
			code: ErrCodeSchema,
		},
		{
			name: "negative salary",
			src:  `employee: x: {id: 1, name: "X", kind: "permanent", salary: -5}`,
			code: ErrCodeSchema,
		},
		{
			name: "unknown field",
			src:  `employee: x: {id: 1, name: "X", kind: "permanent", salry: 5}`,
			code: ErrCodeSchema,
		},
		{
			name: "missing salary",
			src:  `employee: x: {id: 1, name: "X", kind: "permanent"}`,
			code: ErrCodeMissingField,
		},
		{
			name: "missing hours",
			src:  `employee: x: {id: 1, name: "X", kind: "contract", hourly_rate: 10}`,
			code: ErrCodeMissingField,
		},
		{
			name: "salary on contract",
			src:  `employee: x: {id: 1, name: "X", kind: "contract", hourly_rate: 10, hours_worked: 1, salary: 3}`,
			code: ErrCodeKindMismatch,
		},
		{
			name: "hours on permanent",
			src:  `employee: x: {id: 1, name: "X", kind: "permanent", salary: 3, hours_worked: 1}`,
			code: ErrCodeKindMismatch,
		},
		{
			name: "duplicate id",
			src: `
employee: a: {id: 1, name: "A", kind: "permanent", salary: 1}
employee: b: {id: 1, name: "B", kind: "permanent", salary: 1}
`,
			code: ErrCodeDuplicateID,
		},
		{
			name: "unknown report",
			src:  `employee: a: {id: 1, name: "A", kind: "permanent", salary: 1, role: "Manager", reports: [2]}`,
			code: ErrCodeUnknownReport,
		},
		{
			name: "no employees",
			src:  `other: 1`,
			code: ErrCodeEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("roster.cue", []byte(tt.src))
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code, "error: %v", err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "permanent.cue"), []byte(`
employee: alice: {id: 3, name: "Alice", kind: "permanent", salary: 50000}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contract.cue"), []byte(`
employee: bob: {id: 4, name: "Bob", kind: "contract", hourly_rate: 20, hours_worked: 40}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))

	r, errs := LoadDir(dir, LoadModeFailFast)
	require.Empty(t, errs)
	assert.Equal(t, 2, r.Len())

	_, ok := r.Lookup(3)
	assert.True(t, ok)
	_, ok = r.Lookup(4)
	assert.True(t, ok)
}

func TestLoadDirCollectsAllErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(`
employee: a: {id: 1, name: "A", kind: "permanent"}
employee: b: {id: 2, name: "B", kind: "contract", hourly_rate: 1}
`), 0644))

	_, errs := LoadDir(dir, LoadModeCollectAll)
	require.Len(t, errs, 2)

	_, errs = LoadDir(dir, LoadModeFailFast)
	require.Len(t, errs, 1)
}

func TestLoadDirErrors(t *testing.T) {
	_, errs := LoadDir(filepath.Join(t.TempDir(), "missing"), LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNotFound, errs[0].(*LoadError).Code)

	_, errs = LoadDir(t.TempDir(), LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNoFiles, errs[0].(*LoadError).Code)

	file := filepath.Join(t.TempDir(), "roster.cue")
	require.NoError(t, os.WriteFile(file, []byte(abstractionRoster), 0644))
	_, errs = LoadDir(file, LoadModeFailFast)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "not a directory")
}

func TestLoadErrorFormat(t *testing.T) {
	err := &LoadError{Code: ErrCodeGeneric, Message: "boom"}
	assert.Equal(t, "E001: boom", err.Error())
}
