package harness

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XTiNCT-7/oop/internal/employee"
)

const leaveRoster = `
employee: frank: {
	id: 106, name: "Frank", kind: "permanent", salary: 95000
	role: "Manager"
	reports: [107, 105]
}
employee: grace: {id: 107, name: "Grace", kind: "permanent", salary: 72000}
employee: eve: {id: 105, name: "Eve", kind: "contract", hourly_rate: 60, hours_worked: 8}
employee: charlie: {id: 103, name: "Charlie", kind: "permanent", salary: 90000}
`

func amount(v float64) *float64 { return &v }

func newScenario(src string, steps []Step, assertions ...Assertion) *Scenario {
	if len(assertions) == 0 {
		assertions = []Assertion{{Type: AssertTraceCount, Op: OpDisplay, Count: 0}}
	}
	return &Scenario{
		Name:         "test",
		Description:  "test",
		RosterSource: []byte(src),
		Steps:        steps,
		Assertions:   assertions,
	}
}

func TestRun_PayOverloads(t *testing.T) {
	src := `
employee: bob: {id: 9, name: "Bob", kind: "permanent", salary: 25}
employee: alice: {id: 10, name: "Alice", kind: "contract", hourly_rate: 20, hours_worked: 15}
`
	steps := []Step{
		{Op: OpPay, Employee: 9, Expect: &ExpectClause{Amount: amount(25)}},
		{Op: OpPay, Employee: 9, Args: map[string]interface{}{"bonus": 2}, Expect: &ExpectClause{Amount: amount(27)}},
		{Op: OpPay, Employee: 9, Args: map[string]interface{}{"bonus": 5.0, "deduction": 3}, Expect: &ExpectClause{Amount: amount(27)}},
		{Op: OpPay, Employee: 10, Expect: &ExpectClause{Amount: amount(300)}},
		{Op: OpPay, Employee: 10, Args: map[string]interface{}{"extra_hours": 5}, Expect: &ExpectClause{Amount: amount(400)}},
		{Op: OpPay, Employee: 10, Args: map[string]interface{}{"hourly_bonus": 10.0, "overtime_hours": 2}, Expect: &ExpectClause{Amount: amount(510)}},
	}

	result, err := Run(newScenario(src, steps))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 6)

	for i, event := range result.Trace {
		assert.Equal(t, int64(i+1), event.Seq)
		assert.Equal(t, OutcomeOK, event.Outcome)
		require.NotNil(t, event.Amount)
	}
	assert.Equal(t, 510.0, *result.Trace[5].Amount)

	assert.Equal(t, "Employee Bob earns a salary of $25 with bonus, total: $27", result.Transcript[1])
	assert.Equal(t, "Contract Employee Alice with overtime and bonus earned $510", result.Transcript[5])

	// Overlays leave stored state untouched.
	alice, _ := result.Roster.Lookup(10)
	assert.Equal(t, 15, alice.(*employee.Hourly).HoursWorked())
}

func TestRun_AmountMismatchFails(t *testing.T) {
	steps := []Step{{Op: OpPay, Employee: 4, Expect: &ExpectClause{Amount: amount(801)}}}

	result, err := Run(newScenario(testRoster, steps))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected amount 801, got 800")
}

func TestRun_NoMatchingPayAdjustment(t *testing.T) {
	steps := []Step{{Op: OpPay, Employee: 4, Args: map[string]interface{}{"bonus": 1}}}

	_, err := Run(newScenario(testRoster, steps))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pay adjustment for contract employee with args [bonus]")
}

func TestRun_SettersAndExpectedRejections(t *testing.T) {
	steps := []Step{
		{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": "Alicia"}},
		{Op: OpSetID, Employee: 3, Args: map[string]interface{}{"id": 0}, Expect: &ExpectClause{Error: "must be greater than 0"}},
		{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": "   "}, Expect: &ExpectClause{Error: "cannot be empty"}},
		{Op: OpSetID, Employee: 3, Args: map[string]interface{}{"id": 30}},
	}
	assertions := []Assertion{
		{Type: AssertFinalState, Employee: 3, Expect: map[string]interface{}{"id": 30, "name": "Alicia"}},
		{Type: AssertTraceCount, Op: OpSetID, Count: 2},
	}

	result, err := Run(newScenario(testRoster, steps, assertions...))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, []string{
		"Updated Employee: Id: 3, Name: Alicia",
		"Rejected: invalid id: must be greater than 0",
		"Rejected: invalid name: cannot be empty",
		"Updated Employee: Id: 30, Name: Alicia",
	}, result.Transcript)
	assert.Equal(t, OutcomeRejected, result.Trace[1].Outcome)
	assert.Equal(t, OutcomeRejected, result.Trace[2].Outcome)
}

func TestRun_UnexpectedValidationErrorAborts(t *testing.T) {
	steps := []Step{
		{Op: OpDisplay, Employee: 3},
		{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": ""}},
		{Op: OpDisplay, Employee: 4},
	}

	result, err := Run(newScenario(testRoster, steps))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, employee.IsValidationError(err))
	assert.Contains(t, err.Error(), "step 1 (set_name)")
}

func TestRun_ExpectedErrorThatDoesNotHappen(t *testing.T) {
	steps := []Step{
		{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": "Ok"}, Expect: &ExpectClause{Error: "cannot be empty"}},
	}

	result, err := Run(newScenario(testRoster, steps))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "got none")
}

func TestRun_ExpectedErrorWithWrongMessage(t *testing.T) {
	steps := []Step{
		{Op: OpSetID, Employee: 3, Args: map[string]interface{}{"id": -1}, Expect: &ExpectClause{Error: "cannot be empty"}},
	}

	result, err := Run(newScenario(testRoster, steps))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], `expected error containing "cannot be empty"`)
}

func TestRun_Leave(t *testing.T) {
	steps := []Step{
		{Op: OpSubmitLeave, Employee: 107, Args: map[string]interface{}{"kind": "paid", "days": 2}},
		{Op: OpSubmitLeave, Employee: 107, Args: map[string]interface{}{"kind": "casual", "days": 1}},
		{Op: OpCancelLeave, Employee: 107, Args: map[string]interface{}{"kind": "casual", "days": 1}},
		{Op: OpApproveLeave, Employee: 106, Args: map[string]interface{}{"subordinate": 107, "days": 3}},
		{Op: OpApproveLeave, Employee: 103, Args: map[string]interface{}{"subordinate": 107, "days": 1}, Expect: &ExpectClause{Error: "not authorized"}},
		{Op: OpApproveLeave, Employee: 106, Args: map[string]interface{}{"subordinate": 105, "days": 1}, Expect: &ExpectClause{Error: "no leave entitlement"}},
		{Op: OpApproveLeave, Employee: 106, Args: map[string]interface{}{"subordinate": 103, "days": 1}, Expect: &ExpectClause{Error: "not a subordinate"}},
		{Op: OpSubmitLeave, Employee: 105, Args: map[string]interface{}{"kind": "paid", "days": 1}, Expect: &ExpectClause{Error: "no leave entitlement"}},
	}
	assertions := []Assertion{
		{Type: AssertFinalState, Employee: 107, Expect: map[string]interface{}{"paid_leave": 10, "casual_leave": 15}},
		{Type: AssertFinalState, Employee: 106, Expect: map[string]interface{}{"role": "Manager", "paid_leave": 15}},
		{Type: AssertTraceOrder, Ops: []string{OpSubmitLeave, OpCancelLeave, OpApproveLeave}},
	}

	result, err := Run(newScenario(leaveRoster, steps, assertions...))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, []string{
		"Grace has submitted 2 days of paid leave.",
		"Grace has submitted 1 days of casual leave.",
		"Grace has canceled 1 days of casual leave.",
		"Grace has submitted 3 days of paid leave.",
		"Frank approved 3 days of paid leave for Grace.",
		"Rejected: Charlie: not authorized to approve leave",
		"Rejected: Eve: no leave entitlement",
		"Rejected: Frank does not manage employee 103: not a subordinate",
		"Rejected: Eve: no leave entitlement",
	}, result.Transcript)
}

const teamRoster = `
employee: frank: {
	id: 106, name: "Frank", kind: "permanent", salary: 95000
	role: "Manager"
	reports: [107, 108]
}
employee: grace: {id: 107, name: "Grace", kind: "permanent", salary: 72000}
employee: henry: {id: 108, name: "Henry", kind: "permanent", salary: 68000}
`

func TestRun_ApproveLeaveAfterSetID(t *testing.T) {
	tests := []struct {
		name  string
		newID int
	}{
		{"fresh id", 200},
		{"id of another subordinate", 108},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Steps keep using Grace's declared id after it changes.
			steps := []Step{
				{Op: OpSetID, Employee: 107, Args: map[string]interface{}{"id": tt.newID}},
				{Op: OpApproveLeave, Employee: 106, Args: map[string]interface{}{"subordinate": 107, "days": 2}},
			}
			assertions := []Assertion{
				{Type: AssertFinalState, Employee: 107, Expect: map[string]interface{}{"name": "Grace", "paid_leave": 13}},
				{Type: AssertFinalState, Employee: 108, Expect: map[string]interface{}{"name": "Henry", "paid_leave": 15}},
			}

			result, err := Run(newScenario(teamRoster, steps, assertions...))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Equal(t, []string{
				fmt.Sprintf("Updated Employee: Id: %d, Name: Grace", tt.newID),
				"Grace has submitted 2 days of paid leave.",
				"Frank approved 2 days of paid leave for Grace.",
			}, result.Transcript)
		})
	}
}

func TestRun_ApproveLeaveReportsEveryAttempt(t *testing.T) {
	steps := []Step{
		{Op: OpApproveLeave, Employee: 106, Args: map[string]interface{}{"subordinate": 108, "days": 16}},
	}

	result, err := Run(newScenario(teamRoster, steps))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Not enough paid leaves for Henry.",
		"Not enough casual leaves for Henry.",
		"Frank could not approve 16 days of leave for Henry.",
	}, result.Transcript)
}

func TestRun_UnknownEmployee(t *testing.T) {
	_, err := Run(newScenario(testRoster, []Step{{Op: OpDisplay, Employee: 77}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown employee 77")
}

func TestRun_BadArgs(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"missing id", Step{Op: OpSetID, Employee: 3}, `arg "id" is required`},
		{"fractional id", Step{Op: OpSetID, Employee: 3, Args: map[string]interface{}{"id": 1.5}}, "expected an integer"},
		{"name not string", Step{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": 5}}, "expected a string"},
		{"bonus not number", Step{Op: OpPay, Employee: 3, Args: map[string]interface{}{"bonus": "x"}}, "expected a number"},
		{"bad leave kind", Step{Op: OpSubmitLeave, Employee: 3, Args: map[string]interface{}{"kind": "sick", "days": 1}}, "invalid leave kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(newScenario(testRoster, []Step{tt.step}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_InvalidRoster(t *testing.T) {
	_, err := Run(newScenario(`employee: x: {id: 0}`, []Step{{Op: OpDisplay, Employee: 1}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load roster")
}

func TestRun_TitleAndFreshRosterPerRun(t *testing.T) {
	s := newScenario(testRoster, []Step{
		{Op: OpSetName, Employee: 3, Args: map[string]interface{}{"name": "Changed"}},
		{Op: OpDisplay, Employee: 3},
	})
	s.Title = "Encapsulation"

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Transcript, second.Transcript)
	assert.Equal(t, "Encapsulation\nUpdated Employee: Id: 3, Name: Changed\nId: 3, Name: Changed\n", second.TranscriptText())
}

func TestHarnessLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(logger).Run(newScenario(testRoster, []Step{{Op: OpDisplay, Employee: 3}}))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "step completed")
	assert.Contains(t, buf.String(), "scenario completed")
}
