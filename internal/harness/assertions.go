package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/XTiNCT-7/oop/internal/employee"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s employee=%d %s\n", event.Seq, event.Op, event.Employee, event.Outcome)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against the result and returns
// the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertFinalState:
			err = assertFinalState(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func matchesEvent(event TraceEvent, op string, employeeID int) bool {
	return event.Op == op && (employeeID == 0 || event.Employee == employeeID)
}

// assertTraceContains checks that an op was performed, on the given
// employee if one is set.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matchesEvent(event, a.Op, a.Employee) {
			return nil
		}
	}

	expected := a.Op
	if a.Employee != 0 {
		expected = fmt.Sprintf("%s on employee %d", a.Op, a.Employee)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that ops appear in the given order.
// Ops don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	// First position of each op, 1-indexed so 0 means absent.
	positions := make(map[string]int)
	for i, event := range trace {
		if positions[event.Op] == 0 {
			positions[event.Op] = i + 1
		}
	}

	for _, op := range a.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Ops); i++ {
		prev, curr := a.Ops[i-1], a.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that an op was performed exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if matchesEvent(event, a.Op, a.Employee) {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%s performed %d times", a.Op, a.Count),
			Actual:   fmt.Sprintf("performed %d times", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState compares employee fields after the run (subset match).
func assertFinalState(result *Result, a Assertion) error {
	if result.Roster == nil {
		return &AssertionError{Type: AssertFinalState, Expected: "a roster", Actual: "none"}
	}

	e, ok := result.Roster.Lookup(a.Employee)
	if !ok {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("employee %d", a.Employee),
			Actual:   "not in roster",
		}
	}

	state := StateOf(e)

	fields := make([]string, 0, len(a.Expect))
	for field := range a.Expect {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		want := a.Expect[field]
		got, exists := state[field]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("employee %d field %s = %v", a.Employee, field, want),
				Actual:   fmt.Sprintf("field %s not available for %s employee", field, e.Kind()),
			}
		}
		if !valuesEqual(want, got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("employee %d field %s = %v", a.Employee, field, want),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
	}
	return nil
}

// StateOf returns the observable fields of an employee.
func StateOf(e employee.Employee) map[string]interface{} {
	state := map[string]interface{}{
		"id":   e.ID(),
		"name": e.Name(),
		"kind": string(e.Kind()),
		"pay":  e.CalculatePay().Amount,
	}

	switch v := e.(type) {
	case *employee.Salaried:
		state["salary"] = v.Salary()
		state["role"] = string(v.Role())
		state["paid_leave"] = v.LeaveBalance(employee.LeavePaid)
		state["casual_leave"] = v.LeaveBalance(employee.LeaveCasual)
	case *employee.Hourly:
		state["hourly_rate"] = v.HourlyRate()
		state["hours_worked"] = v.HoursWorked()
	}
	return state
}

// valuesEqual compares YAML-decoded expectations with state values,
// treating all numbers as float64.
func valuesEqual(want, got interface{}) bool {
	wn, wok := toFloat(want)
	gn, gok := toFloat(got)
	if wok && gok {
		return wn == gn
	}
	return fmt.Sprint(want) == fmt.Sprint(got)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
