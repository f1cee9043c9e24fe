package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/XTiNCT-7/oop/internal/employee"
	"github.com/XTiNCT-7/oop/internal/roster"
)

// Harness executes scenarios. A Harness is not safe for concurrent use.
type Harness struct {
	logger *slog.Logger
	seq    int64
}

// New creates a harness that logs step progress to logger.
// A nil logger discards all logs.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with logging suppressed.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario against a freshly compiled roster.
//
// Execution flow:
// 1. Compile the scenario roster
// 2. Perform each step, printing to the transcript
// 3. Evaluate assertions against trace and final state
//
// A step error without a matching expect.error aborts the run; the error
// is returned together with a nil result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	h.seq = 0

	name := scenario.Roster
	if name == "" {
		name = scenario.Name + ".cue"
	}
	r, err := roster.Compile(name, scenario.RosterSource)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	result := NewResult()
	result.Roster = r
	if scenario.Title != "" {
		result.Print(scenario.Title)
	}

	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, r, result); err != nil {
			return nil, err
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	h.logger.Debug("scenario completed",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

// executeStep performs one step and records it in the trace.
func (h *Harness) executeStep(i int, step Step, r *roster.Roster, result *Result) error {
	h.seq++
	event := TraceEvent{Seq: h.seq, Op: step.Op, Employee: step.Employee, Outcome: OutcomeOK}

	e, ok := r.Lookup(step.Employee)
	if !ok {
		return fmt.Errorf("step %d (%s): unknown employee %d", i, step.Op, step.Employee)
	}

	lines, amount, err := perform(e, r, step)

	var expectErr string
	if step.Expect != nil {
		expectErr = step.Expect.Error
	}

	switch {
	case err != nil && expectErr == "":
		h.logger.Error("step failed", "step", i, "op", step.Op, "employee", step.Employee, "error", err)
		return fmt.Errorf("step %d (%s): %w", i, step.Op, err)

	case err != nil:
		event.Outcome = OutcomeRejected
		result.Print("Rejected: " + err.Error())
		if !strings.Contains(err.Error(), expectErr) {
			result.AddError(fmt.Sprintf("step %d (%s): expected error containing %q, got %q", i, step.Op, expectErr, err.Error()))
		}

	case expectErr != "":
		result.Print(lines...)
		result.AddError(fmt.Sprintf("step %d (%s): expected error containing %q, got none", i, step.Op, expectErr))

	default:
		result.Print(lines...)
	}

	if amount != nil {
		event.Amount = amount
		if step.Expect != nil && step.Expect.Amount != nil && *step.Expect.Amount != *amount {
			result.AddError(fmt.Sprintf("step %d (%s): expected amount %s, got %s",
				i, step.Op, employee.FormatAmount(*step.Expect.Amount), employee.FormatAmount(*amount)))
		}
	}

	result.Trace = append(result.Trace, event)
	h.logger.Debug("step completed", "step", i, "op", step.Op, "employee", step.Employee, "outcome", event.Outcome)
	return nil
}

type identity interface {
	SetID(id int) error
	SetName(name string) error
}

// perform runs an operation and returns the lines it prints and, for pay,
// the computed amount.
func perform(e employee.Employee, r *roster.Roster, step Step) ([]string, *float64, error) {
	switch step.Op {
	case OpDisplay:
		return []string{e.Display()}, nil, nil

	case OpPay:
		stmt, err := calculatePay(e, step.Args)
		if err != nil {
			return nil, nil, err
		}
		amount := stmt.Amount
		return []string{stmt.Summary}, &amount, nil

	case OpSetID:
		id, err := intArg(step.Args, "id")
		if err != nil {
			return nil, nil, err
		}
		if err := e.(identity).SetID(id); err != nil {
			return nil, nil, err
		}
		return []string{"Updated Employee: " + e.Display()}, nil, nil

	case OpSetName:
		name, err := stringArg(step.Args, "name")
		if err != nil {
			return nil, nil, err
		}
		if err := e.(identity).SetName(name); err != nil {
			return nil, nil, err
		}
		return []string{"Updated Employee: " + e.Display()}, nil, nil

	case OpSubmitLeave, OpCancelLeave:
		taker, ok := e.(employee.LeaveTaker)
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w", e.Name(), employee.ErrNoLeaveEntitlement)
		}
		kind, days, err := leaveArgs(step.Args)
		if err != nil {
			return nil, nil, err
		}
		var out employee.LeaveOutcome
		if step.Op == OpSubmitLeave {
			out, err = taker.SubmitLeave(kind, days)
		} else {
			out, err = taker.CancelLeave(kind, days)
		}
		if err != nil {
			return nil, nil, err
		}
		return []string{out.String()}, nil, nil

	case OpApproveLeave:
		manager, ok := e.(*employee.Salaried)
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w", e.Name(), employee.ErrNotAuthorized)
		}
		sub, err := intArg(step.Args, "subordinate")
		if err != nil {
			return nil, nil, err
		}
		subordinate, known := r.Lookup(sub)
		if !known {
			return nil, nil, fmt.Errorf("unknown employee %d", sub)
		}
		days, err := intArg(step.Args, "days")
		if err != nil {
			return nil, nil, err
		}
		approval, err := manager.ApproveLeaveFor(subordinate, days)
		if err != nil {
			return nil, nil, err
		}
		lines := make([]string, 0, len(approval.Attempts)+1)
		for _, attempt := range approval.Attempts {
			lines = append(lines, attempt.String())
		}
		return append(lines, approval.String()), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

// calculatePay picks the pay adjustment matching the supplied argument
// names, the way an overloaded call would be resolved.
func calculatePay(e employee.Employee, args map[string]interface{}) (employee.Statement, error) {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	signature := strings.Join(keys, ",")

	if signature == "" {
		return e.CalculatePay(), nil
	}

	switch v := e.(type) {
	case *employee.Salaried:
		switch signature {
		case "bonus":
			bonus, err := floatArg(args, "bonus")
			if err != nil {
				return employee.Statement{}, err
			}
			return v.CalculatePayWithBonus(bonus), nil
		case "bonus,deduction":
			bonus, err := floatArg(args, "bonus")
			if err != nil {
				return employee.Statement{}, err
			}
			deduction, err := floatArg(args, "deduction")
			if err != nil {
				return employee.Statement{}, err
			}
			return v.CalculatePayWithBonusAndDeduction(bonus, deduction), nil
		}

	case *employee.Hourly:
		switch signature {
		case "extra_hours":
			extra, err := intArg(args, "extra_hours")
			if err != nil {
				return employee.Statement{}, err
			}
			return v.CalculatePayWithExtraHours(extra), nil
		case "hourly_bonus,overtime_hours":
			bonus, err := floatArg(args, "hourly_bonus")
			if err != nil {
				return employee.Statement{}, err
			}
			overtime, err := intArg(args, "overtime_hours")
			if err != nil {
				return employee.Statement{}, err
			}
			return v.CalculatePayWithOvertime(bonus, overtime), nil
		}
	}

	return employee.Statement{}, fmt.Errorf("no pay adjustment for %s employee with args [%s]", e.Kind(), signature)
}

func leaveArgs(args map[string]interface{}) (employee.LeaveKind, int, error) {
	kindStr, err := stringArg(args, "kind")
	if err != nil {
		return "", 0, err
	}
	kind, err := employee.ParseLeaveKind(kindStr)
	if err != nil {
		return "", 0, err
	}
	days, err := intArg(args, "days")
	if err != nil {
		return "", 0, err
	}
	return kind, days, nil
}

// YAML decodes integers as int and everything else numeric as float64.

func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
		return 0, fmt.Errorf("arg %q: expected an integer, got %v", key, v)
	case nil:
		return 0, fmt.Errorf("arg %q is required", key)
	default:
		return 0, fmt.Errorf("arg %q: expected an integer, got %T", key, v)
	}
}

func floatArg(args map[string]interface{}, key string) (float64, error) {
	switch v := args[key].(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("arg %q is required", key)
	default:
		return 0, fmt.Errorf("arg %q: expected a number, got %T", key, v)
	}
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("arg %q is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q: expected a string, got %T", key, v)
	}
	return s, nil
}
