package employee

import "fmt"

// LeaveAllowance is the number of days each leave balance starts with.
const LeaveAllowance = 15

// LeaveKind selects a leave balance.
type LeaveKind string

const (
	LeavePaid   LeaveKind = "paid"
	LeaveCasual LeaveKind = "casual"
)

// ParseLeaveKind converts "paid" or "casual" into a LeaveKind.
func ParseLeaveKind(s string) (LeaveKind, error) {
	switch LeaveKind(s) {
	case LeavePaid, LeaveCasual:
		return LeaveKind(s), nil
	default:
		return "", newValidationError("leave kind", fmt.Sprintf("must be %q or %q", LeavePaid, LeaveCasual))
	}
}

// LeaveTaker is implemented by employees entitled to leave.
type LeaveTaker interface {
	Employee
	SubmitLeave(kind LeaveKind, days int) (LeaveOutcome, error)
	CancelLeave(kind LeaveKind, days int) (LeaveOutcome, error)
	LeaveBalance(kind LeaveKind) int
}

// LeaveOutcome describes a leave request or cancellation.
type LeaveOutcome struct {
	Employee  string
	Kind      LeaveKind
	Days      int
	Granted   bool
	Cancelled bool
	Remaining int
}

func (o LeaveOutcome) String() string {
	switch {
	case o.Cancelled:
		return fmt.Sprintf("%s has canceled %d days of %s leave.", o.Employee, o.Days, o.Kind)
	case o.Granted:
		return fmt.Sprintf("%s has submitted %d days of %s leave.", o.Employee, o.Days, o.Kind)
	default:
		return fmt.Sprintf("Not enough %s leaves for %s.", o.Kind, o.Employee)
	}
}

// Approval is the result of a manager approving a subordinate's leave.
// Attempts holds every submission tried, in order; Outcome is the last.
type Approval struct {
	Manager  string
	Attempts []LeaveOutcome
	Outcome  LeaveOutcome
}

func (a Approval) String() string {
	if !a.Outcome.Granted {
		return fmt.Sprintf("%s could not approve %d days of leave for %s.", a.Manager, a.Outcome.Days, a.Outcome.Employee)
	}
	return fmt.Sprintf("%s approved %d days of %s leave for %s.", a.Manager, a.Outcome.Days, a.Outcome.Kind, a.Outcome.Employee)
}

// LeaveBalance returns the remaining days of the given kind.
func (s *Salaried) LeaveBalance(kind LeaveKind) int {
	if kind == LeaveCasual {
		return s.casualLeave
	}
	return s.paidLeave
}

func (s *Salaried) balance(kind LeaveKind) (*int, error) {
	switch kind {
	case LeavePaid:
		return &s.paidLeave, nil
	case LeaveCasual:
		return &s.casualLeave, nil
	default:
		_, err := ParseLeaveKind(string(kind))
		return nil, err
	}
}

// SubmitLeave deducts days from the balance when enough remain. A request
// larger than the balance is refused without error and leaves it unchanged.
func (s *Salaried) SubmitLeave(kind LeaveKind, days int) (LeaveOutcome, error) {
	bal, err := s.balance(kind)
	if err != nil {
		return LeaveOutcome{}, err
	}
	if days <= 0 {
		return LeaveOutcome{}, newValidationError("leave days", "must be greater than 0")
	}

	out := LeaveOutcome{Employee: s.name, Kind: kind, Days: days}
	if *bal >= days {
		*bal -= days
		out.Granted = true
	}
	out.Remaining = *bal
	return out, nil
}

// CancelLeave returns days to the balance, capped at LeaveAllowance.
func (s *Salaried) CancelLeave(kind LeaveKind, days int) (LeaveOutcome, error) {
	bal, err := s.balance(kind)
	if err != nil {
		return LeaveOutcome{}, err
	}
	if days <= 0 {
		return LeaveOutcome{}, newValidationError("leave days", "must be greater than 0")
	}

	*bal = min(*bal+days, LeaveAllowance)
	return LeaveOutcome{
		Employee:  s.name,
		Kind:      kind,
		Days:      days,
		Cancelled: true,
		Remaining: *bal,
	}, nil
}

// ApproveLeave approves leave for the subordinate currently holding
// subordinateID. See ApproveLeaveFor.
func (s *Salaried) ApproveLeave(subordinateID, days int) (Approval, error) {
	if s.role != RoleManager {
		return Approval{}, fmt.Errorf("%s: %w", s.name, ErrNotAuthorized)
	}
	for _, e := range s.subordinates {
		if e.ID() == subordinateID {
			return s.ApproveLeaveFor(e, days)
		}
	}
	return Approval{}, fmt.Errorf("%s does not manage employee %d: %w", s.name, subordinateID, ErrNotSubordinate)
}

// ApproveLeaveFor submits leave on behalf of sub, which must be one of s's
// subordinates. Membership is by identity, so later id changes do not
// matter. Paid leave is used first; casual leave is tried when the paid
// balance is too small.
func (s *Salaried) ApproveLeaveFor(sub Employee, days int) (Approval, error) {
	if s.role != RoleManager {
		return Approval{}, fmt.Errorf("%s: %w", s.name, ErrNotAuthorized)
	}
	if !s.manages(sub) {
		return Approval{}, fmt.Errorf("%s does not manage employee %d: %w", s.name, sub.ID(), ErrNotSubordinate)
	}

	taker, ok := sub.(LeaveTaker)
	if !ok {
		return Approval{}, fmt.Errorf("%s: %w", sub.Name(), ErrNoLeaveEntitlement)
	}

	approval := Approval{Manager: s.name}
	for _, kind := range []LeaveKind{LeavePaid, LeaveCasual} {
		out, err := taker.SubmitLeave(kind, days)
		if err != nil {
			return Approval{}, err
		}
		approval.Attempts = append(approval.Attempts, out)
		approval.Outcome = out
		if out.Granted {
			break
		}
	}
	return approval, nil
}
