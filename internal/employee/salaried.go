package employee

import "fmt"

// Role is a salaried employee's position in the reporting line.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
)

// Salaried is a permanent employee paid a fixed salary per period.
type Salaried struct {
	Record

	salary float64
	role   Role

	paidLeave    int
	casualLeave  int
	subordinates []Employee
}

var (
	_ Employee   = (*Salaried)(nil)
	_ LeaveTaker = (*Salaried)(nil)
)

// NewSalaried returns a salaried employee with the Employee role and full
// leave balances.
func NewSalaried(id int, name string, salary float64) (*Salaried, error) {
	r, err := NewRecord(id, name)
	if err != nil {
		return nil, err
	}
	s := &Salaried{
		Record:      *r,
		role:        RoleEmployee,
		paidLeave:   LeaveAllowance,
		casualLeave: LeaveAllowance,
	}
	if err := s.SetSalary(salary); err != nil {
		return nil, err
	}
	return s, nil
}

// Kind returns KindPermanent.
func (s *Salaried) Kind() Kind { return KindPermanent }

// Salary returns the fixed period salary.
func (s *Salaried) Salary() float64 { return s.salary }

// SetSalary replaces the salary. Negative salaries are rejected.
func (s *Salaried) SetSalary(salary float64) error {
	if err := checkNonNegative("salary", salary); err != nil {
		return err
	}
	s.salary = salary
	return nil
}

// Role returns the employee's role.
func (s *Salaried) Role() Role { return s.role }

// SetRole replaces the role.
func (s *Salaried) SetRole(role Role) error {
	switch role {
	case RoleEmployee, RoleManager:
		s.role = role
		return nil
	default:
		return newValidationError("role", fmt.Sprintf("must be %q or %q", RoleEmployee, RoleManager))
	}
}

// CalculatePay reports the flat salary.
func (s *Salaried) CalculatePay() Statement {
	return Statement{
		Amount:  s.salary,
		Summary: fmt.Sprintf("Employee %s earns a fixed salary of $%s", s.name, FormatAmount(s.salary)),
	}
}

// CalculatePayWithBonus reports salary + bonus.
func (s *Salaried) CalculatePayWithBonus(bonus float64) Statement {
	total := s.salary + bonus
	return Statement{
		Amount: total,
		Summary: fmt.Sprintf("Employee %s earns a salary of $%s with bonus, total: $%s",
			s.name, FormatAmount(s.salary), FormatAmount(total)),
	}
}

// CalculatePayWithBonusAndDeduction reports salary + bonus - deduction.
func (s *Salaried) CalculatePayWithBonusAndDeduction(bonus, deduction float64) Statement {
	total := s.salary + bonus - deduction
	return Statement{
		Amount: total,
		Summary: fmt.Sprintf("Employee %s earns a salary of $%s, bonus: $%s, deduction: $%s, total: $%s",
			s.name, FormatAmount(s.salary), FormatAmount(bonus), FormatAmount(deduction), FormatAmount(total)),
	}
}

// AddSubordinate places e under this employee. Only managers may approve
// leave for their subordinates, but any salaried employee can hold the list.
func (s *Salaried) AddSubordinate(e Employee) {
	s.subordinates = append(s.subordinates, e)
}

// Subordinates returns the employees reporting to s.
func (s *Salaried) Subordinates() []Employee {
	return s.subordinates
}

func (s *Salaried) manages(e Employee) bool {
	for _, sub := range s.subordinates {
		if sub == e {
			return true
		}
	}
	return false
}
