package employee

import "fmt"

// Hourly is a contract employee paid per hour worked.
type Hourly struct {
	Record

	hourlyRate  float64
	hoursWorked int
}

var _ Employee = (*Hourly)(nil)

// NewHourly returns an hourly employee.
func NewHourly(id int, name string, hourlyRate float64, hoursWorked int) (*Hourly, error) {
	r, err := NewRecord(id, name)
	if err != nil {
		return nil, err
	}
	h := &Hourly{Record: *r}
	if err := h.SetHourlyRate(hourlyRate); err != nil {
		return nil, err
	}
	if err := h.SetHoursWorked(hoursWorked); err != nil {
		return nil, err
	}
	return h, nil
}

// Kind returns KindContract.
func (h *Hourly) Kind() Kind { return KindContract }

// HourlyRate returns the pay per hour.
func (h *Hourly) HourlyRate() float64 { return h.hourlyRate }

// HoursWorked returns the hours worked this period.
func (h *Hourly) HoursWorked() int { return h.hoursWorked }

// SetHourlyRate replaces the rate. Negative rates are rejected.
func (h *Hourly) SetHourlyRate(rate float64) error {
	if err := checkNonNegative("hourly rate", rate); err != nil {
		return err
	}
	h.hourlyRate = rate
	return nil
}

// SetHoursWorked replaces the hours. Negative hours are rejected.
func (h *Hourly) SetHoursWorked(hours int) error {
	if hours < 0 {
		return newValidationError("hours worked", "cannot be negative")
	}
	h.hoursWorked = hours
	return nil
}

// CalculatePay reports rate * hours.
func (h *Hourly) CalculatePay() Statement {
	total := h.hourlyRate * float64(h.hoursWorked)
	return Statement{
		Amount: total,
		Summary: fmt.Sprintf("Contract Employee %s earns $%s for %d hours of work at a rate of $%s/hour",
			h.name, FormatAmount(total), h.hoursWorked, FormatAmount(h.hourlyRate)),
	}
}

// CalculatePayWithExtraHours reports rate * (hours + extraHours).
// The stored hours are not changed.
func (h *Hourly) CalculatePayWithExtraHours(extraHours int) Statement {
	total := h.hourlyRate * float64(h.hoursWorked+extraHours)
	return Statement{
		Amount:  total,
		Summary: fmt.Sprintf("Contract Employee %s with %d extra hours earned $%s", h.name, extraHours, FormatAmount(total)),
	}
}

// CalculatePayWithOvertime reports (rate + hourlyBonus) * (hours + overtimeHours).
func (h *Hourly) CalculatePayWithOvertime(hourlyBonus float64, overtimeHours int) Statement {
	total := (h.hourlyRate + hourlyBonus) * float64(h.hoursWorked+overtimeHours)
	return Statement{
		Amount:  total,
		Summary: fmt.Sprintf("Contract Employee %s with overtime and bonus earned $%s", h.name, FormatAmount(total)),
	}
}
