package employee

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies the employment variant.
type Kind string

const (
	// KindPermanent is a salaried employee.
	KindPermanent Kind = "permanent"

	// KindContract is an hourly employee.
	KindContract Kind = "contract"
)

// ValidKinds defines the allowed employment variants.
var ValidKinds = []Kind{KindPermanent, KindContract}

// Employee is the capability shared by every variant.
type Employee interface {
	ID() int
	Name() string
	Kind() Kind

	// Display returns a line identifying the employee.
	Display() string

	// CalculatePay computes this period's pay from the current state.
	CalculatePay() Statement
}

// Statement is the outcome of a pay calculation.
type Statement struct {
	Amount  float64
	Summary string
}

func (s Statement) String() string {
	return s.Summary
}

// Record is the encapsulated identity embedded by every variant.
// The zero value is not valid; use NewRecord.
type Record struct {
	id   int
	name string
}

// NewRecord validates id and name and returns a record holding them.
func NewRecord(id int, name string) (*Record, error) {
	r := &Record{}
	if err := r.SetID(id); err != nil {
		return nil, err
	}
	if err := r.SetName(name); err != nil {
		return nil, err
	}
	return r, nil
}

// ID returns the employee id.
func (r *Record) ID() int { return r.id }

// Name returns the employee name.
func (r *Record) Name() string { return r.name }

// SetID replaces the id. Ids must be greater than 0.
func (r *Record) SetID(id int) error {
	if id <= 0 {
		return newValidationError("id", "must be greater than 0")
	}
	r.id = id
	return nil
}

// SetName replaces the name. The name is stored in NFC form and must
// contain at least one non-whitespace character.
func (r *Record) SetName(name string) error {
	name = norm.NFC.String(name)
	if strings.TrimSpace(name) == "" {
		return newValidationError("name", "cannot be empty")
	}
	r.name = name
	return nil
}

// Display returns "Id: <id>, Name: <name>".
func (r *Record) Display() string {
	return fmt.Sprintf("Id: %d, Name: %s", r.id, r.name)
}

func (r *Record) String() string {
	return r.Display()
}

// FormatAmount renders a monetary amount in its shortest exact decimal form.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newValidationError(field, "must be a finite number")
	}
	if v < 0 {
		return newValidationError(field, "cannot be negative")
	}
	return nil
}
