package roster

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/XTiNCT-7/oop/internal/employee"
)

type pendingReports struct {
	manager *employee.Salaried
	ids     []int
	pos     []cue.Value
}

// Build turns a schema-checked CUE value into a Roster.
func Build(v cue.Value, mode LoadMode) (*Roster, []error) {
	var errs []error
	fail := func(err error) bool {
		errs = append(errs, err)
		return mode == LoadModeFailFast
	}

	r := &Roster{byID: make(map[int]employee.Employee)}

	employeesVal := v.LookupPath(cue.ParsePath("employee"))
	if !employeesVal.Exists() {
		return nil, []error{&LoadError{Code: ErrCodeEmpty, Message: "no employees declared"}}
	}

	iter, err := employeesVal.Fields()
	if err != nil {
		return nil, fromCUEError(ErrCodeGeneric, err)
	}

	var pending []pendingReports
	for iter.Next() {
		label := iter.Label()
		entry := iter.Value()

		e, reports, err := buildEntry(label, entry)
		if err != nil {
			if fail(err) {
				return nil, errs
			}
			continue
		}

		if prev, dup := r.byID[e.ID()]; dup {
			if fail(&LoadError{
				Code:    ErrCodeDuplicateID,
				Message: fmt.Sprintf("employee %q: id %d already used by %s", label, e.ID(), prev.Name()),
				Pos:     entry.LookupPath(cue.ParsePath("id")).Pos(),
			}) {
				return nil, errs
			}
			continue
		}

		r.employees = append(r.employees, e)
		r.byID[e.ID()] = e
		if reports != nil {
			pending = append(pending, *reports)
		}
	}

	if len(r.employees) == 0 && len(errs) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeEmpty, Message: "no employees declared"}}
	}

	// Reports may point forward, so they are resolved once every entry exists.
	for _, p := range pending {
		for i, id := range p.ids {
			sub, ok := r.byID[id]
			if !ok {
				if fail(&LoadError{
					Code:    ErrCodeUnknownReport,
					Message: fmt.Sprintf("employee %q reports unknown id %d", p.manager.Name(), id),
					Pos:     p.pos[i].Pos(),
				}) {
					return nil, errs
				}
				continue
			}
			p.manager.AddSubordinate(sub)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return r, nil
}

// buildEntry maps one schema-checked entry onto an employee variant.
func buildEntry(label string, v cue.Value) (employee.Employee, *pendingReports, error) {
	id, err := v.LookupPath(cue.ParsePath("id")).Int64()
	if err != nil {
		return nil, nil, entryError(label, v, err)
	}
	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, nil, entryError(label, v, err)
	}
	kind, err := v.LookupPath(cue.ParsePath("kind")).String()
	if err != nil {
		return nil, nil, entryError(label, v, err)
	}

	switch employee.Kind(kind) {
	case employee.KindPermanent:
		return buildSalaried(label, v, int(id), name)
	case employee.KindContract:
		h, err := buildHourly(label, v, int(id), name)
		return h, nil, err
	default:
		// Unreachable once the schema has been applied.
		return nil, nil, &LoadError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("employee %q: unknown kind %q", label, kind),
			Pos:     v.Pos(),
		}
	}
}

func buildSalaried(label string, v cue.Value, id int, name string) (employee.Employee, *pendingReports, error) {
	for _, field := range []string{"hourly_rate", "hours_worked"} {
		if f := v.LookupPath(cue.ParsePath(field)); f.Exists() {
			return nil, nil, &LoadError{
				Code:    ErrCodeKindMismatch,
				Message: fmt.Sprintf("employee %q: %s is only valid for contract employees", label, field),
				Pos:     f.Pos(),
			}
		}
	}

	salary, err := requiredFloat(label, v, "salary")
	if err != nil {
		return nil, nil, err
	}

	s, err := employee.NewSalaried(id, name, salary)
	if err != nil {
		return nil, nil, entryError(label, v, err)
	}

	if roleVal := v.LookupPath(cue.ParsePath("role")); roleVal.Exists() {
		role, err := roleVal.String()
		if err != nil {
			return nil, nil, entryError(label, roleVal, err)
		}
		if err := s.SetRole(employee.Role(role)); err != nil {
			return nil, nil, entryError(label, roleVal, err)
		}
	}

	reportsVal := v.LookupPath(cue.ParsePath("reports"))
	if !reportsVal.Exists() {
		return s, nil, nil
	}

	list, err := reportsVal.List()
	if err != nil {
		return nil, nil, entryError(label, reportsVal, err)
	}
	p := &pendingReports{manager: s}
	for list.Next() {
		rid, err := list.Value().Int64()
		if err != nil {
			return nil, nil, entryError(label, list.Value(), err)
		}
		p.ids = append(p.ids, int(rid))
		p.pos = append(p.pos, list.Value())
	}
	return s, p, nil
}

func buildHourly(label string, v cue.Value, id int, name string) (employee.Employee, error) {
	for _, field := range []string{"salary", "role", "reports"} {
		if f := v.LookupPath(cue.ParsePath(field)); f.Exists() {
			return nil, &LoadError{
				Code:    ErrCodeKindMismatch,
				Message: fmt.Sprintf("employee %q: %s is only valid for permanent employees", label, field),
				Pos:     f.Pos(),
			}
		}
	}

	rate, err := requiredFloat(label, v, "hourly_rate")
	if err != nil {
		return nil, err
	}

	hoursVal := v.LookupPath(cue.ParsePath("hours_worked"))
	if !hoursVal.Exists() {
		return nil, missingField(label, v, "hours_worked")
	}
	hours, err := hoursVal.Int64()
	if err != nil {
		return nil, entryError(label, hoursVal, err)
	}

	h, err := employee.NewHourly(id, name, rate, int(hours))
	if err != nil {
		return nil, entryError(label, v, err)
	}
	return h, nil
}

func requiredFloat(label string, v cue.Value, field string) (float64, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return 0, missingField(label, v, field)
	}
	n, err := f.Float64()
	if err != nil {
		return 0, entryError(label, f, err)
	}
	return n, nil
}

func missingField(label string, v cue.Value, field string) error {
	return &LoadError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("employee %q: %s is required", label, field),
		Pos:     v.Pos(),
	}
}

func entryError(label string, v cue.Value, err error) error {
	return &LoadError{
		Code:    ErrCodeInvalidEntry,
		Message: fmt.Sprintf("employee %q: %v", label, err),
		Pos:     v.Pos(),
	}
}
