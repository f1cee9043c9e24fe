// Package roster loads employees declared in CUE.
//
// A roster file declares employees under the employee struct, keyed by an
// arbitrary label:
//
//	employee: alice: {
//		id:     3
//		name:   "Alice"
//		kind:   "permanent"
//		salary: 50000
//	}
//	employee: bob: {
//		id:           4
//		name:         "Bob"
//		kind:         "contract"
//		hourly_rate:  20
//		hours_worked: 40
//	}
//
// Every file is unified with a closed #Employee schema before any Go value is
// built, so typos and out-of-range values are reported with their source
// position. Entries that pass the schema are then built through the
// employee constructors. Managers list the ids of their subordinates in
// reports.
package roster

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/XTiNCT-7/oop/internal/employee"
)

// Schema is the CUE definition every roster is unified with.
const Schema = `
#Employee: {
	id:   int & >0
	name: string & =~"\\S"
	kind: "permanent" | "contract"

	role?:         "Employee" | "Manager"
	salary?:       number & >=0
	hourly_rate?:  number & >=0
	hours_worked?: int & >=0
	reports?: [...int & >0]
}

employee: [string]: #Employee
`

// Roster holds the employees of one demo run in declaration order.
type Roster struct {
	employees []employee.Employee
	byID      map[int]employee.Employee
}

// Employees returns the employees in declaration order.
func (r *Roster) Employees() []employee.Employee {
	return r.employees
}

// Lookup finds an employee by id.
func (r *Roster) Lookup(id int) (employee.Employee, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Len returns the number of employees.
func (r *Roster) Len() int {
	return len(r.employees)
}

// Compile builds a roster from a single CUE source.
func Compile(filename string, src []byte) (*Roster, error) {
	ctx := cuecontext.New()
	v, errs := unify(ctx, []source{{name: filename, data: src}})
	if len(errs) > 0 {
		return nil, errs[0]
	}
	r, errs := Build(v, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return r, nil
}

// LoadDir loads every .cue file under dir into one roster.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDir(dir string, mode LoadMode) (*Roster, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("roster directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing roster directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	sources := make([]source, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("reading %s: %v", path, err)}}
		}
		sources = append(sources, source{name: path, data: data})
	}

	v, errs := unify(cuecontext.New(), sources)
	if len(errs) > 0 {
		if mode == LoadModeFailFast {
			return nil, errs[:1]
		}
		return nil, errs
	}
	return Build(v, mode)
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

type source struct {
	name string
	data []byte
}

// unify compiles each source and unifies it with the schema and the other
// sources. The result is validated for concreteness.
func unify(ctx *cue.Context, sources []source) (cue.Value, []error) {
	v := ctx.CompileString(Schema, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fromCUEError(ErrCodeGeneric, err)
	}

	for _, src := range sources {
		fv := ctx.CompileBytes(src.data, cue.Filename(src.name))
		if err := fv.Err(); err != nil {
			return cue.Value{}, fromCUEError(ErrCodeCompile, err)
		}
		v = v.Unify(fv)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fromCUEError(ErrCodeSchema, err)
	}
	return v, nil
}
