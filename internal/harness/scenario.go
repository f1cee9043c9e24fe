package harness

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a demo scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Title is printed as the first transcript line. Optional.
	Title string `yaml:"title,omitempty"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// Roster is the path of the CUE roster, relative to the scenario file.
	Roster string `yaml:"roster"`

	// Steps are performed in order against the roster's employees.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	// Supported types: trace_contains, trace_order, trace_count, final_state
	Assertions []Assertion `yaml:"assertions"`

	// RosterSource holds the roster contents once loaded. Tests may set it
	// directly instead of pointing Roster at a file.
	RosterSource []byte `yaml:"-"`
}

// Step is a single operation on one employee.
type Step struct {
	// Op is the operation name (display, pay, set_name, ...).
	Op string `yaml:"op"`

	// Employee is the id declared in the roster.
	Employee int `yaml:"employee"`

	// Args holds the operation arguments.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Expect optionally checks the step outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected step outcome.
type ExpectClause struct {
	// Amount is the expected pay amount (pay steps only).
	Amount *float64 `yaml:"amount,omitempty"`

	// Error is a substring of the error the step must fail with.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": op appears in trace (for Employee, if non-zero)
	// - "trace_order": ops appear in order
	// - "trace_count": op appears exactly Count times
	// - "final_state": employee fields match Expect after the run
	Type string `yaml:"type"`

	Op       string                 `yaml:"op,omitempty"`
	Employee int                    `yaml:"employee,omitempty"`
	Ops      []string               `yaml:"ops,omitempty"`
	Count    int                    `yaml:"count,omitempty"`
	Expect   map[string]interface{} `yaml:"expect,omitempty"`
}

// Step operation names.
const (
	OpDisplay      = "display"
	OpPay          = "pay"
	OpSetID        = "set_id"
	OpSetName      = "set_name"
	OpSubmitLeave  = "submit_leave"
	OpCancelLeave  = "cancel_leave"
	OpApproveLeave = "approve_leave"
)

var validOps = map[string]bool{
	OpDisplay:      true,
	OpPay:          true,
	OpSetID:        true,
	OpSetName:      true,
	OpSubmitLeave:  true,
	OpCancelLeave:  true,
	OpApproveLeave: true,
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file from disk.
// The roster path is resolved relative to the scenario file.
func LoadScenario(p string) (*Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	dir := filepath.Dir(p)
	return parseScenario(data, func(roster string) ([]byte, error) {
		if !filepath.IsAbs(roster) {
			roster = filepath.Join(dir, roster)
		}
		return os.ReadFile(roster)
	})
}

// LoadScenarioFS reads and parses a scenario from fsys.
// The roster path is resolved relative to the scenario within fsys.
func LoadScenarioFS(fsys fs.FS, name string) (*Scenario, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	dir := path.Dir(name)
	return parseScenario(data, func(roster string) ([]byte, error) {
		return fs.ReadFile(fsys, path.Join(dir, roster))
	})
}

func parseScenario(data []byte, readRoster func(string) ([]byte, error)) (*Scenario, error) {
	// Strict field validation catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Roster == "" {
		return nil, fmt.Errorf("invalid scenario: roster is required")
	}
	src, err := readRoster(scenario.Roster)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: roster file not found: %s", scenario.Roster)
	}
	scenario.RosterSource = src

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.RosterSource) == 0 {
		return fmt.Errorf("roster is required and must be non-empty")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if !validOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Employee == 0 {
			return fmt.Errorf("steps[%d]: employee is required", i)
		}
		if step.Expect != nil && step.Expect.Amount != nil && step.Op != OpPay {
			return fmt.Errorf("steps[%d].expect: amount is only valid for pay", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Employee == 0 {
			return fmt.Errorf("assertions[%d]: employee is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
