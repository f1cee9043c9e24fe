// Package demos ships the built-in walkthrough of the employee model as
// embedded scenarios.
//
// Each section is an ordinary harness scenario with its own roster, so the
// demos can also be run from disk with `oop test internal/demos/scenarios`.
// Expected transcripts live in scenarios/golden. Rosters live one per
// directory under scenarios/rosters, so each can be passed to
// `oop validate` or `oop payroll`.
package demos

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/XTiNCT-7/oop/internal/harness"
)

//go:embed scenarios
var files embed.FS

// Sections lists the demo sections in presentation order.
var Sections = []string{
	"basic_object_creation",
	"encapsulation",
	"abstraction",
	"polymorphism",
	"inheritance",
	"leave",
}

// FS returns the embedded scenario tree rooted at the scenarios directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "scenarios")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// Load returns the scenario for one section.
func Load(section string) (*harness.Scenario, error) {
	if !isSection(section) {
		return nil, fmt.Errorf("unknown demo section %q (available: %v)", section, Sections)
	}
	return harness.LoadScenarioFS(FS(), section+".yaml")
}

// LoadAll returns the requested sections in the order given, or every
// section when none are named.
func LoadAll(sections ...string) ([]*harness.Scenario, error) {
	if len(sections) == 0 {
		sections = Sections
	}

	scenarios := make([]*harness.Scenario, 0, len(sections))
	for _, section := range sections {
		s, err := Load(section)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Golden returns the expected transcript of a section.
func Golden(section string) ([]byte, error) {
	return fs.ReadFile(FS(), "golden/"+section+".golden")
}

func isSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}
