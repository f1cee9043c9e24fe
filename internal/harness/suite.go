package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScenarioResult is the outcome of one scenario file in a suite.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`

	// Result is nil when the scenario failed to load or aborted.
	Result *Result `json:"-"`
}

// SuiteResult summarizes a set of scenario runs.
type SuiteResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// Add records a scenario outcome.
func (s *SuiteResult) Add(r ScenarioResult) {
	s.Scenarios = append(s.Scenarios, r)
	s.Total++
	if r.Pass {
		s.Passed++
	} else {
		s.Failed++
	}
}

// FindScenarios returns the YAML scenario files under dir, in lexical
// order. A non-empty filter is matched as a glob against the file name
// without its extension.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

// GoldenPath returns where the transcript of a scenario file is kept:
// golden/{name}.golden next to the scenario.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// RunFile loads and runs one scenario file. Load and execution errors are
// reported as a failing ScenarioResult rather than returned.
func (h *Harness) RunFile(path string) ScenarioResult {
	scenario, err := LoadScenario(path)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(path),
			Path:   path,
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result, err := h.Run(scenario)
	if err != nil {
		return ScenarioResult{
			Name:   scenario.Name,
			Path:   path,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	return ScenarioResult{
		Name:   scenario.Name,
		Path:   path,
		Pass:   result.Pass,
		Errors: result.Errors,
		Result: result,
	}
}

// CheckGolden compares a scenario's transcript with its golden file.
// A missing golden file is not a mismatch; ok reports whether one existed.
func CheckGolden(scenarioFile string, result *Result) (ok bool, match bool, err error) {
	want, err := os.ReadFile(GoldenPath(scenarioFile))
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return true, string(want) == result.TranscriptText(), nil
}

// UpdateGolden writes a scenario's transcript as its golden file.
func UpdateGolden(scenarioFile string, result *Result) error {
	path := GoldenPath(scenarioFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(result.TranscriptText()), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}
