package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XTiNCT-7/oop/internal/harness"
)

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Scenario string `json:"scenario"`
	*harness.Result
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run one scenario and print its transcript",
		Long: `Run a single scenario file against its roster.

The roster path inside the scenario is resolved relative to the scenario
file. Each step prints what the operation printed; steps with an expected
error print "Rejected: <error>".

Exit codes:
  0 - Scenario passed
  1 - An expectation or assertion failed, or a step failed unexpectedly
  2 - Scenario could not be loaded

Example:
  oop run ./scenarios/payroll.yaml
  oop run ./scenarios/payroll.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScenarioFile(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	logger.Debug("loading scenario", "path", path)
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitCommandError, "failed to load scenario", err), ErrCodeLoadFailed, err.Error(), nil)
	}

	result, err := harness.New(logger).Run(scenario)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitFailure, "scenario aborted", err),
			ErrCodeScenarioFailed, err.Error(), map[string]string{"scenario": scenario.Name})
	}

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: RunResult{Scenario: scenario.Name, Result: result}}
		if !result.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeScenarioFailed,
				Message: fmt.Sprintf("%d check(s) failed", len(result.Errors)),
				Details: result.Errors,
			}
		}
		if err := formatter.Respond(resp); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, line := range result.Transcript {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		if result.Pass {
			fmt.Fprintf(w, "✓ %s passed\n", scenario.Name)
		} else {
			fmt.Fprintf(w, "✗ %s failed\n", scenario.Name)
			for _, e := range result.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}
