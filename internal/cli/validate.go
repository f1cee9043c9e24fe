package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XTiNCT-7/oop/internal/roster"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Employees int               `json:"employees,omitempty"`
	Errors    []ValidationIssue `json:"errors,omitempty"`
}

// ValidationIssue is one roster problem with its source location.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <roster-dir>",
		Short: "Validate CUE rosters",
		Long: `Validate every CUE roster file in a directory.

Files are unified with the employee schema, then each entry is checked:
required fields per kind, unique ids, and reports that name known
employees. All problems are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	r, loadErrors := roster.LoadDir(dir, roster.LoadModeCollectAll)

	// Directory-level problems are command errors, not validation failures
	if len(loadErrors) == 1 {
		var loadErr *roster.LoadError
		if errors.As(loadErrors[0], &loadErr) && isCommandErrorCode(loadErr.Code) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
	}

	if len(loadErrors) > 0 {
		issues := make([]ValidationIssue, 0, len(loadErrors))
		for _, err := range loadErrors {
			issues = append(issues, toIssue(err))
		}
		return outputValidationErrors(formatter, issues)
	}

	formatter.VerboseLog("Loaded %d employee(s) from %s", r.Len(), dir)
	for _, e := range r.Employees() {
		formatter.VerboseLog("  %s (%s)", e.Display(), e.Kind())
	}

	return outputValidateSuccess(formatter, r.Len())
}

func isCommandErrorCode(code string) bool {
	switch code {
	case roster.ErrCodeNotFound, roster.ErrCodeNoFiles, roster.ErrCodeScanError:
		return true
	}
	return false
}

func toIssue(err error) ValidationIssue {
	var loadErr *roster.LoadError
	if !errors.As(err, &loadErr) {
		return ValidationIssue{Code: roster.ErrCodeGeneric, Message: err.Error()}
	}

	issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		issue.File = loadErr.Pos.Filename()
		issue.Line = loadErr.Pos.Line()
	}
	return issue
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, employees int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Employees: employees})
	}

	fmt.Fprintf(formatter.Writer, "✓ Roster valid (%d employees)\n", employees)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	return formatter.Fail(NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message)), code, message, details)
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		err := formatter.Respond(CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: issues,
			},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		})
		if err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", issue.File, issue.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
