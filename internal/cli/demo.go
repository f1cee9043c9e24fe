package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XTiNCT-7/oop/internal/demos"
	"github.com/XTiNCT-7/oop/internal/harness"
)

const (
	demoTitle  = "Object Oriented Programming"
	demoFooter = "End of OOP Demo"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	List bool
}

// DemoSection is the JSON form of one executed section.
type DemoSection struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Pass       bool     `json:"pass"`
	Transcript []string `json:"transcript"`
	Errors     []string `json:"errors,omitempty"`
}

// SectionInfo describes an available section for --list.
type SectionInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo [section...]",
		Short: "Run the built-in demo",
		Long: `Run the built-in walkthrough of the employee model.

Sections run in order, each against its own roster:
  basic_object_creation, encapsulation, abstraction,
  polymorphism, inheritance, leave

Name sections to run only those.

Examples:
  oop demo
  oop demo polymorphism leave
  oop demo --list
  oop demo --format json`,
		ValidArgs:     demos.Sections,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.List, "list", false, "list available sections")

	return cmd
}

func runDemo(opts *DemoOptions, sections []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	scenarios, err := demos.LoadAll(sections...)
	if err != nil {
		return formatter.Fail(WrapExitError(ExitCommandError, "failed to load demo", err), ErrCodeLoadFailed, err.Error(), nil)
	}

	if opts.List {
		return listSections(formatter, scenarios)
	}

	h := harness.New(opts.newLogger(cmd.ErrOrStderr()))

	if formatter.Format == "json" {
		return runDemoJSON(formatter, h, scenarios)
	}

	b := newBanner(formatter.Writer, opts.NoColor)
	b.Header(demoTitle)

	failed := 0
	for i, scenario := range scenarios {
		if i > 0 {
			b.Separator()
		}
		result, err := h.Run(scenario)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("demo section %s aborted", scenario.Name), err)
		}
		for _, line := range result.Transcript {
			fmt.Fprintln(formatter.Writer, line)
		}
		if !result.Pass {
			failed++
			for _, e := range result.Errors {
				formatter.VerboseLog("%s: %s", scenario.Name, e)
			}
		}
	}

	b.Footer(demoFooter)

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d demo section(s) failed", failed))
	}
	return nil
}

func runDemoJSON(formatter *OutputFormatter, h *harness.Harness, scenarios []*harness.Scenario) error {
	out := make([]DemoSection, 0, len(scenarios))
	failed := 0
	for _, scenario := range scenarios {
		result, err := h.Run(scenario)
		if err != nil {
			return formatter.Fail(WrapExitError(ExitFailure, fmt.Sprintf("demo section %s aborted", scenario.Name), err),
				ErrCodeDemoFailed, err.Error(), map[string]string{"section": scenario.Name})
		}
		if !result.Pass {
			failed++
		}
		out = append(out, DemoSection{
			Name:       scenario.Name,
			Title:      scenario.Title,
			Pass:       result.Pass,
			Transcript: result.Transcript,
			Errors:     result.Errors,
		})
	}

	if failed > 0 {
		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Data:   out,
			Error: &CLIError{
				Code:    ErrCodeDemoFailed,
				Message: fmt.Sprintf("%d demo section(s) failed", failed),
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d demo section(s) failed", failed))
	}
	return formatter.Success(out)
}

func listSections(formatter *OutputFormatter, scenarios []*harness.Scenario) error {
	infos := make([]SectionInfo, 0, len(scenarios))
	for _, s := range scenarios {
		infos = append(infos, SectionInfo{Name: s.Name, Title: s.Title})
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%-24s %s\n", info.Name, info.Title)
	}
	return nil
}
