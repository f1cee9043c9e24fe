package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/XTiNCT-7/oop/internal/employee"
	"github.com/XTiNCT-7/oop/internal/roster"
)

// PayrollOptions holds flags for the payroll command.
type PayrollOptions struct {
	*RootOptions
	Bonus      float64
	Deduction  float64
	ExtraHours int
}

// PayLine is one row of the payroll.
type PayLine struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Amount  float64 `json:"amount"`
	Summary string  `json:"summary"`
}

// Payroll is the JSON payload of the payroll command.
type Payroll struct {
	Lines []PayLine `json:"lines"`
	Total float64   `json:"total"`
}

// NewPayrollCommand creates the payroll command.
func NewPayrollCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PayrollOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "payroll <roster-dir>",
		Short: "Print the pay of every employee in a roster",
		Long: `Load a roster and print each employee's pay as a table.

Adjustments never change the roster:
  --bonus, --deduction  apply to permanent employees
  --extra-hours         applies to contract employees

Examples:
  oop payroll ./rosters
  oop payroll ./rosters --bonus 1000 --deduction 250
  oop payroll ./rosters --extra-hours 5 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayroll(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Bonus, "bonus", 0, "bonus added to permanent salaries")
	cmd.Flags().Float64Var(&opts.Deduction, "deduction", 0, "deduction from permanent salaries")
	cmd.Flags().IntVar(&opts.ExtraHours, "extra-hours", 0, "extra hours for contract employees")

	return cmd
}

func runPayroll(opts *PayrollOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	amounts := []struct {
		flag  string
		value float64
	}{{"bonus", opts.Bonus}, {"deduction", opts.Deduction}}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			msg := fmt.Sprintf("--%s must be a finite number", a.flag)
			return formatter.Fail(NewExitError(ExitCommandError, msg), ErrCodeInvalidArgs, msg, nil)
		}
	}

	r, loadErrors := roster.LoadDir(dir, roster.LoadModeFailFast)
	if len(loadErrors) > 0 {
		code := roster.ErrCodeGeneric
		var loadErr *roster.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			code = loadErr.Code
		}
		return formatter.Fail(WrapExitError(ExitCommandError, "failed to load roster", loadErrors[0]), code, loadErrors[0].Error(), nil)
	}

	flags := cmd.Flags()
	adjust := payAdjustments{
		bonus:         flags.Changed("bonus"),
		deduction:     flags.Changed("deduction"),
		extraHours:    flags.Changed("extra-hours"),
		bonusAmount:   opts.Bonus,
		deductAmount:  opts.Deduction,
		extraHoursNum: opts.ExtraHours,
	}

	payroll := Payroll{Lines: make([]PayLine, 0, r.Len())}
	for _, e := range r.Employees() {
		stmt := adjust.statement(e)
		formatter.VerboseLog("%s", stmt.Summary)
		payroll.Lines = append(payroll.Lines, PayLine{
			ID:      e.ID(),
			Name:    e.Name(),
			Kind:    string(e.Kind()),
			Amount:  stmt.Amount,
			Summary: stmt.Summary,
		})
		payroll.Total += stmt.Amount
	}

	if formatter.Format == "json" {
		return formatter.Success(payroll)
	}

	table := tablewriter.NewWriter(formatter.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "NAME", "KIND", "PAY"})
	for _, line := range payroll.Lines {
		table.Append([]string{
			strconv.Itoa(line.ID),
			line.Name,
			line.Kind,
			employee.FormatAmount(line.Amount),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", employee.FormatAmount(payroll.Total)})
	table.Render()
	return nil
}

// payAdjustments selects the pay variant per employee kind from the flags
// that were set on the command line.
type payAdjustments struct {
	bonus, deduction, extraHours bool

	bonusAmount   float64
	deductAmount  float64
	extraHoursNum int
}

func (a payAdjustments) statement(e employee.Employee) employee.Statement {
	switch v := e.(type) {
	case *employee.Salaried:
		switch {
		case a.deduction:
			return v.CalculatePayWithBonusAndDeduction(a.bonusAmount, a.deductAmount)
		case a.bonus:
			return v.CalculatePayWithBonus(a.bonusAmount)
		}
	case *employee.Hourly:
		if a.extraHours {
			return v.CalculatePayWithExtraHours(a.extraHoursNum)
		}
	}
	return e.CalculatePay()
}
