// Command oop runs the employee pay model demos, scenarios and payroll.
package main

import (
	"fmt"
	"os"

	"github.com/XTiNCT-7/oop/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
