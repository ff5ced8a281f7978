package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tripagent/pkg/factorial"
	"tripagent/pkg/ui"
)

// factorialCmd represents the factorial command
var factorialCmd = &cobra.Command{
	Use:   "factorial <n>",
	Short: "Compute n! with arbitrary precision",
	Long: `Compute the factorial of a non-negative integer.

Results are computed with arbitrary precision, so large values of n are
fine. The computation is cached per value, and a cross-check against an
independent product-range computation is available with --check.`,
	Example: `  tripagent factorial 20
  tripagent factorial 1000 --check`,
	Args: cobra.ExactArgs(1),
	Run:  runFactorial,
}

var factorialCheck bool

func init() {
	rootCmd.AddCommand(factorialCmd)

	factorialCmd.Flags().BoolVar(&factorialCheck, "check", false, "verify against an independent computation")
}

func runFactorial(cmd *cobra.Command, args []string) {
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		ui.PrintError("Invalid number", args[0])
		os.Exit(1)
	}

	f, err := factorial.New(n)
	if err != nil {
		ui.PrintError("Cannot compute factorial", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo(fmt.Sprintf("%d!", n), f.Value().String())

	if factorialCheck {
		if f.Value().Cmp(f.ViaMulRange()) == 0 {
			ui.PrintSuccess("Cross-check passed")
		} else {
			ui.PrintError("Cross-check failed", "results differ")
			os.Exit(1)
		}
	}
}
