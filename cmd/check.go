package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [report]",
	Short: "Enforce debt thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Check a technical debt report against thresholds and exit non-zero on violations.

Gates:
- --max-debt-ratio fails when the report's debt ratio is above the limit (0 disables)
- --max-critical fails when more files than the limit are critical (-1 disables)

File status is taken from the report as supplied; scores never change it.

Examples:
  # Block merges once the debt ratio passes 20%
  debtboard check reports/debt.json --max-debt-ratio 20

  # Allow at most two critical files
  debtboard check reports/debt.json --max-critical 2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg); err != nil {
			if errors.Is(err, core.ErrCheckFailed) {
				// The failure details are already printed
				os.Exit(1)
			}
			contract.LogFatal("Report check failed", err)
		}
	},
}
