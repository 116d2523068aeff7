package cmd

import (
	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/spf13/cobra"
)

// overviewCmd prints the metric cards of a report.
var overviewCmd = &cobra.Command{
	Use:   "overview [report]",
	Short: "Show the debt ratio, cost, fix time and severity of a report.",
	Long: `Print the overview of a technical debt report.

Shows the same four cards as the dashboard:
- Debt ratio with its health label (Healthy, Moderate, Critical)
- Estimated remediation cost
- Estimated fix time in developer hours
- Severity with the number of files in the report

The file status distribution is printed underneath.
When no report is given, the bundled sample report is used.

Examples:
  # Overview of the sample report
  debtboard overview

  # Overview of a generated report as JSON
  debtboard overview reports/debt.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverview(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show overview", err)
		}
	},
}

// recommendationsCmd prints the action plan of a report.
var recommendationsCmd = &cobra.Command{
	Use:     "recommendations [report]",
	Aliases: []string{"recs"},
	Short:   "Show the remediation recommendations of a report.",
	Long: `Print the action plan of a technical debt report in the order supplied.

Examples:
  debtboard recommendations reports/debt.json
  debtboard recs --output markdown --output-file plan.md`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecommendations(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show recommendations", err)
		}
	},
}

// trendsCmd prints the debt ratio history of a report.
var trendsCmd = &cobra.Command{
	Use:   "trends [report]",
	Short: "Show the debt ratio history of a report.",
	Long: `Print the trend points of a technical debt report.

Reports without trend data print "No trend data available".

Examples:
  debtboard trends reports/debt.json --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show trends", err)
		}
	},
}
