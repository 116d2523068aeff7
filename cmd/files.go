package cmd

import (
	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/spf13/cobra"
)

// filesCmd is the terminal file explorer.
var filesCmd = &cobra.Command{
	Use:   "files [report]",
	Short: "List the files of a report with search, status filter and sort.",
	Long: `List every file of a technical debt report, like the dashboard's file explorer.

The search is a case-insensitive substring match on the file path. The status
filter keeps only files with the given status. Files are sorted by a single
field; ties keep the order of the report.

Examples:
  # Highest scores first (default)
  debtboard files reports/debt.json

  # Critical files under src/legacy by size
  debtboard files reports/debt.json --search src/legacy --status critical --sort size

  # Alphabetical listing as CSV
  debtboard files --sort file --direction asc --output csv --output-file files.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFiles(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list files", err)
		}
	},
}
