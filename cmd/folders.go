package cmd

import (
	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/spf13/cobra"
)

// foldersCmd prints the system map.
var foldersCmd = &cobra.Command{
	Use:   "folders [report]",
	Short: "Group the files of a report by directory.",
	Long: `Print the system map: files grouped by their immediate parent directory.

Directories appear in the order they are first seen in the report. Files without
a directory are grouped under "./".

Examples:
  debtboard folders reports/debt.json
  debtboard folders --output yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFolders(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot group folders", err)
		}
	},
}
