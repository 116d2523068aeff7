package cmd

import (
	"github.com/huangsam/debtboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [report]",
	Short: "Start the debtboard MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents read and replace the current report.

Tools: get_overview, list_files, group_by_directory, get_recommendations,
get_trends, load_report and archive_report.`,
	Args: cobra.MaximumNArgs(1),
	// Nothing may be printed to stdout here since stdio carries the protocol.
	PreRunE: archiveSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, archiveManager)
	},
}
