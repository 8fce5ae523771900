package cmd

import (
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pivotrend MCP server",
	Long:  `Launch an MCP server over stdio exposing the pivot_table, boxplot_summary and classify_trend tools.`,
	Args:  cobra.NoArgs,
	// Logs go to stderr, so stdio stays free for the protocol.
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, dataset.Open)
	},
}
