package cmd

import (
	"github.com/ceaplens/ceaplens/internal/facetstore"
	"github.com/ceaplens/ceaplens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the ceaplens MCP server",
	Long:  `Launch an MCP server that allows AI agents to query deputy spending, summaries and timelines via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup logs go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, dataClient, facetstore.Global())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
