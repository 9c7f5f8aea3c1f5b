package cmd

import (
	"github.com/fairdev/fds/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Fair Developer Score MCP server",
	Long:  `Launch an MCP server that allows AI agents to score developers, inspect batches, and compute directory centrality over commit stream files via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The plain sharedSetup is used: it writes nothing to stdout, which
		// carries the protocol, unless profiling is enabled.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
