package cmd

import (
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/iocache"
	"github.com/huangsam/radonrun/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpSetup validates shared configuration for the MCP server. Project paths
// arrive per tool call, so only the base config is processed here.
func mcpSetup() error {
	if err := loadRawInput(); err != nil {
		return err
	}
	if err := contract.ProcessBaseConfig(cfg, input); err != nil {
		return err
	}
	// Nothing may be colored on a stdio protocol stream.
	cfg.UseColors = false
	applyColor()

	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		contract.LogWarn("History disabled for the MCP server", err)
	}
	return nil
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the radonrun MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents run metrics and query run history via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return mcpSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		contract.LogInfo("Serving radonrun MCP tools on stdio (history backend: %s)", cfg.HistoryBackend)
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
