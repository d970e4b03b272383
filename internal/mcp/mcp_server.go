// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the radonrun MCP server without starting it.
// Runs invoke the analyzer binary named in baseCfg.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	return NewMCPServerWithClient(baseCfg, nil, mgr)
}

// NewMCPServerWithClient is NewMCPServer with an explicit analyzer client.
// This is exposed for unit testing.
func NewMCPServerWithClient(baseCfg *contract.Config, client contract.AnalyzerClient, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"radonrun Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: run_metrics ---
	s.AddTool(mcp.NewTool("run_metrics",
		mcp.WithDescription("Run the raw, cc, hal and mi analyzers on a source tree, persist the reports as a new numbered run and return the summary."),
		mcp.WithString("project_path", mcp.Description("Path of the source tree to analyze."), mcp.Required()),
		mcp.WithString("exclude", mcp.Description("Exclude pattern forwarded verbatim to every analyzer invocation (e.g. 'tests/*,docs/*').")),
	), h.handleRunMetrics)

	// --- 2. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("List recorded runs, newest first. Requires a history backend."),
		mcp.WithString("project_path", mcp.Description("Only list runs of this project path (all projects when omitted).")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleGetRunHistory)

	return s
}

// StartMCPServer starts the radonrun MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
