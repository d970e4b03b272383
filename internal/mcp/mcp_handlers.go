package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/radonrun/core"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.AnalyzerClient
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleRunMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := request.GetString("project_path", "")
	if strings.TrimSpace(projectPath) == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}

	var exclude *string
	if raw, ok := request.GetArguments()["exclude"]; ok && raw != nil {
		value, isString := raw.(string)
		if !isString {
			return mcp.NewToolResultError("exclude must be a string"), nil
		}
		pattern, err := contract.ValidateExcludePattern(value)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid exclude: %v", err)), nil
		}
		exclude = &pattern
	}

	cfg := h.baseCfg.WithProject(projectPath, exclude)
	summary, err := core.RunMetrics(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
	}

	jsonData, err := core.MarshalSummary(summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := request.GetString("project_path", "")
	limit := request.GetInt("limit", contract.DefaultHistoryLimit)
	if limit <= 0 || limit > contract.MaxHistoryLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", contract.MaxHistoryLimit)), nil
	}

	records, err := core.GetRunHistory(h.mgr, projectPath, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history query failed: %v", err)), nil
	}
	if records == nil {
		records = []schema.RunRecord{}
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
