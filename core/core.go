// Package core has core logic for allocating, collecting and summarizing runs.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/outwriter"
	"github.com/huangsam/radonrun/schema"
)

// ErrHistoryDisabled is returned by history queries when no store is configured.
var ErrHistoryDisabled = errors.New("history is disabled. Set --history-backend to sqlite, mysql or postgresql")

// ExecuteRun performs one complete run against cfg.ProjectPath and prints the digest to stdout.
// It serves as the main entry point of the root command.
func ExecuteRun(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	_, err := executeRun(ctx, cfg, nil, mgr, os.Stdout)
	return err
}

// RunMetrics performs one complete run without any console output and returns its summary.
// A nil client invokes the configured analyzer binary.
func RunMetrics(ctx context.Context, cfg *contract.Config, client contract.AnalyzerClient, mgr contract.HistoryManager) (schema.Summary, error) {
	return executeRun(withSuppressOutput(ctx), cfg, client, mgr, io.Discard)
}

// executeRun drives the builder stages in order and renders the digest unless suppressed.
func executeRun(ctx context.Context, cfg *contract.Config, client contract.AnalyzerClient, mgr contract.HistoryManager, w io.Writer) (schema.Summary, error) {
	b, err := NewRunBuilder(ctx, cfg, client, mgr).Preflight()
	if err != nil {
		return schema.Summary{}, err
	}
	if b, err = b.Allocate(); err != nil {
		return schema.Summary{}, err
	}
	if b, err = b.Collect(); err != nil {
		return schema.Summary{}, err
	}
	if b, err = b.Summarize(); err != nil {
		return schema.Summary{}, err
	}
	summary := b.Record().GetResult()

	if shouldSuppressOutput(ctx) {
		return summary, nil
	}
	if err := outwriter.NewOutWriter().WriteSummary(w, summary, cfg); err != nil {
		return summary, fmt.Errorf("failed to print summary: %w", err)
	}
	return summary, nil
}

// GetRunHistory returns the most recent runs of a project, newest first.
// An empty project path lists every project.
func GetRunHistory(mgr contract.HistoryManager, projectPath string, limit int) ([]schema.RunRecord, error) {
	if mgr == nil {
		return nil, ErrHistoryDisabled
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return nil, ErrHistoryDisabled
	}
	records, err := store.ListRuns(projectPath, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list run history: %w", err)
	}
	return records, nil
}

// ExecuteHistoryList prints the run history using the configured output format.
func ExecuteHistoryList(cfg *contract.Config, mgr contract.HistoryManager) error {
	records, err := GetRunHistory(mgr, cfg.ProjectPath, cfg.Limit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHistory(records, cfg)
}
