package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/radonrun/core/extract"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

// RunBuilder carries one run through its stages using a builder pattern.
// Each stage either advances the run or returns the fatal error that ends it.
type RunBuilder struct {
	ctx         context.Context
	cfg         *contract.Config
	client      contract.AnalyzerClient
	parser      extract.Parser
	mgr         contract.HistoryManager
	run         schema.Run
	metrics     schema.CollectedMetrics
	summary     schema.Summary
	summaryPath string
	start       time.Time
	end         time.Time
	recordID    int64
}

// NewRunBuilder creates a new builder for a run. A nil client invokes the
// configured analyzer binary; a nil manager disables history recording.
func NewRunBuilder(ctx context.Context, cfg *contract.Config, client contract.AnalyzerClient, mgr contract.HistoryManager) *RunBuilder {
	if client == nil {
		client = contract.NewLocalAnalyzerClient(cfg.Analyzer)
	}
	return &RunBuilder{
		ctx:    ctx,
		cfg:    cfg,
		client: client,
		parser: extract.Default,
		mgr:    mgr,
	}
}

// WithParser overrides the report parser.
func (b *RunBuilder) WithParser(parser extract.Parser) *RunBuilder {
	b.parser = parser
	return b
}

// Preflight checks that a local analyzer binary can be found before anything is allocated.
func (b *RunBuilder) Preflight() (*RunBuilder, error) {
	b.start = time.Now()
	if local, ok := b.client.(*contract.LocalAnalyzerClient); ok {
		if _, err := contract.AnalyzerAvailable(local.Binary()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Allocate reserves the run directory and its id.
func (b *RunBuilder) Allocate() (*RunBuilder, error) {
	run, err := AllocateRun(b.cfg.OutputRoot, b.cfg.ProjectPath)
	if err != nil {
		return nil, err
	}
	b.run = run
	return b, nil
}

// Collect invokes the analyzer in every mode and extracts the metrics.
func (b *RunBuilder) Collect() (*RunBuilder, error) {
	metrics, err := NewCollector(b.client, b.parser).Collect(b.ctx, b.run, b.cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("run %d of %s: %w", b.run.ID, b.run.ProjectPath, err)
	}
	b.metrics = metrics
	return b, nil
}

// Summarize builds the summary and writes it into the run directory.
func (b *RunBuilder) Summarize() (*RunBuilder, error) {
	b.summary = BuildSummary(b.run, b.cfg.Exclude, b.metrics)
	path, err := WriteSummary(b.run.Dir, b.summary)
	if err != nil {
		return nil, err
	}
	b.summaryPath = path
	b.end = time.Now()
	return b, nil
}

// Record stores the finished run in the history store when one is configured.
// A failure only produces a warning since the artifacts are already on disk.
func (b *RunBuilder) Record() *RunBuilder {
	if b.mgr == nil {
		return b
	}
	store := b.mgr.GetHistoryStore()
	if store == nil {
		return b
	}
	record := schema.NewRunRecord(b.summary, b.run.Dir, b.start, b.end)
	id, err := store.RecordRun(record)
	if err != nil {
		contract.LogWarn("Failed to record run history", err)
		return b
	}
	b.recordID = id
	return b
}

// GetRun returns the allocated run.
func (b *RunBuilder) GetRun() schema.Run {
	return b.run
}

// GetResult returns the built summary.
func (b *RunBuilder) GetResult() schema.Summary {
	return b.summary
}

// GetSummaryPath returns the path of the written summary artifact.
func (b *RunBuilder) GetSummaryPath() string {
	return b.summaryPath
}

// GetRecordID returns the history record id, or 0 when nothing was recorded.
func (b *RunBuilder) GetRecordID() int64 {
	return b.recordID
}

// Duration returns the wall time from preflight to the written summary.
func (b *RunBuilder) Duration() time.Duration {
	return b.end.Sub(b.start)
}
