// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/radonrun/schema"
)

// AnalyzerClient defines the operations needed to drive the external metrics analyzer.
// This allows the collection logic to be tested without needing a real analyzer executable.
type AnalyzerClient interface {
	// --- Generic / Low-Level ---

	// Run executes the analyzer in the given mode and returns its standard output.
	// The exclude pattern, when non-nil, is forwarded verbatim as the -e flag value.
	Run(ctx context.Context, mode schema.AnalyzerMode, projectPath string, exclude *string, args ...string) ([]byte, error)

	// --- Reports ---

	// RawReport returns the per-file raw size report including the total block.
	RawReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error)

	// ComplexityReport returns the per-block cyclomatic complexity report with its average.
	ComplexityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error)

	// HalsteadReport returns the file-keyed Halstead report as JSON.
	HalsteadReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error)

	// MaintainabilityReport returns the file-keyed maintainability index report as JSON.
	MaintainabilityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error)
}

// HistoryManager defines the interface for managing the run history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking completed runs.
type HistoryStore interface {
	// RecordRun stores one completed run and returns its record ID
	RecordRun(record schema.RunRecord) (int64, error)

	// ListRuns returns the most recent runs, newest first, optionally filtered by project path
	ListRuns(projectPath string, limit int) ([]schema.RunRecord, error)

	// GetAllRuns returns every stored run ordered by record ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
