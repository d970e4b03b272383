// Package outwriter has output and writer logic.
package outwriter

import (
	"io"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the digest of one run using the configured output format.
func (ow *OutWriter) WriteSummary(w io.Writer, summary schema.Summary, cfg *contract.Config) error {
	return WriteSummaryResults(w, summary, cfg)
}

// WriteHistory prints recorded runs using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.RunRecord, cfg *contract.Config) error {
	return WriteHistoryResults(records, cfg)
}
