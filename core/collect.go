package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/radonrun/core/extract"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

// Collector drives the four analyzer invocations of a run and extracts their metrics.
type Collector struct {
	client contract.AnalyzerClient
	parser extract.Parser
}

// NewCollector creates a collector. A nil parser falls back to extract.Default.
func NewCollector(client contract.AnalyzerClient, parser extract.Parser) *Collector {
	if parser == nil {
		parser = extract.Default
	}
	return &Collector{client: client, parser: parser}
}

// Collect runs raw, cc, hal and mi in that order against the run's project,
// persisting every report inside the run directory. The first failure aborts
// the collection; artifacts of earlier steps stay on disk.
func (c *Collector) Collect(ctx context.Context, run schema.Run, exclude *string) (schema.CollectedMetrics, error) {
	var metrics schema.CollectedMetrics

	raw, err := c.client.RawReport(ctx, run.ProjectPath, exclude)
	if err != nil {
		return metrics, err
	}
	if err := writeArtifact(run.Dir, schema.RawArtifact, raw); err != nil {
		return metrics, err
	}
	if metrics.Raw, err = c.parser.ParseRaw(raw); err != nil {
		return metrics, err
	}

	cc, err := c.client.ComplexityReport(ctx, run.ProjectPath, exclude)
	if err != nil {
		return metrics, err
	}
	if err := writeArtifact(run.Dir, schema.ComplexityArtifact, cc); err != nil {
		return metrics, err
	}
	if metrics.Complexity, err = c.parser.ParseComplexity(cc); err != nil {
		return metrics, err
	}

	hal, err := c.client.HalsteadReport(ctx, run.ProjectPath, exclude)
	if err != nil {
		return metrics, err
	}
	if err := writeStructuredArtifact(run.Dir, schema.HalsteadArtifact, extract.HalsteadReport, hal); err != nil {
		return metrics, err
	}
	if metrics.Halstead, err = c.parser.ParseHalstead(hal); err != nil {
		return metrics, err
	}

	mi, err := c.client.MaintainabilityReport(ctx, run.ProjectPath, exclude)
	if err != nil {
		return metrics, err
	}
	if err := writeStructuredArtifact(run.Dir, schema.MaintainabilityArtifact, extract.MaintainabilityReport, mi); err != nil {
		return metrics, err
	}
	if metrics.Maintainability, err = c.parser.ParseMaintainability(mi); err != nil {
		return metrics, err
	}

	return metrics, nil
}

// writeArtifact stores a report verbatim in the run directory.
func writeArtifact(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return nil
}

// writeStructuredArtifact stores a JSON report once it is known to decode.
// Malformed output is never persisted.
func writeStructuredArtifact(dir, name, report string, data []byte) error {
	if !json.Valid(data) {
		return &contract.ParseError{Report: report, Field: "valid JSON document"}
	}
	return writeArtifact(dir, name, data)
}
