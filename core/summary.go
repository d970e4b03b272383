package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/radonrun/schema"
)

// BuildSummary assembles the summary record of a run.
func BuildSummary(run schema.Run, exclude *string, metrics schema.CollectedMetrics) schema.Summary {
	return schema.Summary{
		Run:         run.ID,
		ProjectPath: run.ProjectPath,
		Exclude:     exclude,
		Raw:         metrics.Raw,
		CC:          metrics.Complexity,
		Halstead:    metrics.Halstead,
		MI:          metrics.Maintainability,
	}
}

// WriteSummary writes summary.json into the run directory with two-space indentation.
func WriteSummary(dir string, summary schema.Summary) (string, error) {
	data, err := MarshalSummary(summary)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, schema.SummaryArtifact)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return path, nil
}

// MarshalSummary encodes a summary the way it is stored on disk, without a trailing newline.
func MarshalSummary(summary schema.Summary) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(summary); err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
