// Package parquet provides data structures and functions for exporting radonrun
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/radonrun/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRow represents one completed run with its summary metrics.
// This struct maps to the radonrun_runs database table.
type RunRow struct {
	// RecordID is the unique identifier of the history record
	RecordID int64 `parquet:"record_id,snappy"`

	// RunID is the per-project run number that names the run directory
	RunID int32 `parquet:"run_id,snappy"`

	// ProjectPath is the analyzed tree, as supplied on the command line
	ProjectPath string `parquet:"project_path,snappy,dict"`

	// Exclude is the exclude pattern forwarded to the analyzer (nullable)
	Exclude *string `parquet:"exclude,optional,snappy"`

	// RunDir is the directory holding the run artifacts
	RunDir string `parquet:"run_dir,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the summary was written
	EndTime time.Time `parquet:"end_time,snappy"`

	// DurationMs is the wall time of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	LOC                  int32   `parquet:"loc,snappy"`
	NumberOfComments     int32   `parquet:"number_of_comments,snappy"`
	PercentageOfComments int32   `parquet:"percentage_of_comments,snappy"`
	MeanPerBlockCC       float64 `parquet:"mean_per_block_cc,snappy"`
	MeanPerFileEffort    float64 `parquet:"mean_per_file_effort,snappy"`
	MeanPerFileMI        float64 `parquet:"mean_per_file_mi,snappy"`
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the RunRow struct tags
	writer := parquet.NewGenericWriter[RunRow](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to RunRow for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, record := range records {
		result[i] = RunRow{
			RecordID:             record.RecordID,
			RunID:                int32(record.RunID),
			ProjectPath:          record.ProjectPath,
			Exclude:              record.Exclude,
			RunDir:               record.RunDir,
			StartTime:            record.StartTime,
			EndTime:              record.EndTime,
			DurationMs:           record.DurationMs,
			LOC:                  int32(record.LOC),
			NumberOfComments:     int32(record.NumberOfComments),
			PercentageOfComments: int32(record.PercentageOfComments),
			MeanPerBlockCC:       record.MeanPerBlockCC,
			MeanPerFileEffort:    record.MeanPerFileEffort,
			MeanPerFileMI:        record.MeanPerFileMI,
		}
	}
	return result
}
