package schema

import "time"

// RunRecord represents a row from the radonrun_runs table.
type RunRecord struct {
	RecordID             int64     `json:"record_id"`
	RunID                int       `json:"run"`
	ProjectPath          string    `json:"project_path"`
	Exclude              *string   `json:"exclude"`
	RunDir               string    `json:"run_dir"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	DurationMs           int64     `json:"duration_ms"`
	LOC                  int       `json:"loc"`
	NumberOfComments     int       `json:"number_of_comments"`
	PercentageOfComments int       `json:"percentage_of_comments"`
	MeanPerBlockCC       float64   `json:"mean_per_block_cc"`
	MeanPerFileEffort    float64   `json:"mean_per_file_effort"`
	MeanPerFileMI        float64   `json:"mean_per_file_mi"`
}

// NewRunRecord flattens a summary and its timing into a history row.
func NewRunRecord(summary Summary, runDir string, start, end time.Time) RunRecord {
	return RunRecord{
		RunID:                summary.Run,
		ProjectPath:          summary.ProjectPath,
		Exclude:              summary.Exclude,
		RunDir:               runDir,
		StartTime:            start,
		EndTime:              end,
		DurationMs:           end.Sub(start).Milliseconds(),
		LOC:                  summary.Raw.LOC,
		NumberOfComments:     summary.Raw.NumberOfComments,
		PercentageOfComments: summary.Raw.PercentageOfComments,
		MeanPerBlockCC:       summary.CC.MeanPerBlockCC,
		MeanPerFileEffort:    summary.Halstead.MeanPerFileEffort,
		MeanPerFileMI:        summary.MI.MeanPerFileMI,
	}
}
