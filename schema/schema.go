// Package schema has models, constants and artifact names for all parts of radonrun.
package schema

// Run identifies one end-to-end execution against one project path.
// The ID is scoped to the normalized project path and only ever increases.
type Run struct {
	ID          int    // Sequential run identifier, starting at 1
	ProjectPath string // Path of the analyzed tree, exactly as supplied
	Dir         string // Run directory that holds every artifact of this run
}

// RawMetrics holds the aggregate size figures from the raw report.
type RawMetrics struct {
	LOC                  int `json:"loc"`
	NumberOfComments     int `json:"number_of_comments"` // single-line + multi-line comments
	PercentageOfComments int `json:"percentage_of_comments"`
}

// ComplexityMetrics holds the analyzer-reported average cyclomatic complexity.
type ComplexityMetrics struct {
	MeanPerBlockCC float64 `json:"mean_per_block_cc"`
}

// HalsteadMetrics holds the mean Halstead effort across all reported files.
type HalsteadMetrics struct {
	MeanPerFileEffort float64 `json:"mean_per_file_effort"`
}

// MaintainabilityMetrics holds the mean maintainability index across all reported files.
type MaintainabilityMetrics struct {
	MeanPerFileMI float64 `json:"mean_per_file_mi"`
}

// CollectedMetrics groups the four extracted metric groups of a run.
type CollectedMetrics struct {
	Raw             RawMetrics
	Complexity      ComplexityMetrics
	Halstead        HalsteadMetrics
	Maintainability MaintainabilityMetrics
}

// Summary is the aggregate record written once per successful run.
// Exclude is nil when no pattern was supplied, which encodes as JSON null.
type Summary struct {
	Run         int                    `json:"run"`
	ProjectPath string                 `json:"project_path"`
	Exclude     *string                `json:"exclude"`
	Raw         RawMetrics             `json:"raw"`
	CC          ComplexityMetrics      `json:"cc"`
	Halstead    HalsteadMetrics        `json:"halstead"`
	MI          MaintainabilityMetrics `json:"mi"`
}

// HasExclude reports whether the summary was produced with an exclude pattern.
func (s Summary) HasExclude() bool {
	return s.Exclude != nil
}

// ExcludeValue returns the exclude pattern or an empty string.
func (s Summary) ExcludeValue() string {
	if s.Exclude == nil {
		return ""
	}
	return *s.Exclude
}
