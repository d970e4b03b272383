package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResults outputs the digest of a run, dispatching based on the output format configured.
func WriteSummaryResults(w io.Writer, summary schema.Summary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, summary); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.TableOut:
		if err := writeSummaryTable(w, summary, cfg.UseColors); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVSummary(w, summary); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeTextSummary(w, summary); err != nil {
			return fmt.Errorf("error writing text output: %w", err)
		}
	}
	return nil
}

// writeTextSummary prints the digest lines in their fixed order.
// The exclude line only appears when a pattern was supplied.
func writeTextSummary(w io.Writer, summary schema.Summary) error {
	lines := []string{
		fmt.Sprintf("Run: %d", summary.Run),
		fmt.Sprintf("Project path: %s", summary.ProjectPath),
	}
	if summary.HasExclude() {
		lines = append(lines, fmt.Sprintf("Exclude: %s", summary.ExcludeValue()))
	}
	lines = append(lines,
		fmt.Sprintf("LOC: %d", summary.Raw.LOC),
		fmt.Sprintf("Number of comments: %d", summary.Raw.NumberOfComments),
		fmt.Sprintf("Percentage of comments: %d%%", summary.Raw.PercentageOfComments),
		fmt.Sprintf("Mean per-block CC: %s", schema.FormatMetric(summary.CC.MeanPerBlockCC)),
		fmt.Sprintf("Mean per-file Halstead effort: %s", schema.FormatMetric(summary.Halstead.MeanPerFileEffort)),
		fmt.Sprintf("Mean per-file MI: %s", schema.FormatMetric(summary.MI.MeanPerFileMI)),
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryTable renders the digest as a metric table with graded labels.
func writeSummaryTable(w io.Writer, summary schema.Summary, useColors bool) error {
	enriched := schema.EnrichSummary(summary)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Grade"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"LOC", strconv.Itoa(summary.Raw.LOC), ""},
		{"Comments", strconv.Itoa(summary.Raw.NumberOfComments), ""},
		{"Comment %", strconv.Itoa(summary.Raw.PercentageOfComments) + "%", ""},
		{"Mean CC", schema.FormatMetric(summary.CC.MeanPerBlockCC), gradeLabel(enriched.CCGrade, useColors)},
		{"Mean Effort", schema.FormatMetric(summary.Halstead.MeanPerFileEffort), ""},
		{"Mean MI", schema.FormatMetric(summary.MI.MeanPerFileMI), gradeLabel(enriched.MIGrade, useColors)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	footer := fmt.Sprintf("Run %d of %s", summary.Run, summary.ProjectPath)
	if summary.HasExclude() {
		footer += fmt.Sprintf(" (exclude: %s)", summary.ExcludeValue())
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

// summaryCSVHeader lists the columns of the summary CSV in summary order.
var summaryCSVHeader = []string{
	"run",
	"project_path",
	"exclude",
	"loc",
	"number_of_comments",
	"percentage_of_comments",
	"mean_per_block_cc",
	"mean_per_file_effort",
	"mean_per_file_mi",
}

// writeCSVSummary writes the summary as a header and a single row.
func writeCSVSummary(w io.Writer, summary schema.Summary) error {
	return writeCSVWithHeader(w, summaryCSVHeader, func(cw *csv.Writer) error {
		return cw.Write([]string{
			strconv.Itoa(summary.Run),
			summary.ProjectPath,
			summary.ExcludeValue(),
			strconv.Itoa(summary.Raw.LOC),
			strconv.Itoa(summary.Raw.NumberOfComments),
			strconv.Itoa(summary.Raw.PercentageOfComments),
			schema.FormatMetric(summary.CC.MeanPerBlockCC),
			schema.FormatMetric(summary.Halstead.MeanPerFileEffort),
			schema.FormatMetric(summary.MI.MeanPerFileMI),
		})
	})
}
