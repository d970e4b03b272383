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

// WriteHistoryResults outputs recorded runs to the configured output file (stdout when empty).
func WriteHistoryResults(records []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONHistory(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, records)
		}, "Wrote CSV")
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, GetMaxTablePathWidth(), cfg.UseColors)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextHistory(w, records)
		}, "Wrote text")
	}
}

// writeJSONHistory writes the records as a JSON array, never null.
func writeJSONHistory(w io.Writer, records []schema.RunRecord) error {
	if records == nil {
		records = []schema.RunRecord{}
	}
	return writeJSON(w, records)
}

// writeTextHistory prints one line per run.
func writeTextHistory(w io.Writer, records []schema.RunRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}
	for _, r := range records {
		line := fmt.Sprintf("Run %d of %s at %s: LOC %d, CC %s, effort %s, MI %s",
			r.RunID, r.ProjectPath, r.StartTime.Local().Format(contract.DateTimeFormat), r.LOC,
			schema.FormatMetric(r.MeanPerBlockCC), schema.FormatMetric(r.MeanPerFileEffort),
			schema.FormatMetric(r.MeanPerFileMI))
		if r.Exclude != nil {
			line += fmt.Sprintf(" (exclude: %s)", *r.Exclude)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeHistoryTable generates and writes the human-readable history table.
func writeHistoryTable(w io.Writer, records []schema.RunRecord, pathWidth int, useColors bool) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Project", "Started", "LOC", "CC", "Effort", "MI"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			strconv.Itoa(r.RunID),
			contract.TruncatePath(r.ProjectPath, pathWidth),
			r.StartTime.Local().Format(contract.DateTimeFormat),
			strconv.Itoa(r.LOC),
			fmt.Sprintf("%.2f %s", r.MeanPerBlockCC, gradeLabel(schema.ComplexityGrade(r.MeanPerBlockCC), useColors)),
			fmt.Sprintf("%.2f", r.MeanPerFileEffort),
			fmt.Sprintf("%.2f %s", r.MeanPerFileMI, gradeLabel(schema.MaintainabilityGrade(r.MeanPerFileMI), useColors)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(records))
	return err
}

// historyCSVHeader lists the columns of the history CSV.
var historyCSVHeader = []string{
	"record_id",
	"run",
	"project_path",
	"exclude",
	"run_dir",
	"start_time",
	"duration_ms",
	"loc",
	"number_of_comments",
	"percentage_of_comments",
	"mean_per_block_cc",
	"mean_per_file_effort",
	"mean_per_file_mi",
}

// writeCSVHistory writes one CSV row per run.
func writeCSVHistory(w io.Writer, records []schema.RunRecord) error {
	return writeCSVWithHeader(w, historyCSVHeader, func(cw *csv.Writer) error {
		for _, r := range records {
			exclude := ""
			if r.Exclude != nil {
				exclude = *r.Exclude
			}
			row := []string{
				strconv.FormatInt(r.RecordID, 10),
				strconv.Itoa(r.RunID),
				r.ProjectPath,
				exclude,
				r.RunDir,
				r.StartTime.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				strconv.FormatInt(r.DurationMs, 10),
				strconv.Itoa(r.LOC),
				strconv.Itoa(r.NumberOfComments),
				strconv.Itoa(r.PercentageOfComments),
				schema.FormatMetric(r.MeanPerBlockCC),
				schema.FormatMetric(r.MeanPerFileEffort),
				schema.FormatMetric(r.MeanPerFileMI),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
