package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/parquet"
)

// ExecuteHistoryExport exports every recorded run to a Parquet file and reports progress to w.
func ExecuteHistoryExport(w io.Writer, mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()
	if store == nil {
		return errors.New("history is disabled. Set --history-backend to sqlite, mysql or postgresql")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d across %d projects\n", status.TotalRuns, status.DistinctProjects)

	records, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve run history: %w", err)
	}

	rows := parquet.ConvertRunRecords(records)
	if err := parquet.WriteRunsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write run history: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(rows), outputFile)

	return nil
}
