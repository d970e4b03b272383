package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/radonrun/core"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/iocache"
	"github.com/huangsam/radonrun/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads the configuration needed by history queries and opens the store.
// It skips project path validation since history commands take an optional filter.
func historySetup(args []string) error {
	if err := loadRawInput(); err != nil {
		return err
	}
	if err := contract.ProcessBaseConfig(cfg, input); err != nil {
		return err
	}
	applyColor()

	if len(args) == 1 {
		cfg.ProjectPath = args[0]
	}

	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, args []string) error {
	return historySetup(args)
}

// historyAdminSetup loads minimal configuration for clear and migrate.
// This does NOT initialize stores or create tables, allowing migrations to run on a fresh database.
func historyAdminSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ProcessHistoryBackend(viper.GetString("history-backend"), viper.GetString("history-db-connect"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iocache.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyAdminSetupWrapper wraps historyAdminSetup to provide PreRunE.
func historyAdminSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyAdminSetup()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of completed runs",
	Long: `Manage the optional history of completed runs.

When a history backend is configured, every successful run is recorded with its
project path, exclude pattern, run directory, timing and summary metrics. The run
directories on disk stay the source of truth; history is an index over them.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics and connection info
  list    - List recent runs, optionally for one project
  export  - Export all runs to Parquet
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Record runs in SQLite and list them
  export RADONRUN_HISTORY_BACKEND=sqlite
  radonrun src/app
  radonrun history list src/app`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := historyManager.GetHistoryStore()
		if store == nil {
			iocache.PrintHistoryStatus(os.Stdout, schema.HistoryStatus{Backend: string(schema.NoneBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List recent runs, newest first",
	Long: `List recorded runs, newest first. Pass a project path to only list its runs.

Examples:
  # Last 20 runs across all projects
  radonrun history list

  # Last 5 runs of one project as CSV
  radonrun history list src/app --limit 5 --output csv --output-file runs.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryList(cfg, historyManager); err != nil {
			contract.LogFatal("Failed to list run history", err)
		}
	},
}

// historyExportCmd exports every run to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export every recorded run to a Parquet file.

Requires: --output-file parameter

Examples:
  radonrun history export --output-file runs.parquet
  duckdb -c "SELECT project_path, avg(mean_per_file_mi) FROM read_parquet('runs.parquet') GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, historyManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history",
	Long: `Delete all recorded runs from the configured backend. Run directories are never touched.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history and migration tables

WARNING: This action cannot be undone. Consider exporting data first.`,
	Args:    cobra.NoArgs,
	PreRunE: historyAdminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  radonrun history migrate --history-backend sqlite

  # Rollback to initial state
  radonrun history migrate --history-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyAdminSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
