// Package cmd defines the command-line interface for radonrun.
package cmd

import (
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// The exclude flag is read directly so repeated values can be rejected
	rootCmd.Flags().StringArrayP("exclude", "e", nil, "Exclude pattern forwarded verbatim to radon -e (e.g. \"tests/*,docs/*\")")

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output-root", schema.DefaultOutputRoot, "Directory that holds every run directory")
	rootCmd.PersistentFlags().String("analyzer", schema.DefaultAnalyzerName, "Analyzer executable to invoke")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or table or csv")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for history (sqlite path, user:pass@tcp(host:port)/dbname, or host=... dbname=...)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all persistent flags of historyCmd to Viper
	historyCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of runs to list")
	historyCmd.PersistentFlags().String("output-file", "", "Path to write list or export output to")
	if err := viper.BindPFlags(historyCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
