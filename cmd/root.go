package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/radonrun/core"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/iocache"
	"github.com/huangsam/radonrun/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyManager is the global history manager instance.
var historyManager contract.HistoryManager = iocache.Manager

// rootCmd runs the analyzer against one project path.
var rootCmd = &cobra.Command{
	Use:   "radonrun <path>",
	Short: "Run radon metrics on a source tree and keep every run.",
	Long: `radonrun invokes the radon analyzer in raw, cc, hal and mi modes against a
source tree, stores every report in a numbered run directory and prints a digest.

Each invocation allocates radon_runs/run_<id>_<project>, where <id> is one past the
highest existing id for the same project and <project> is the path with every
separator replaced by an underscore. The run directory holds:
  raw.txt, cc.txt   - text reports, stored verbatim
  hal.json, mi.json - JSON reports, stored verbatim
  summary.json      - the aggregate record of the run

Examples:
  # Analyze a package
  radonrun src/app

  # Skip tests and migrations (forwarded verbatim as radon -e)
  radonrun src/app --exclude "tests/*,migrations/*"

  # Print the summary record instead of the digest
  radonrun src/app --output json

  # Keep a history of runs in SQLite
  radonrun src/app --history-backend sqlite`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            runSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRun(rootCtx, cfg, historyManager)
	},
}

// initConfig reads in ENV variables and sets defaults.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("RADONRUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("exclude", "")
	viper.SetDefault("output-root", schema.DefaultOutputRoot)
	viper.SetDefault("analyzer", schema.DefaultAnalyzerName)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("limit", contract.DefaultHistoryLimit)
	viper.SetDefault("output-file", "")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".radonrun") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	return nil
}

// loadRawInput reads the config file and unmarshals every resolved value into input.
func loadRawInput() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// applyColor turns off every color when the user disabled it.
func applyColor() {
	if !cfg.UseColors {
		color.NoColor = true
	}
}

// runSetup unmarshals config and runs validation for a run.
func runSetup(cmd *cobra.Command, args []string) error {
	// A run needs exactly one project path; print usage to stdout without it.
	if len(args) == 0 {
		cmd.SetOut(os.Stdout)
		_ = cmd.Usage()
		return &contract.UsageError{Msg: "project path is required"}
	}

	if err := loadRawInput(); err != nil {
		return err
	}

	// 3. Handle positional arguments and the repeatable exclude flag (which Viper doesn't do).
	input.ProjectPathStr = args[0]
	excludes, err := cmd.Flags().GetStringArray("exclude")
	if err != nil {
		return err
	}
	input.ExcludeFlags = excludes

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	applyColor()

	// 5. Initialize history with validated config. A run never fails because of history.
	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		contract.LogWarn("History disabled for this run", err)
	}

	return nil
}

// runSetupWrapper wraps runSetup to provide Cobra's PreRunE.
func runSetupWrapper(cmd *cobra.Command, args []string) error {
	return runSetup(cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetHistoryManager sets the global history manager.
func SetHistoryManager(mgr contract.HistoryManager) {
	historyManager = mgr
}
