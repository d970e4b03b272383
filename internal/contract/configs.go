package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/radonrun/schema"
)

// Default values for configuration.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 1000
)

// DateTimeFormat is the timestamp layout used in console output.
const DateTimeFormat = "2006-01-02 15:04:05"

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectPath string
	Exclude     *string // nil when no exclude pattern was supplied
	OutputRoot  string
	Analyzer    string
	Output      schema.OutputMode
	OutputFile  string
	Limit       int

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args and repeatable flags, so no tag
	ProjectPathStr string
	ExcludeFlags   []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Exclude          string `mapstructure:"exclude"`
	OutputRoot       string `mapstructure:"output-root"`
	Analyzer         string `mapstructure:"analyzer"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Color            string `mapstructure:"color"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Exclude != nil {
		exclude := *c.Exclude
		clone.Exclude = &exclude
	}
	return &clone
}

// WithProject returns a copy of the Config aimed at another project and exclude pattern.
func (c *Config) WithProject(projectPath string, exclude *string) *Config {
	clone := c.Clone()
	clone.ProjectPath = projectPath
	clone.Exclude = exclude
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processProjectPath(cfg, input); err != nil {
		return err
	}
	return ProcessBaseConfig(cfg, input)
}

// ProcessBaseConfig validates everything except the project path. It serves
// commands such as the MCP server that receive the project per request.
func ProcessBaseConfig(cfg *Config, input *ConfigRawInput) error {
	if err := processExclude(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// processProjectPath validates the required positional project path.
func processProjectPath(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.ProjectPathStr) == "" {
		return &UsageError{Msg: "project path is required"}
	}
	cfg.ProjectPath = input.ProjectPathStr
	return nil
}

// processExclude resolves the exclude pattern. Flags take precedence over
// env and config file values. Repeated flags and blank values are rejected
// as analyzer invocation errors because they cannot be forwarded to the analyzer.
func processExclude(cfg *Config, input *ConfigRawInput) error {
	cfg.Exclude = nil

	values := input.ExcludeFlags
	if len(values) == 0 && input.Exclude != "" {
		values = []string{input.Exclude}
	}

	switch len(values) {
	case 0:
		return nil
	case 1:
		pattern, err := ValidateExcludePattern(values[0])
		if err != nil {
			return err
		}
		cfg.Exclude = &pattern
		return nil
	default:
		return &AnalyzerInvocationError{
			Mode: "all",
			Err:  fmt.Errorf("exclude pattern supplied %d times (%s); pass a single comma-separated pattern", len(values), strings.Join(values, ", ")),
		}
	}
}

// ValidateExcludePattern checks that a pattern can be forwarded to the analyzer verbatim.
func ValidateExcludePattern(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", &AnalyzerInvocationError{
			Mode: "all",
			Err:  fmt.Errorf("exclude pattern is empty"),
		}
	}
	if strings.ContainsAny(pattern, "\x00\n\r") {
		return "", &AnalyzerInvocationError{
			Mode: "all",
			Err:  fmt.Errorf("exclude pattern %q contains control characters", pattern),
		}
	}
	return pattern, nil
}

// validateSimpleInputs validates output-related and simple values.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputRoot = strings.TrimSpace(input.OutputRoot)
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = schema.DefaultOutputRoot
	}

	cfg.Analyzer = strings.TrimSpace(input.Analyzer)
	if cfg.Analyzer == "" {
		cfg.Analyzer = schema.DefaultAnalyzerName
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return &UsageError{Msg: fmt.Sprintf("invalid output '%s'. must be text, json, table, csv", input.Output)}
	}
	cfg.OutputFile = input.OutputFile

	cfg.Limit = input.Limit
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultHistoryLimit
	}
	if cfg.Limit > MaxHistoryLimit {
		return &UsageError{Msg: fmt.Sprintf("limit cannot exceed %d runs", MaxHistoryLimit)}
	}

	useColors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return &UsageError{Msg: fmt.Sprintf("invalid color value: %v", err)}
		}
		useColors = parsed
	}
	cfg.UseColors = useColors

	return nil
}

// ProcessHistoryBackend normalizes and validates a history backend and its connection string.
// An empty backend means history tracking is disabled.
func ProcessHistoryBackend(backendStr, connStr string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(backendStr)))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	if err := ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", err
	}
	return backend, nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ProcessHistoryBackend(input.HistoryBackend, input.HistoryDBConnect)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".radonrun_history.db"
	}
	return filepath.Join(homeDir, ".radonrun_history.db")
}
