package contract

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/radonrun/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError error
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:  "valid minimal config",
			input: &ConfigRawInput{ProjectPathStr: "src/app"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "src/app", cfg.ProjectPath)
				assert.Nil(t, cfg.Exclude)
				assert.Equal(t, schema.DefaultOutputRoot, cfg.OutputRoot)
				assert.Equal(t, schema.DefaultAnalyzerName, cfg.Analyzer)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, DefaultHistoryLimit, cfg.Limit)
				assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
				assert.True(t, cfg.UseColors)
			},
		},
		{
			name:        "missing project path",
			input:       &ConfigRawInput{},
			expectError: ErrUsage,
		},
		{
			name:        "blank project path",
			input:       &ConfigRawInput{ProjectPathStr: "   "},
			expectError: ErrUsage,
		},
		{
			name:  "exclude from flag",
			input: &ConfigRawInput{ProjectPathStr: "p", ExcludeFlags: []string{"tests/*,*.pyc"}},
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Exclude)
				assert.Equal(t, "tests/*,*.pyc", *cfg.Exclude)
			},
		},
		{
			name:  "flag wins over config value",
			input: &ConfigRawInput{ProjectPathStr: "p", ExcludeFlags: []string{"a/*"}, Exclude: "b/*"},
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Exclude)
				assert.Equal(t, "a/*", *cfg.Exclude)
			},
		},
		{
			name:  "exclude from config value",
			input: &ConfigRawInput{ProjectPathStr: "p", Exclude: "b/*"},
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Exclude)
				assert.Equal(t, "b/*", *cfg.Exclude)
			},
		},
		{
			name:        "repeated exclude flag",
			input:       &ConfigRawInput{ProjectPathStr: "p", ExcludeFlags: []string{"a/*", "b/*"}},
			expectError: ErrAnalyzerInvocation,
		},
		{
			name:        "empty exclude flag",
			input:       &ConfigRawInput{ProjectPathStr: "p", ExcludeFlags: []string{""}},
			expectError: ErrAnalyzerInvocation,
		},
		{
			name:        "invalid output",
			input:       &ConfigRawInput{ProjectPathStr: "p", Output: "yaml"},
			expectError: ErrUsage,
		},
		{
			name:  "output is case insensitive",
			input: &ConfigRawInput{ProjectPathStr: "p", Output: "JSON"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.JSONOut, cfg.Output)
			},
		},
		{
			name:        "limit too large",
			input:       &ConfigRawInput{ProjectPathStr: "p", Limit: MaxHistoryLimit + 1},
			expectError: ErrUsage,
		},
		{
			name:        "invalid color",
			input:       &ConfigRawInput{ProjectPathStr: "p", Color: "sometimes"},
			expectError: ErrUsage,
		},
		{
			name:  "color disabled",
			input: &ConfigRawInput{ProjectPathStr: "p", Color: "no"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.UseColors)
			},
		},
		{
			name:  "custom output root and analyzer",
			input: &ConfigRawInput{ProjectPathStr: "p", OutputRoot: " out ", Analyzer: "/usr/local/bin/radon"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "out", cfg.OutputRoot)
				assert.Equal(t, "/usr/local/bin/radon", cfg.Analyzer)
			},
		},
		{
			name:  "sqlite history backend",
			input: &ConfigRawInput{ProjectPathStr: "p", HistoryBackend: "SQLite"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, tt.input)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestProcessBaseConfig_NoProjectPath(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessBaseConfig(cfg, &ConfigRawInput{Output: "json"}))
	assert.Empty(t, cfg.ProjectPath)
	assert.Equal(t, schema.JSONOut, cfg.Output)
}

func TestProcessHistoryBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		conn     string
		expected schema.DatabaseBackend
		wantErr  bool
	}{
		{"empty means none", "", "", schema.NoneBackend, false},
		{"sqlite without conn", "sqlite", "", schema.SQLiteBackend, false},
		{"mysql valid", "mysql", "user:pass@tcp(localhost:3306)/radonrun", schema.MySQLBackend, false},
		{"mysql missing conn", "mysql", "", "", true},
		{"mysql missing tcp", "mysql", "user:pass@localhost/radonrun", "", true},
		{"postgres valid", "postgresql", "host=localhost port=5432 user=u password=p dbname=radonrun", schema.PostgreSQLBackend, false},
		{"postgres missing dbname", "postgresql", "host=localhost", "", true},
		{"unknown backend", "redis", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := ProcessHistoryBackend(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, backend)
		})
	}
}

func TestConfigClone(t *testing.T) {
	exclude := "tests/*"
	cfg := &Config{ProjectPath: "a", Exclude: &exclude, Limit: 5}

	clone := cfg.Clone()
	*clone.Exclude = "other/*"
	assert.Equal(t, "tests/*", *cfg.Exclude)
	assert.Equal(t, 5, clone.Limit)

	moved := cfg.WithProject("b", nil)
	assert.Equal(t, "b", moved.ProjectPath)
	assert.Nil(t, moved.Exclude)
	assert.Equal(t, "a", cfg.ProjectPath)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Equal(t, ".radonrun_history.db", filepath.Base(path))
}
