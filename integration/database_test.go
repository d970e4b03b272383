//go:build database

package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRadonrunWithMySQL tests the radonrun CLI with a MySQL history backend.
func TestRadonrunWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "radonrun",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/radonrun", host, port.Port())
	exerciseHistoryBackend(t, "mysql", connStr)
}

// TestRadonrunWithPostgres tests the radonrun CLI with a PostgreSQL history backend.
func TestRadonrunWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseHistoryBackend(t, "postgresql", connStr)
}

// exerciseHistoryBackend runs the history lifecycle against one backend.
func exerciseHistoryBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	workDir := t.TempDir()
	env := []string{
		"RADONRUN_ANALYZER=" + fakeAnalyzerPath(),
		"RADONRUN_COLOR=no",
		"RADONRUN_HISTORY_BACKEND=" + backend,
		"RADONRUN_HISTORY_DB_CONNECT=" + connStr,
	}

	res := runCommand(t, workDir, env, "history", "clear")
	require.Equal(t, 0, res.ExitCode, res.Stderr)

	res = runCommand(t, workDir, env, "history", "migrate")
	require.Equal(t, 0, res.ExitCode, res.Stderr)

	res = runCommand(t, workDir, env, "src/app", "-e", "tests/*")
	require.Equal(t, 0, res.ExitCode, res.Stderr)

	res = runCommand(t, workDir, env, "history", "list", "src/app", "--output", "csv")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "src/app,tests/*")

	res = runCommand(t, workDir, env, "history", "status")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Contains(t, res.Stdout, "Total Runs: 1")

	res = runCommand(t, workDir, env, "history", "migrate", "--target-version", "0")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
}
