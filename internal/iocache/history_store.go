package iocache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// runsTable is the name of the table that records completed runs.
const runsTable = "radonrun_runs"

// runColumns lists the columns of runsTable in scan order.
const runColumns = `record_id, run_id, project_path, exclude_pattern, run_dir, start_time, end_time,
	duration_ms, loc, number_of_comments, percentage_of_comments,
	mean_per_block_cc, mean_per_file_effort, mean_per_file_mi`

// Driver names registered by the blank imports above.
const (
	sqliteDriver   = "sqlite"
	mysqlDriver    = "mysql"
	postgresDriver = "pgx"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return sqliteDriver, nil
	case schema.MySQLBackend:
		return mysqlDriver, nil
	case schema.PostgreSQLBackend:
		return postgresDriver, nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings a database for the given backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}

	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
	case schema.MySQLBackend:
		connStr = ensureMySQLParseTime(connStr)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		// and to keep a single in-memory database alive for ":memory:".
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Format: user:password@tcp(host:port)/dbname"
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Format: host=... port=... user=... password=... dbname=..."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The none backend returns a store that accepts and discards every write.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateRunsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateRunsQuery returns the CREATE TABLE query for radonrun_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id INT NOT NULL,
				project_path VARCHAR(1024) NOT NULL,
				exclude_pattern TEXT,
				run_dir VARCHAR(2048) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6) NOT NULL,
				duration_ms BIGINT NOT NULL,
				loc INT NOT NULL,
				number_of_comments INT NOT NULL,
				percentage_of_comments INT NOT NULL,
				mean_per_block_cc DOUBLE NOT NULL,
				mean_per_file_effort DOUBLE NOT NULL,
				mean_per_file_mi DOUBLE NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGSERIAL PRIMARY KEY,
				run_id INT NOT NULL,
				project_path TEXT NOT NULL,
				exclude_pattern TEXT,
				run_dir TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ NOT NULL,
				duration_ms BIGINT NOT NULL,
				loc INT NOT NULL,
				number_of_comments INT NOT NULL,
				percentage_of_comments INT NOT NULL,
				mean_per_block_cc DOUBLE PRECISION NOT NULL,
				mean_per_file_effort DOUBLE PRECISION NOT NULL,
				mean_per_file_mi DOUBLE PRECISION NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				project_path TEXT NOT NULL,
				exclude_pattern TEXT,
				run_dir TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				duration_ms INTEGER NOT NULL,
				loc INTEGER NOT NULL,
				number_of_comments INTEGER NOT NULL,
				percentage_of_comments INTEGER NOT NULL,
				mean_per_block_cc REAL NOT NULL,
				mean_per_file_effort REAL NOT NULL,
				mean_per_file_mi REAL NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordRun stores one completed run and returns its record ID.
func (hs *HistoryStoreImpl) RecordRun(record schema.RunRecord) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, project_path, exclude_pattern, run_dir, start_time, end_time,
		                duration_ms, loc, number_of_comments, percentage_of_comments,
		                mean_per_block_cc, mean_per_file_effort, mean_per_file_mi)
		VALUES (%s)`, quoteTableName(runsTable, hs.backend), placeholders(hs.backend, 13))
	args := []any{
		record.RunID, record.ProjectPath, record.Exclude, record.RunDir,
		formatTime(record.StartTime, hs.backend), formatTime(record.EndTime, hs.backend),
		record.DurationMs, record.LOC, record.NumberOfComments, record.PercentageOfComments,
		record.MeanPerBlockCC, record.MeanPerFileEffort, record.MeanPerFileMI,
	}

	var recordID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		if err := hs.db.QueryRow(query+" RETURNING record_id", args...).Scan(&recordID); err != nil {
			return 0, fmt.Errorf("failed to insert run record: %w", err)
		}
	default: // SQLite and MySQL
		result, err := hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run record: %w", err)
		}
		recordID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read run record ID: %w", err)
		}
	}

	return recordID, nil
}

// ListRuns returns up to limit runs, newest first. An empty projectPath lists every project.
func (hs *HistoryStoreImpl) ListRuns(projectPath string, limit int) ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultHistoryLimit
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	var query string
	var args []any
	if projectPath == "" {
		query = fmt.Sprintf("SELECT %s FROM %s ORDER BY record_id DESC LIMIT %d", runColumns, quotedTableName, limit)
	} else {
		query = fmt.Sprintf("SELECT %s FROM %s WHERE project_path = %s ORDER BY record_id DESC LIMIT %d",
			runColumns, quotedTableName, placeholders(hs.backend, 1), limit)
		args = append(args, projectPath)
	}
	return hs.queryRuns(query, args...)
}

// GetAllRuns retrieves all run records ordered by record ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY record_id", runColumns, quoteTableName(runsTable, hs.backend))
	return hs.queryRuns(query)
}

// queryRuns runs a SELECT over runColumns and scans every row.
func (hs *HistoryStoreImpl) queryRuns(query string, args ...any) ([]schema.RunRecord, error) {
	rows, err := hs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		record, err := hs.scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run records: %w", err)
	}
	return results, nil
}

// scanRun scans one row, handling the text time columns of SQLite.
func (hs *HistoryStoreImpl) scanRun(rows *sql.Rows) (schema.RunRecord, error) {
	var record schema.RunRecord
	var exclude sql.NullString

	switch hs.backend {
	case schema.SQLiteBackend:
		var startStr, endStr string
		if err := rows.Scan(&record.RecordID, &record.RunID, &record.ProjectPath, &exclude, &record.RunDir,
			&startStr, &endStr, &record.DurationMs, &record.LOC, &record.NumberOfComments,
			&record.PercentageOfComments, &record.MeanPerBlockCC, &record.MeanPerFileEffort,
			&record.MeanPerFileMI); err != nil {
			return record, fmt.Errorf("failed to scan run record: %w", err)
		}
		var err error
		if record.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
			return record, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if record.EndTime, err = time.Parse(time.RFC3339Nano, endStr); err != nil {
			return record, fmt.Errorf("failed to parse end_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := rows.Scan(&record.RecordID, &record.RunID, &record.ProjectPath, &exclude, &record.RunDir,
			&record.StartTime, &record.EndTime, &record.DurationMs, &record.LOC, &record.NumberOfComments,
			&record.PercentageOfComments, &record.MeanPerBlockCC, &record.MeanPerFileEffort,
			&record.MeanPerFileMI); err != nil {
			return record, fmt.Errorf("failed to scan run record: %w", err)
		}
	}

	if exclude.Valid {
		pattern := exclude.String
		record.Exclude = &pattern
	}
	return record, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT project_path) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalRuns, &status.DistinctProjects); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[runsTable] = int64(status.TotalRuns)

	if status.TotalRuns == 0 {
		return status, nil
	}

	lastQuery := fmt.Sprintf("SELECT record_id, start_time FROM %s ORDER BY record_id DESC LIMIT 1", quotedTableName)
	oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY record_id ASC LIMIT 1", quotedTableName)

	switch hs.backend {
	case schema.SQLiteBackend:
		var lastStr, oldestStr string
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRecordID, &lastStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if err := hs.db.QueryRow(oldestQuery).Scan(&oldestStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		var err error
		if status.LastRunTime, err = time.Parse(time.RFC3339Nano, lastStr); err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		if status.OldestRunTime, err = time.Parse(time.RFC3339Nano, oldestStr); err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
	default:
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRecordID, &status.LastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if err := hs.db.QueryRow(oldestQuery).Scan(&status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	return status, nil
}
