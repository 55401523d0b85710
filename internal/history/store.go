// Package history records classification runs in a SQLite database so
// batches over many repositories can be compared over time.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one classified repository.
type Run struct {
	ID           string
	BatchID      string // groups runs of one batch invocation; empty for single runs
	Directory    string
	Framework    string
	Language     string
	Parser       string // contributing strategies joined with "+"
	Passed       int
	Failed       int
	Skipped      int
	Total        int
	FailureRatio float64
	Accepted     bool
	Fallback     bool   // true when the fallback sweep produced the result
	Error        string // set when the run did not produce a record
	CreatedAt    time.Time
}

// Store manages the run history database.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// execWithRetry retries statements that hit "database is locked" while
// several processes initialize the same file.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewBatchID returns an identifier grouping the runs of one batch.
func NewBatchID() string {
	return uuid.NewString()
}

// RecordRun stores run, filling in ID and CreatedAt when unset.
// It returns the stored ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, batch_id, directory, framework, language, parser,
			passed, failed, skipped, total, failure_ratio, accepted, fallback, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.BatchID, run.Directory, run.Framework, run.Language, run.Parser,
		run.Passed, run.Failed, run.Skipped, run.Total, run.FailureRatio,
		run.Accepted, run.Fallback, run.Error, run.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, batch_id, directory, framework, language, parser,
	passed, failed, skipped, total, failure_ratio, accepted, fallback, error, created_at`

// RecentRuns lists up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// RunsForDirectory lists runs of one repository directory, newest first.
func (s *Store) RunsForDirectory(ctx context.Context, dir string) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs WHERE directory = ? ORDER BY created_at DESC, rowid DESC`, dir)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Directory, &r.Framework, &r.Language, &r.Parser,
			&r.Passed, &r.Failed, &r.Skipped, &r.Total, &r.FailureRatio,
			&r.Accepted, &r.Fallback, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
