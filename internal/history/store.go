// Package history keeps a SQLite record of every scan and clean run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/node-module-cleaner/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultLimit is the number of runs Recent returns when asked for zero.
const DefaultLimit = 20

// timeLayout is fixed width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath and brings its
// schema up to date. ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// execWithRetry executes a statement, backing off on "database is locked".
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

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a run. A missing ID is generated and written back.
func (s *Store) Record(ctx context.Context, run *models.RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	query := `INSERT INTO runs
		(id, mode, root, full_scan, started_at, duration_ms,
		 files_scanned, dirs_scanned, node_modules, ignored,
		 matched_files, matched_dirs, matched_bytes, removed, dry_run, aborted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Mode,
		run.Root,
		run.FullScan,
		run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(),
		run.Stats.Files,
		run.Stats.Dirs,
		run.Stats.NodeModules,
		run.Stats.Ignored,
		run.MatchedFiles,
		run.MatchedDirs,
		int64(run.MatchedBytes),
		run.Removed,
		run.DryRun,
		run.Aborted,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, mode, root, full_scan, started_at, duration_ms,
		files_scanned, dirs_scanned, node_modules, ignored,
		matched_files, matched_dirs, matched_bytes, removed, dry_run, aborted
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var (
			run        models.RunRecord
			startedAt  string
			durationMs int64
			bytes      int64
		)
		err := rows.Scan(
			&run.ID,
			&run.Mode,
			&run.Root,
			&run.FullScan,
			&startedAt,
			&durationMs,
			&run.Stats.Files,
			&run.Stats.Dirs,
			&run.Stats.NodeModules,
			&run.Stats.Ignored,
			&run.MatchedFiles,
			&run.MatchedDirs,
			&bytes,
			&run.Removed,
			&run.DryRun,
			&run.Aborted,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at of run %s: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.MatchedBytes = uint64(bytes)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}
