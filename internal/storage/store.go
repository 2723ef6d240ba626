// Package storage persists the scheduler's pending tasks and the
// application-state record in SQLite, so neither survives only in memory.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// TaskRow is a pending scheduled task as persisted. Payload is an opaque
// JSON blob owned by the scheduler.
type TaskRow struct {
	ID          string
	Payload     []byte
	NextFireAt  int64 // unix seconds
	IntervalSec int64
	CreatedAt   int64 // unix seconds
}

// Store wraps the SQLite database holding tasks and metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	// metadata: KV storage for the persisted application state.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata table: %w", err)
	}

	// tasks: the pending-order store. One row per scheduled task; rows are
	// deleted when drained and re-inserted under a fresh id on re-arm.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			next_fire_at INTEGER NOT NULL,
			interval_sec INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_next_fire_at ON tasks(next_fire_at);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}

	return &Store{db: db}, nil
}

// InsertTask stores a pending task.
func (s *Store) InsertTask(ctx context.Context, row TaskRow) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (id, payload, next_fire_at, interval_sec, created_at) VALUES (?, ?, ?, ?, ?)",
		row.ID, row.Payload, row.NextFireAt, row.IntervalSec, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", row.ID, err)
	}
	return nil
}

// DeleteTask removes a task by id. Returns false when no such row existed.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return n > 0, nil
}

// DueTasks returns every task whose fire time is at or before now, oldest
// first. The order is stable but carries no priority meaning.
func (s *Store) DueTasks(ctx context.Context, now int64) ([]TaskRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, payload, next_fire_at, interval_sec, created_at FROM tasks WHERE next_fire_at <= ? ORDER BY created_at ASC, id ASC",
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}
	defer rows.Close()

	var due []TaskRow
	for rows.Next() {
		var row TaskRow
		if err := rows.Scan(&row.ID, &row.Payload, &row.NextFireAt, &row.IntervalSec, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		due = append(due, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return due, nil
}

// CountTasks returns the number of pending tasks.
func (s *Store) CountTasks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}

// GetTask fetches one task by id. Returns nil when the task does not exist.
func (s *Store) GetTask(ctx context.Context, id string) (*TaskRow, error) {
	var row TaskRow
	err := s.db.QueryRowContext(ctx,
		"SELECT id, payload, next_fire_at, interval_sec, created_at FROM tasks WHERE id = ?", id,
	).Scan(&row.ID, &row.Payload, &row.NextFireAt, &row.IntervalSec, &row.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return &row, nil
}

// UpsertMetadata saves a key-value pair to the metadata table.
func (s *Store) UpsertMetadata(ctx context.Context, key, value string, ts int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, ts,
	)
	return err
}

// GetMetadata retrieves a value from the metadata table. Returns "" when the
// key is absent.
func (s *Store) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
