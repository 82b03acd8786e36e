package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaronfang/todo-app/internal/model"
	_ "modernc.org/sqlite"
)

// SQLite is an alternative persistence adapter backed by a local
// SQLite database. The schema mirrors the JSON document field for
// field, with an explicit position column preserving the flat order.
type SQLite struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path
// (~/.todoapp/tasks.db).
func DefaultDBPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.db"), nil
}

// OpenSQLite opens or creates the database and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	migrations := []string{
		migrationCreateRecords,
	}
	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateRecords = `
CREATE TABLE IF NOT EXISTS records (
    task_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    done INTEGER NOT NULL DEFAULT 0,
    cancelled INTEGER NOT NULL DEFAULT 0,
    urgent INTEGER NOT NULL DEFAULT 0,
    was_urgent INTEGER NOT NULL DEFAULT 0,
    separator INTEGER NOT NULL DEFAULT 0,
    title INTEGER NOT NULL DEFAULT 0,
    completed_time TEXT NOT NULL DEFAULT '',
    deadline TEXT NOT NULL DEFAULT '',
    custom_bg_color TEXT NOT NULL DEFAULT '',
    is_subtask INTEGER NOT NULL DEFAULT 0,
    parent_task_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
`

// Load reads all records in flat order.
func (s *SQLite) Load() ([]model.Record, error) {
	rows, err := s.db.Query(`
		SELECT task_id, name, done, cancelled, urgent, was_urgent,
		       separator, title, completed_time, deadline,
		       custom_bg_color, is_subtask, parent_task_id
		FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Done, &r.Cancelled,
			&r.Urgent, &r.WasUrgent, &r.Separator, &r.HasTitle,
			&r.CompletedAt, &r.Deadline, &r.CustomColor,
			&r.IsSubtask, &r.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the whole table with the given records in a single
// transaction, mirroring the whole-file overwrite of the JSON adapter.
func (s *SQLite) Save(records []model.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (task_id, position, name, done, cancelled,
		    urgent, was_urgent, separator, title, completed_time,
		    deadline, custom_bg_color, is_subtask, parent_task_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(r.ID, i, r.Name, r.Done, r.Cancelled,
			r.Urgent, r.WasUrgent, r.Separator, r.HasTitle,
			r.CompletedAt, r.Deadline, r.CustomColor,
			r.IsSubtask, r.ParentID); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return tx.Commit()
}
