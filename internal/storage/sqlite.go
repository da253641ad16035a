package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/pstuifzand/codenav/internal/document"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	file_path TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	state     TEXT NOT NULL
);`

// SQLiteStore keeps one row per document. Save still rewrites the whole
// solution so both backends behave the same.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads every document row in save order
func (s *SQLiteStore) Load(ctx context.Context) (*Solution, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT state FROM documents ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	solution := &Solution{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		var state document.State
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("failed to parse document state: %w", err)
		}
		solution.Documents = append(solution.Documents, &state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return solution, nil
}

// Save replaces all rows with the documents of the solution
func (s *SQLiteStore) Save(ctx context.Context, solution *Solution) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	for pos, state := range solution.Documents {
		if state == nil {
			continue
		}
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal document state: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO documents (file_path, position, state) VALUES (?, ?, ?)`,
			state.FilePath, pos, string(data)); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", state.FilePath, err)
		}
	}

	return tx.Commit()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
