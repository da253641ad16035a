// Package storage persists the document state of every file in a workspace
// as a single blob, the way the outline used to be stored as one JSON document.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pstuifzand/codenav/internal/document"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by Open
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Solution is the multi-document blob: the state of every document of a workspace
type Solution struct {
	Documents []*document.State `json:"documents"`
}

// Find returns the state stored for filePath, or nil
func (s *Solution) Find(filePath string) *document.State {
	for _, state := range s.Documents {
		if state != nil && state.FilePath == filePath {
			return state
		}
	}
	return nil
}

// Replace removes the entry for the state's file path and appends the state
func (s *Solution) Replace(state *document.State) {
	kept := s.Documents[:0]
	for _, existing := range s.Documents {
		if existing != nil && existing.FilePath == state.FilePath {
			continue
		}
		kept = append(kept, existing)
	}
	s.Documents = append(kept, state)
}

// Store loads and saves the whole Solution. It offers no transactions:
// callers sequence Load and Save themselves.
type Store interface {
	Load(ctx context.Context) (*Solution, error)
	Save(ctx context.Context, solution *Solution) error
	Close() error
}

// Open creates a store for the given backend
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%q: %w", backend, ErrUnknownBackend)
	}
}

// DefaultPath returns the storage location inside a workspace root
func DefaultPath(root, backend string) string {
	name := "solution.json"
	if backend == BackendSQLite {
		name = "solution.db"
	}
	return filepath.Join(root, ".codenav", name)
}

// LoadDocument returns the stored state for filePath, or nil when the file
// has never been saved
func LoadDocument(ctx context.Context, store Store, filePath string) (*document.State, error) {
	solution, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return solution.Find(filePath), nil
}

// SaveDocument loads the whole solution, replaces the entry for the
// document's file path and saves the solution back. Two concurrent calls
// for the same document race; the last save wins.
func SaveDocument(ctx context.Context, store Store, state *document.State) error {
	solution, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load solution storage: %w", err)
	}

	if solution.Documents == nil {
		solution.Documents = make([]*document.State, 0, 1)
	}
	solution.Replace(state)

	if err := store.Save(ctx, solution); err != nil {
		return fmt.Errorf("failed to save solution storage: %w", err)
	}
	return nil
}
