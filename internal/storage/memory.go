package storage

import (
	"context"
	"sync"

	"github.com/pstuifzand/codenav/internal/document"
)

// MemoryStore keeps the solution in memory. Load and Save copy the
// documents so callers never share state with the store.
type MemoryStore struct {
	mu        sync.Mutex
	documents []*document.State
	saves     int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored solution
func (m *MemoryStore) Load(ctx context.Context) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Solution{Documents: cloneStates(m.documents)}, nil
}

// Save stores a copy of the solution
func (m *MemoryStore) Save(ctx context.Context, solution *Solution) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = cloneStates(solution.Documents)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func cloneStates(states []*document.State) []*document.State {
	if states == nil {
		return nil
	}
	result := make([]*document.State, 0, len(states))
	for _, state := range states {
		if state != nil {
			result = append(result, state.Clone())
		}
	}
	return result
}
