package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads the solution from the JSON file
func (s *JSONStore) Load(ctx context.Context) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing saved yet
			return &Solution{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var solution Solution
	if err := json.Unmarshal(data, &solution); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &solution, nil
}

// Save saves the solution to the JSON file
func (s *JSONStore) Save(ctx context.Context, solution *Solution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(solution, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Close is a no-op for file storage
func (s *JSONStore) Close() error {
	return nil
}

// FileExists checks if the storage file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
