// Package saved manages the local list of private recipes.
// The list is stored as a whole and rewritten on every change.
package saved

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Store reads and writes the whole saved-recipe list.
type Store interface {
	ReadAll(ctx context.Context) ([]models.Dish, error)
	WriteAll(ctx context.Context, dishes []models.Dish) error
}

// fileData represents the JSON file structure.
type fileData struct {
	Version int           `json:"version"`
	Recipes []models.Dish `json:"privateRecipes"`
}

// FileStore keeps the list in a JSON file.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// ReadAll reads the list. A missing or corrupted file reads as empty.
func (s *FileStore) ReadAll(_ context.Context) ([]models.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Dish{}, nil
		}
		return nil, err
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		// Corrupted file, start over
		return []models.Dish{}, nil
	}
	if fd.Recipes == nil {
		fd.Recipes = []models.Dish{}
	}
	return fd.Recipes, nil
}

// WriteAll replaces the list atomically.
func (s *FileStore) WriteAll(_ context.Context, dishes []models.Dish) error {
	if dishes == nil {
		dishes = []models.Dish{}
	}
	data, err := json.MarshalIndent(fileData{Version: 1, Recipes: dishes}, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}
