// Package manifest reads and writes recipe box files: a portable export
// of the private recipe list.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

const (
	// FileName is the recipe box file name.
	FileName = "dishdeck.json"

	// CurrentVersion is the current recipe box format version.
	CurrentVersion = 1
)

// RecipeBox is the JSON structure of dishdeck.json.
type RecipeBox struct {
	Version int            `json:"version"`
	Recipes []models.Dish `json:"recipes"`
}

// Read reads a recipe box from the given directory.
// Returns nil, nil if the file does not exist.
func Read(dir string) (*RecipeBox, error) {
	p := Path(dir)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recipe box: %w", err)
	}

	var box RecipeBox
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, fmt.Errorf("parse recipe box: %w", err)
	}
	if box.Version > CurrentVersion {
		return nil, fmt.Errorf("unsupported recipe box version %d", box.Version)
	}

	if box.Recipes == nil {
		box.Recipes = []models.Dish{}
	}

	return &box, nil
}

// Write writes a recipe box to the given directory using atomic file operations.
func Write(dir string, box *RecipeBox) error {
	if box.Version == 0 {
		box.Version = CurrentVersion
	}
	if box.Recipes == nil {
		box.Recipes = []models.Dish{}
	}

	data, err := json.MarshalIndent(box, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recipe box: %w", err)
	}

	// Append trailing newline
	data = append(data, '\n')

	p := Path(dir)

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Atomic write: temp file + rename
	tmpPath := p + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, p); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename recipe box: %w", err)
	}

	return nil
}

// Path returns the full path to dishdeck.json in the given directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// New creates a recipe box holding dishes.
func New(dishes []models.Dish) *RecipeBox {
	box := &RecipeBox{
		Version: CurrentVersion,
		Recipes: append([]models.Dish(nil), dishes...),
	}
	if box.Recipes == nil {
		box.Recipes = []models.Dish{}
	}
	return box
}

// RecipeCount returns the number of recipes in the box.
func (b *RecipeBox) RecipeCount() int {
	return len(b.Recipes)
}

// SortedTitles returns the display titles in alphabetical order.
func (b *RecipeBox) SortedTitles() []string {
	titles := make([]string, 0, len(b.Recipes))
	for i := range b.Recipes {
		titles = append(titles, b.Recipes[i].DisplayTitle())
	}
	sort.Strings(titles)
	return titles
}
