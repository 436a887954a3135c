package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database     string // SQLite database (saved recipes, deck cache, server data)
	SavedRecipes string // JSON file used by the "file" storage backend
	Logs         string // Directory holding dishdeck.log
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database:     filepath.Join(cfg.BaseDir, "dishdeck.db"),
		SavedRecipes: filepath.Join(cfg.BaseDir, "private_recipes.json"),
		Logs:         cfg.BaseDir,
	}
}

// DefaultBaseDir returns $XDG_DATA_HOME/dishdeck.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "dishdeck")
}
