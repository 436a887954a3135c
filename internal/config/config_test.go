package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckConfigDefaults(t *testing.T) {
	cfg := DefaultDeckConfig()

	assert.Equal(t, 10.0, cfg.TapThreshold)
	assert.Equal(t, 120.0, cfg.SwipeThreshold)
	assert.Equal(t, 0.85, cfg.RestingBackScale)
	assert.Equal(t, 200*time.Millisecond, cfg.ExitDuration)
	assert.Equal(t, 400*time.Millisecond, cfg.IndicatorClearDelay)
	assert.Equal(t, 900*time.Millisecond, cfg.ExpandDuration)
	assert.Equal(t, 700*time.Millisecond, cfg.CollapseDuration)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, BackendSQLite, cfg.Server.Backend)
	assert.True(t, cfg.Remote.CacheDeck)
	assert.Empty(t, cfg.LLM.AnthropicAPIKey)
}

func TestLoadFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DISHDECK_HOME", home)
	t.Setenv("DISHDECK_SERVER_URL", "https://dishes.example.com/")
	t.Setenv("DISHDECK_STORAGE", "FILE")
	t.Setenv("DISHDECK_CACHE_DECK", "false")
	t.Setenv("DISHDECK_SERVER_BACKEND", "firestore")
	t.Setenv("DISHDECK_FIRESTORE_PROJECT", "recipes-123")
	t.Setenv("DISHDECK_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.Equal(t, "https://dishes.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.False(t, cfg.Remote.CacheDeck)
	assert.Equal(t, BackendFirestore, cfg.Server.Backend)
	assert.Equal(t, "recipes-123", cfg.Server.FirestoreProject)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sk-ant-test", cfg.LLM.AnthropicAPIKey)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/data/dishdeck"}
	paths := GetPaths(cfg)

	assert.Equal(t, filepath.Join("/data/dishdeck", "dishdeck.db"), paths.Database)
	assert.Equal(t, filepath.Join("/data/dishdeck", "private_recipes.json"), paths.SavedRecipes)
	assert.Equal(t, "/data/dishdeck", paths.Logs)
}
