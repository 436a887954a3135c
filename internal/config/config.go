// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all dishdeck data
	BaseDir string

	Remote  RemoteConfig
	Deck    DeckConfig
	Storage StorageConfig
	Server  ServerConfig
	LLM     LLMConfig
}

// RemoteConfig configures the dish server client.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerMinute caps outgoing requests to the dish server.
	RequestsPerMinute int
	// CacheDeck keeps the last fetched deck for offline use.
	CacheDeck bool
}

// DeckConfig holds the swipe-deck interaction tuning.
// Distances are in px-equivalent units.
type DeckConfig struct {
	TapThreshold       float64
	SwipeThreshold     float64
	IndicatorThreshold float64
	RestingBackScale   float64

	ExitDuration        time.Duration
	IndicatorClearDelay time.Duration
	ExpandDuration      time.Duration
	CollapseDuration    time.Duration

	// Size of one terminal cell in px-equivalent units.
	CellWidthPx  float64
	CellHeightPx float64

	// Card size as a fraction of the screen.
	CardWidthRatio  float64
	CardHeightRatio float64

	// DetailRevealFraction is how far (0..1) the expand animation must
	// progress before detail content becomes readable.
	DetailRevealFraction float64
}

// StorageConfig selects the local recipe store backend.
type StorageConfig struct {
	Backend string // "sqlite" or "file"
}

// ServerConfig configures `dishdeck serve`.
type ServerConfig struct {
	Addr             string
	Backend          string // "sqlite" or "firestore"
	FirestoreProject string
	AllowedOrigins   []string
	// RequestsPerSecond is the global request budget; 0 disables limiting.
	RequestsPerSecond float64
}

// LLMConfig holds LLM provider configuration for URL import.
type LLMConfig struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// "anthropic" or "openai"; auto-detected from keys when empty
	DefaultProvider string
	DefaultModel    string
}

// Storage backends.
const (
	BackendSQLite    = "sqlite"
	BackendFile      = "file"
	BackendFirestore = "firestore"
)

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if dir := os.Getenv("DISHDECK_HOME"); dir != "" {
		cfg.BaseDir = dir
	}
	if url := os.Getenv("DISHDECK_SERVER_URL"); url != "" {
		cfg.Remote.BaseURL = strings.TrimRight(url, "/")
	}
	if v := os.Getenv("DISHDECK_CACHE_DECK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Remote.CacheDeck = b
		}
	}
	if backend := os.Getenv("DISHDECK_STORAGE"); backend != "" {
		cfg.Storage.Backend = strings.ToLower(backend)
	}
	if addr := os.Getenv("DISHDECK_LISTEN_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if backend := os.Getenv("DISHDECK_SERVER_BACKEND"); backend != "" {
		cfg.Server.Backend = strings.ToLower(backend)
	}
	if project := os.Getenv("DISHDECK_FIRESTORE_PROJECT"); project != "" {
		cfg.Server.FirestoreProject = project
	}
	if origins := os.Getenv("DISHDECK_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.LLM.AnthropicAPIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.LLM.OpenAIAPIKey = apiKey
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	return os.MkdirAll(cfg.BaseDir, 0755)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
