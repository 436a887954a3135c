package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Remote: RemoteConfig{
			BaseURL:           "http://localhost:8080",
			Timeout:           10 * time.Second,
			RequestsPerMinute: 30,
			CacheDeck:         true,
		},

		Deck: DefaultDeckConfig(),

		Storage: StorageConfig{
			Backend: BackendSQLite,
		},

		Server: ServerConfig{
			Addr:              ":8080",
			Backend:           BackendSQLite,
			AllowedOrigins:    []string{"*"},
			RequestsPerSecond: 20,
		},
	}
}

// DefaultDeckConfig returns the interaction constants of the swipe deck.
func DefaultDeckConfig() DeckConfig {
	return DeckConfig{
		TapThreshold:       10,
		SwipeThreshold:     120,
		IndicatorThreshold: 20,
		RestingBackScale:   0.85,

		ExitDuration:        200 * time.Millisecond,
		IndicatorClearDelay: 400 * time.Millisecond,
		ExpandDuration:      900 * time.Millisecond,
		CollapseDuration:    700 * time.Millisecond,

		CellWidthPx:  8,
		CellHeightPx: 16,

		CardWidthRatio:  0.9,
		CardHeightRatio: 0.6,

		DetailRevealFraction: 0.85,
	}
}
