package cli

import (
	"fmt"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/db"
	"github.com/asteroid-belt/dishdeck/internal/deck"
	"github.com/asteroid-belt/dishdeck/internal/importer"
	"github.com/asteroid-belt/dishdeck/internal/llm"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/source"
)

// services bundles the stores and clients shared by the commands.
type services struct {
	cfg     *config.Config
	db      *db.DB
	library *saved.Library
	remote  *source.HTTPSource
}

// openServices opens the local database and builds the saved-recipe
// library on the configured storage backend.
func openServices(cfg *config.Config) (*services, error) {
	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	var store saved.Store
	switch cfg.Storage.Backend {
	case config.BackendFile:
		store = saved.NewFileStore(paths.SavedRecipes)
	case config.BackendSQLite, "":
		store = db.NewCollectionStore(database, models.CollectionPrivateRecipes)
	default:
		_ = database.Close()
		return nil, fmt.Errorf("invalid storage backend %q (supported: sqlite, file)", cfg.Storage.Backend)
	}

	return &services{
		cfg:     cfg,
		db:      database,
		library: saved.NewLibrary(store),
		remote:  source.NewHTTPSource(cfg.Remote.BaseURL, cfg.Remote.Timeout, cfg.Remote.RequestsPerMinute),
	}, nil
}

// deckSource returns the fetcher for the swipe deck, falling back to the
// last good deck when caching is on.
func (s *services) deckSource() deck.Fetcher {
	if !s.cfg.Remote.CacheDeck {
		return s.remote
	}
	return source.NewCachedSource(s.remote, db.NewCollectionStore(s.db, models.CollectionDeckCache))
}

func (s *services) Close() {
	if err := s.db.Close(); err != nil {
		log.Errorf("close database: %v", err)
	}
}

// newImporter builds a recipe importer, with LLM extraction when a
// provider key is configured.
func newImporter(cfg *config.Config) *importer.Importer {
	if !llm.IsConfigured(cfg.LLM) {
		return importer.New()
	}
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		log.Printf("llm extraction disabled: %v", err)
		return importer.New()
	}
	return importer.New(importer.WithExtractor(importer.NewLLMExtractor(provider)))
}
