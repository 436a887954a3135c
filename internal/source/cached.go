package source

import (
	"context"

	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Cache stores the last good deck.
type Cache interface {
	ReadAll(ctx context.Context) ([]models.Dish, error)
	WriteAll(ctx context.Context, dishes []models.Dish) error
}

// CachedSource remembers the last deck fetched from the remote source
// and serves it when the remote fails.
type CachedSource struct {
	remote Source
	cache  Cache
}

// NewCachedSource wraps remote with cache.
func NewCachedSource(remote Source, cache Cache) *CachedSource {
	return &CachedSource{remote: remote, cache: cache}
}

// FetchAll implements Source. The remote error is returned only when the
// cache has nothing to offer.
func (s *CachedSource) FetchAll(ctx context.Context) ([]models.Dish, error) {
	dishes, err := s.remote.FetchAll(ctx)
	if err == nil {
		if werr := s.cache.WriteAll(ctx, dishes); werr != nil {
			log.Printf("cache deck: %v", werr)
		}
		return dishes, nil
	}

	cached, cerr := s.cache.ReadAll(ctx)
	if cerr != nil || len(cached) == 0 {
		return nil, err
	}
	log.Printf("serving %d cached dishes: %v", len(cached), err)
	return cached, nil
}
