// Package source provides dish decks from the dish server, the local
// cache or the built-in samples.
package source

import (
	"context"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Source supplies the dishes of a deck.
type Source interface {
	FetchAll(ctx context.Context) ([]models.Dish, error)
}

// StaticSource serves a fixed list of dishes.
type StaticSource struct {
	Dishes []models.Dish
	Err    error
}

// FetchAll implements Source.
func (s StaticSource) FetchAll(context.Context) ([]models.Dish, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Dish, len(s.Dishes))
	copy(out, s.Dishes)
	return out, nil
}

// Samples returns a source serving the built-in demo deck.
func Samples() StaticSource {
	return StaticSource{Dishes: models.SampleDishes()}
}
