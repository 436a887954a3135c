package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/asteroid-belt/dishdeck/internal/db"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ErrNotFound is returned by repositories when a dish does not exist.
var ErrNotFound = errors.New("dish not found")

// Repository stores the public dish collection.
type Repository interface {
	List(ctx context.Context, tags []string) ([]models.Dish, error)
	// Get returns nil, nil when the dish does not exist.
	Get(ctx context.Context, id string) (*models.Dish, error)
	Create(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (int, error)
	Filters(ctx context.Context) ([]models.FilterCategory, error)
}

// SQLRepository keeps dishes in the local sqlite database.
type SQLRepository struct {
	db *db.DB
}

// NewSQLRepository creates a repository over database.
func NewSQLRepository(database *db.DB) *SQLRepository {
	return &SQLRepository{db: database}
}

func (r *SQLRepository) List(ctx context.Context, tags []string) ([]models.Dish, error) {
	return r.db.ListDishes(ctx, tags)
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Dish, error) {
	return r.db.GetDish(ctx, id)
}

func (r *SQLRepository) Create(ctx context.Context, dish *models.Dish) error {
	return r.db.CreateDish(ctx, dish)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.DeleteDish(ctx, id), id)
}

func (r *SQLRepository) Like(ctx context.Context, id string) (int, error) {
	n, err := r.db.LikeDish(ctx, id)
	return n, translate(err, id)
}

func (r *SQLRepository) Filters(ctx context.Context) ([]models.FilterCategory, error) {
	return r.db.ListFilterCategories(ctx)
}

func translate(err error, id string) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return err
}
