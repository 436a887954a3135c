package saved

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

var (
	// ErrNotFound is returned when no saved recipe has the requested id.
	ErrNotFound = errors.New("recipe not found")
	// ErrDuplicate is returned when creating a recipe whose id is taken.
	ErrDuplicate = errors.New("recipe already saved")
)

// Library serializes every read-modify-write of the saved-recipe list.
// Each operation finishes its storage round-trip before the next starts.
type Library struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

// NewLibrary creates a library over store.
func NewLibrary(store Store) *Library {
	return &Library{store: store, now: time.Now}
}

// List returns all saved recipes, most recent first.
func (l *Library) List(ctx context.Context) ([]models.Dish, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

// Get returns the recipe with the given id.
func (l *Library) Get(ctx context.Context, id string) (*models.Dish, error) {
	dishes, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dishes {
		if dishes[i].ID == id {
			return &dishes[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddIfAbsent prepends dish unless a recipe with its id exists.
func (l *Library) AddIfAbsent(ctx context.Context, dish models.Dish) (bool, error) {
	dish = dish.ToPrivate(l.now())

	l.mu.Lock()
	defer l.mu.Unlock()

	dishes, err := l.read(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(dishes, dish.ID) >= 0 {
		return false, nil
	}
	if err := l.write(ctx, append([]models.Dish{dish}, dishes...)); err != nil {
		return false, err
	}
	return true, nil
}

// Create saves a new private recipe and returns it with its id filled in.
func (l *Library) Create(ctx context.Context, dish models.Dish) (models.Dish, error) {
	dish = dish.ToPrivate(l.now())

	l.mu.Lock()
	defer l.mu.Unlock()

	dishes, err := l.read(ctx)
	if err != nil {
		return models.Dish{}, err
	}
	if indexOf(dishes, dish.ID) >= 0 {
		return models.Dish{}, fmt.Errorf("%s: %w", dish.ID, ErrDuplicate)
	}
	if err := l.write(ctx, append([]models.Dish{dish}, dishes...)); err != nil {
		return models.Dish{}, err
	}
	return dish, nil
}

// Update replaces the recipe with the same id, keeping its position and
// creation time.
func (l *Library) Update(ctx context.Context, dish models.Dish) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dishes, err := l.read(ctx)
	if err != nil {
		return err
	}
	i := indexOf(dishes, dish.ID)
	if i < 0 {
		return fmt.Errorf("%s: %w", dish.ID, ErrNotFound)
	}

	dish.Privacy = models.PrivacyPrivate
	dish.CreatedAt = dishes[i].CreatedAt
	dishes[i] = dish
	return l.write(ctx, dishes)
}

// Delete removes the recipe with the given id.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dishes, err := l.read(ctx)
	if err != nil {
		return err
	}
	i := indexOf(dishes, id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return l.write(ctx, append(dishes[:i], dishes[i+1:]...))
}

// Search returns recipes whose title contains query (case-insensitive)
// and that carry every tag in tags.
func (l *Library) Search(ctx context.Context, query string, tags []string) ([]models.Dish, error) {
	dishes, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(dishes, query, tags), nil
}

// Filter applies the library search rules to dishes.
func Filter(dishes []models.Dish, query string, tags []string) []models.Dish {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if q != "" && !strings.Contains(strings.ToLower(d.Title), q) {
			continue
		}
		if !hasAllTags(d, tags) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func hasAllTags(d models.Dish, tags []string) bool {
	for _, t := range tags {
		if !d.HasTag(t) {
			return false
		}
	}
	return true
}

func (l *Library) read(ctx context.Context) ([]models.Dish, error) {
	dishes, err := l.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read saved recipes: %w", err)
	}
	return dishes, nil
}

func (l *Library) write(ctx context.Context, dishes []models.Dish) error {
	if err := l.store.WriteAll(ctx, dishes); err != nil {
		return fmt.Errorf("write saved recipes: %w", err)
	}
	return nil
}

func indexOf(dishes []models.Dish, id string) int {
	for i, d := range dishes {
		if d.ID == id {
			return i
		}
	}
	return -1
}
