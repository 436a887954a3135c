package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew_InMemory(t *testing.T) {
	db, err := New(DefaultConfig(":memory:"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	n, err := db.CountDishes(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionStore(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	store := NewCollectionStore(db, models.CollectionPrivateRecipes)

	dishes, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, dishes)

	in := []models.Dish{
		{
			ID:          "private-1",
			Title:       "Pesto",
			Tags:        []string{"italian"},
			Ingredients: models.IngredientList{models.StructuredIngredient("basil", "2", "cups")},
			Directions:  models.StepList{"Blend"},
			Rating:      models.ValidRating(8),
			Privacy:     models.PrivacyPrivate,
		},
	}
	require.NoError(t, store.WriteAll(ctx, in))
	require.NoError(t, store.WriteAll(ctx, in), "second write upserts")

	out, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Pesto", out[0].Title)
	assert.Equal(t, "2 cups basil", out[0].Ingredients[0].String())
	assert.Equal(t, "8.0 / 10", out[0].RatingLabel())

	// Other collections are independent.
	cache, err := NewCollectionStore(db, models.CollectionDeckCache).ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cache)
}

func TestDishes_CRUD(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	older := &models.Dish{ID: "d1", Title: "Tacos", Tags: []string{"mexican", "dinner"}, Privacy: models.PrivacyPublic,
		CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Dish{ID: "d2", Title: "Waffles", Tags: []string{"breakfast"}, Privacy: models.PrivacyPublic,
		CreatedAt: time.Now()}
	require.NoError(t, db.CreateDish(ctx, older))
	require.NoError(t, db.CreateDish(ctx, newer))

	all, err := db.ListDishes(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "d2", all[0].ID, "newest first")

	tagged, err := db.ListDishes(ctx, []string{"mexican", "dinner"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "d1", tagged[0].ID)

	got, err := db.GetDish(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"mexican", "dinner"}, got.Tags)

	missing, err := db.GetDish(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	likes, err := db.LikeDish(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	likes, err = db.LikeDish(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = db.LikeDish(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.DeleteDish(ctx, "d1"))
	assert.ErrorIs(t, db.DeleteDish(ctx, "d1"), ErrNotFound)
}

func TestFilterCategories(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	cats, err := db.ListFilterCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilterCategories(), cats, "empty table falls back to defaults")

	custom := []models.FilterCategory{
		models.NewFilterCategory("Season", "Spring", "Summer"),
		models.NewFilterCategory("Effort", "Quick"),
	}
	require.NoError(t, db.ReplaceFilterCategories(ctx, custom))

	cats, err = db.ListFilterCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, cats)
}

func TestUserState(t *testing.T) {
	db := testDB(t)

	id := db.GetOrCreateTrackingID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, db.GetOrCreateTrackingID(), "tracking id is stable")

	require.NoError(t, db.SaveFilters([]string{"vegan", "lunch"}))
	require.NoError(t, db.RecordSwipe())
	require.NoError(t, db.RecordSwipe())

	state, err := db.GetUserState()
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "lunch"}, state.GetFilters())
	assert.Equal(t, 2, state.SwipeCount)
	assert.Equal(t, id, state.TrackingID)
}

func TestRecordSwipe_CreatesStateRow(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.RecordSwipe())

	state, err := db.GetUserState()
	require.NoError(t, err)
	assert.Equal(t, 1, state.SwipeCount)
	assert.Empty(t, state.GetFilters())

	require.NoError(t, db.SaveFilters([]string{"dinner"}))
	require.NoError(t, db.RecordSwipe())

	state, err = db.GetUserState()
	require.NoError(t, err)
	assert.Equal(t, 2, state.SwipeCount, "saving filters keeps the counter")
	assert.Equal(t, []string{"dinner"}, state.GetFilters())
}
