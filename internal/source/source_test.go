package source

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPSource(srv.URL+"/", 5*time.Second, 600)
}

func TestHTTPSource_FetchAll(t *testing.T) {
	var gotTags string
	src := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dishes", r.URL.Path)
		gotTags = r.URL.Query().Get("tags")
		_, _ = io.WriteString(w, `[
			{"id": "a", "title": "Curry", "ingredients": "['rice', 'lentils']", "rating": 12},
			{"id": "b", "title": "", "image": null, "directions": "Boil\nServe"}
		]`)
	})
	src.Tags = []string{"vegan", "dinner"}

	dishes, err := src.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	assert.Equal(t, "vegan,dinner", gotTags)
	assert.Equal(t, []string{"rice", "lentils"}, dishes[0].Ingredients.Strings())
	assert.Nil(t, dishes[0].Rating, "out of range rating dropped")
	assert.Equal(t, models.UntitledDish, dishes[1].DisplayTitle())
	assert.Equal(t, models.PlaceholderImage, dishes[1].ResolveImage())
	assert.Equal(t, models.StepList{"Boil", "Serve"}, dishes[1].Directions)
}

func TestHTTPSource_StatusError(t *testing.T) {
	src := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := src.FetchAll(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Body)
}

func TestHTTPSource_FetchFiltersFallback(t *testing.T) {
	src := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	cats, err := src.FetchFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilterCategories(), cats)

	down := NewHTTPSource("http://127.0.0.1:1", time.Second, 600)
	cats, err = down.FetchFilters(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.DefaultFilterCategories(), cats)
}

func TestHTTPSource_Publish(t *testing.T) {
	src := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var d models.Dish
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		d.ID = "server-id"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(d)
	})

	created, err := src.Publish(context.Background(), models.Dish{Title: "Bread", Privacy: models.PrivacyPublic})
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
	assert.Equal(t, "Bread", created.Title)
}

func TestHTTPSource_PingAndLike(t *testing.T) {
	var paths []string
	src := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.RequestURI())
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, src.Ping(context.Background()))
	require.NoError(t, src.Like(context.Background(), "d1"))
	assert.Equal(t, []string{"GET /", "POST /dish/like?id=d1"}, paths)
}

type memCache struct {
	dishes []models.Dish
	writes int
}

func (m *memCache) ReadAll(context.Context) ([]models.Dish, error) { return m.dishes, nil }

func (m *memCache) WriteAll(_ context.Context, dishes []models.Dish) error {
	m.writes++
	m.dishes = dishes
	return nil
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	cache := &memCache{}

	live := NewCachedSource(Samples(), cache)
	dishes, err := live.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, dishes, len(models.SampleDishes()))
	assert.Equal(t, 1, cache.writes)

	offline := NewCachedSource(StaticSource{Err: errors.New("offline")}, cache)
	dishes, err = offline.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, dishes, len(models.SampleDishes()))

	empty := NewCachedSource(StaticSource{Err: errors.New("offline")}, &memCache{})
	_, err = empty.FetchAll(ctx)
	assert.EqualError(t, err, "offline")
}
