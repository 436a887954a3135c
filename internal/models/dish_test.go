package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDish_DisplayFallbacks(t *testing.T) {
	var d Dish
	require.NoError(t, json.Unmarshal([]byte(`{"id":"d1","title":"","image":""}`), &d))

	assert.Equal(t, UntitledDish, d.DisplayTitle())
	assert.Equal(t, PlaceholderImage, d.ResolveImage())
	assert.Equal(t, NotRated, d.RatingLabel())
}

func TestDish_ResolveImage(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{"empty", "", PlaceholderImage},
		{"whitespace", "   ", PlaceholderImage},
		{"known asset", "asset:pasta.png", "asset:pasta.png"},
		{"bare asset name", "curry.png", "asset:curry.png"},
		{"https uri", "https://img.example.com/a.jpg", "https://img.example.com/a.jpg"},
		{"unknown asset", "mystery.png", PlaceholderImage},
		{"file uri", "file:///home/cook/pics/curry.jpg", "file:///home/cook/pics/curry.jpg"},
		{"file uri without path", "file://", PlaceholderImage},
		{"absolute path", "/home/cook/pics/curry.jpg", "/home/cook/pics/curry.jpg"},
		{"relative path", "pics/curry.jpg", PlaceholderImage},
		{"scheme without host", "https:", PlaceholderImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dish{Image: tt.image}
			assert.Equal(t, tt.want, d.ResolveImage())
		})
	}
}

func TestDish_RatingIngestion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"in range", `{"rating": 7.5}`, "7.5 / 10"},
		{"integer", `{"rating": 10}`, "10.0 / 10"},
		{"string", `{"rating": "3"}`, "3.0 / 10"},
		{"negative dropped", `{"rating": -1}`, NotRated},
		{"too high dropped", `{"rating": 11}`, NotRated},
		{"null", `{"rating": null}`, NotRated},
		{"garbage", `{"rating": "great"}`, NotRated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Dish
			require.NoError(t, json.Unmarshal([]byte(tt.json), &d))
			assert.Equal(t, tt.want, d.RatingLabel())
		})
	}
}

func TestDish_UnmarshalKeepsFields(t *testing.T) {
	raw := `{
		"id": "abc",
		"title": "Soup",
		"tags": ["vegan", " vegan ", "lunch", ""],
		"ingredients": "['carrot', 'leek']",
		"directions": "Chop\n\nSimmer\n",
		"likes": 3,
		"privacy": "public",
		"original_url": "https://example.com/soup"
	}`
	var d Dish
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	assert.Equal(t, "abc", d.ID)
	assert.Equal(t, "Soup", d.Title)
	assert.Equal(t, []string{"vegan", "lunch"}, d.Tags)
	assert.Equal(t, []string{"carrot", "leek"}, d.Ingredients.Strings())
	assert.Equal(t, StepList{"Chop", "Simmer"}, d.Directions)
	assert.Equal(t, 3, d.Likes)
	assert.Equal(t, PrivacyPublic, d.Privacy)
	assert.Equal(t, "https://example.com/soup", d.OriginalURL)
}

func TestDish_ToPrivate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("generates id and defaults created_at", func(t *testing.T) {
		d := Dish{Title: "Tacos", Privacy: PrivacyPublic}
		p := d.ToPrivate(now)

		assert.True(t, strings.HasPrefix(p.ID, PrivateIDPrefix))
		assert.Equal(t, PrivacyPrivate, p.Privacy)
		assert.Equal(t, now, p.CreatedAt)
		assert.Equal(t, PrivacyPublic, d.Privacy, "original must not change")
	})

	t.Run("keeps existing id and created_at", func(t *testing.T) {
		created := now.Add(-time.Hour)
		d := Dish{ID: "d1", CreatedAt: created}
		p := d.ToPrivate(now)

		assert.Equal(t, "d1", p.ID)
		assert.Equal(t, created, p.CreatedAt)
	})
}

func TestDish_Markdown(t *testing.T) {
	d := Dish{
		Title:       "Toast",
		Rating:      ValidRating(6),
		Tags:        []string{"breakfast"},
		Ingredients: IngredientList{StructuredIngredient("bread", "2", "slices"), RawIngredient("Butter")},
		Directions:  StepList{"Toast the bread", "Butter it"},
		Notes:       "Best warm.",
	}
	md := d.Markdown()

	assert.Contains(t, md, "# Toast")
	assert.Contains(t, md, "6.0 / 10")
	assert.Contains(t, md, "- 2 slices bread")
	assert.Contains(t, md, "2. Butter it")
	assert.Contains(t, md, "Best warm.")
	assert.Equal(t, "2 slices bread\nButter", d.IngredientsText())
}

func TestSampleDishes(t *testing.T) {
	dishes := SampleDishes()
	require.NotEmpty(t, dishes)

	seen := map[string]bool{}
	for _, d := range dishes {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
		assert.NotEqual(t, PlaceholderImage, d.ResolveImage())
	}
}
