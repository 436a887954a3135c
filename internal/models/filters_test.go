package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterValue(t *testing.T) {
	assert.Equal(t, "gluten_free", FilterValue("Gluten Free"))
	assert.Equal(t, "middle_eastern", FilterValue("  Middle   Eastern "))
	assert.Equal(t, "keto", FilterValue("Keto"))
}

func TestDefaultFilterCategories(t *testing.T) {
	cats := DefaultFilterCategories()

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Dietary", "Macronutrients", "Meal Type", "Cuisine"}, names)
	assert.Contains(t, cats[0].Options, FilterOption{Label: "Dairy Free", Value: "dairy_free"})
}

func TestGroupFilterTags_RoundTrip(t *testing.T) {
	cats := DefaultFilterCategories()
	assert.Equal(t, cats, GroupFilterTags(FlattenFilterCategories(cats)))
}

func TestUserState_Filters(t *testing.T) {
	var s UserState
	assert.Empty(t, s.GetFilters())

	s.SetFilters([]string{"vegan", "dinner"})
	assert.Equal(t, "vegan,dinner", s.Filters)
	assert.Equal(t, []string{"vegan", "dinner"}, s.GetFilters())
}
