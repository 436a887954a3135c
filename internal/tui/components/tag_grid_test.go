package components

import (
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/stretchr/testify/assert"
)

func testCategories() []models.FilterCategory {
	return []models.FilterCategory{
		models.NewFilterCategory("Dietary", "Vegan", "Gluten Free"),
		models.NewFilterCategory("Cuisine", "Thai"),
	}
}

func TestNewTagGrid(t *testing.T) {
	tg := NewTagGrid()
	assert.NotNil(t, tg)
	assert.Equal(t, 0, tg.ChipCount())
	assert.Nil(t, tg.Cursor())
	assert.Empty(t, tg.Selected())
}

func TestTagGridSetCategories(t *testing.T) {
	tg := NewTagGrid()
	tg.SetCategories(testCategories())

	assert.Equal(t, 3, tg.ChipCount())
	assert.Equal(t, 0, tg.CursorIndex())
	assert.Equal(t, "vegan", tg.Cursor().Value)
	assert.Equal(t, "Dietary", tg.Cursor().Category)
}

func TestTagGridNavigation(t *testing.T) {
	tg := NewTagGrid()
	tg.SetSize(100, 20)
	tg.SetCategories(testCategories())

	tg.MoveRight()
	assert.Equal(t, 1, tg.CursorIndex())
	tg.MoveRight()
	assert.Equal(t, 2, tg.CursorIndex())

	// At the end the cursor stays put.
	tg.MoveRight()
	assert.Equal(t, 2, tg.CursorIndex())

	tg.MoveLeft()
	tg.MoveLeft()
	tg.MoveLeft()
	assert.Equal(t, 0, tg.CursorIndex())

	// Single row: moving up reports the top edge.
	assert.True(t, tg.MoveUp())
}

func TestTagGridWrapsRows(t *testing.T) {
	tg := NewTagGrid()
	tg.SetSize(20, 20)
	tg.SetCategories(testCategories())

	tg.MoveDown()
	assert.Equal(t, 1, tg.CursorIndex())
	assert.False(t, tg.MoveUp())
	assert.Equal(t, 0, tg.CursorIndex())
}

func TestTagGridToggleSelection(t *testing.T) {
	tg := NewTagGrid()
	tg.SetCategories(testCategories())

	tg.Toggle()
	tg.MoveRight()
	tg.MoveRight()
	tg.Toggle()
	assert.Equal(t, []string{"vegan", "thai"}, tg.Selected())

	tg.Toggle()
	assert.Equal(t, []string{"vegan"}, tg.Selected())

	tg.ClearSelection()
	assert.Empty(t, tg.Selected())
}

func TestTagGridKeepsOfferedSelections(t *testing.T) {
	tg := NewTagGrid()
	tg.SetCategories(testCategories())
	tg.Toggle() // vegan

	tg.SetCategories([]models.FilterCategory{models.NewFilterCategory("Dietary", "Vegan")})
	assert.Equal(t, []string{"vegan"}, tg.Selected())

	tg.SetCategories([]models.FilterCategory{models.NewFilterCategory("Cuisine", "Thai")})
	assert.Empty(t, tg.Selected())
}

func TestTagGridSelect(t *testing.T) {
	tg := NewTagGrid()
	tg.SetCategories(testCategories())

	tg.Select([]string{"thai", "unknown", "vegan"})
	assert.Equal(t, []string{"vegan", "thai"}, tg.Selected())

	tg.Select(nil)
	assert.Empty(t, tg.Selected())
}

func TestTagGridView(t *testing.T) {
	tg := NewTagGrid()
	assert.Contains(t, tg.View(), "No filters available")

	tg.SetSize(80, 10)
	tg.SetCategories(testCategories())
	tg.Toggle()
	view := tg.View()
	assert.Contains(t, view, "✓ Vegan")
	assert.Contains(t, view, "Gluten Free")
}
