package views

import (
	"errors"
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailView_Empty(t *testing.T) {
	dv := NewDetailView(nil)
	dv.SetSize(60, 20)

	assert.Contains(t, dv.View(), "No recipe selected")
	back, _ := dv.Update("esc")
	assert.True(t, back)
}

func TestDetailView_Renders(t *testing.T) {
	dv := NewDetailView(NewMarkdownRenderer())
	dv.SetSize(60, 20)
	dv.SetDish(models.SampleDishes()[0])

	view := dv.View()
	assert.Contains(t, view, "Spaghetti Carbonara")
	require.NotNil(t, dv.Dish())

	dv.Clear()
	assert.Nil(t, dv.Dish())
}

func TestDetailView_Scroll(t *testing.T) {
	dv := NewDetailView(NewMarkdownRenderer())
	dv.SetSize(40, 10)
	dv.SetDish(models.SampleDishes()[0])

	dv.Update("b")
	assert.Equal(t, dv.maxScroll, dv.scrollOffset)
	dv.Update("t")
	assert.Equal(t, 0, dv.scrollOffset)
	dv.Update("up")
	assert.Equal(t, 0, dv.scrollOffset, "never scrolls above the top")

	back, _ := dv.Update("esc")
	assert.True(t, back)
}

func TestDetailView_CopyIngredients(t *testing.T) {
	var copied string
	dv := NewDetailView(NewMarkdownRenderer())
	dv.copy = func(s string) error {
		copied = s
		return nil
	}
	dv.SetSize(60, 20)
	d := models.SampleDishes()[1]
	dv.SetDish(d)

	dv.Update("c")
	assert.Equal(t, d.IngredientsText(), copied)
	assert.Equal(t, "Ingredients copied", dv.status)

	dv.copy = func(string) error { return errors.New("no xclip") }
	dv.Update("c")
	assert.Equal(t, "Clipboard unavailable", dv.status)

	dv.SetDish(models.Dish{Title: "Toast"})
	dv.Update("c")
	assert.Equal(t, "No ingredients to copy", dv.status)
}
