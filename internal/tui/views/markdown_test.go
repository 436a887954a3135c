package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownRenderer_CachesByWidthAndContent(t *testing.T) {
	r := NewMarkdownRenderer()
	assert.Empty(t, r.Render("", 40))
	assert.Equal(t, 0, r.Cached())

	doc := "## Ingredients\n\n- 200 g spaghetti\n- 2 eggs\n"
	first := r.Render(doc, 40)
	assert.NotEmpty(t, first)
	assert.Equal(t, 1, r.Cached())

	assert.Equal(t, first, r.Render(doc, 40))
	assert.Equal(t, 1, r.Cached())

	r.Render(doc, 60)
	assert.Equal(t, 2, r.Cached())
}

func TestMarkdownRenderer_MinimumWidth(t *testing.T) {
	r := NewMarkdownRenderer()
	doc := "Whisk the eggs with the cheese."

	assert.Equal(t, r.Render(doc, 20), r.Render(doc, 3))
	assert.Equal(t, 1, r.Cached(), "narrow widths share the minimum")
	assert.Contains(t, strings.Join(r.Render(doc, 5), "\n"), "Whisk")
}
