package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func plainStyles() HighlightStyles {
	return HighlightStyles{
		Normal:    lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
	}
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Highlight
	}{
		{"empty query", "Pad Thai", "", nil},
		{"blank query", "Pad Thai", "   ", nil},
		{"case insensitive", "Pad Thai", "thai", []Highlight{{4, 8}}},
		{"repeated", "Banana bread", "an", []Highlight{{1, 3}, {3, 5}}},
		{"no match", "Ramen", "pho", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindMatches(tt.text, tt.query))
		})
	}
}

func TestRenderHighlights_KeepsText(t *testing.T) {
	styles := plainStyles()

	assert.Equal(t, "", RenderHighlights("", nil, styles))
	assert.Equal(t, "Chickpea Curry", RenderHighlighted("Chickpea Curry", "curry", styles))
	assert.Equal(t, "Chickpea Curry", RenderHighlighted("Chickpea Curry", "", styles))

	// Out of range and overlapping highlights are clamped.
	got := RenderHighlights("Tacos", []Highlight{{0, 2}, {1, 3}, {4, 99}}, styles)
	assert.Equal(t, "Tacos", got)
}
