package views

import (
	"strings"
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestImageLabel(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{image: "", want: "▣ placeholder"},
		{image: "asset:pasta.png", want: "▣ pasta"},
		{image: "https://img.example.com/tacos.jpg", want: "▣ img.example.com"},
		{image: "not an image", want: "▣ placeholder"},
		{image: "file:///home/cook/curry.jpg", want: "▣ curry.jpg"},
		{image: "/home/cook/curry.jpg", want: "▣ curry.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			d := models.Dish{Image: tt.image}
			assert.Equal(t, tt.want, imageLabel(&d))
		})
	}
}

func TestFitLines(t *testing.T) {
	lines := fitLines("abcdef\nxy\n1\n2\n3", 4, 3)
	assert.Equal(t, []string{"abcd", "xy", "1"}, lines)

	lines = fitLines("a", 4, 3)
	assert.Equal(t, []string{"a", "", ""}, lines)
}

func TestOverlay(t *testing.T) {
	base := blank(10, 3)

	t.Run("inside", func(t *testing.T) {
		out := strings.Split(overlay(base, "ab\ncd", 2, 1, 10), "\n")
		assert.Equal(t, "          ", out[0])
		assert.Equal(t, "  ab      ", out[1])
		assert.Equal(t, "  cd      ", out[2])
	})

	t.Run("clipped left", func(t *testing.T) {
		out := strings.Split(overlay(base, "abcd", -2, 0, 10), "\n")
		assert.Equal(t, "cd        ", out[0])
	})

	t.Run("clipped right", func(t *testing.T) {
		out := strings.Split(overlay(base, "abcd", 8, 0, 10), "\n")
		assert.Equal(t, "        ab", out[0])
	})

	t.Run("off screen", func(t *testing.T) {
		assert.Equal(t, base, overlay(base, "abcd", 12, 0, 10))
		assert.Equal(t, base, overlay(base, "abcd", 0, 5, 10))
	})
}

func TestBlank(t *testing.T) {
	assert.Equal(t, "  \n  ", blank(2, 2))
	assert.Equal(t, "", blank(0, 2))
}
