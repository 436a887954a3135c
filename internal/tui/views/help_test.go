package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpView_CloseKeys(t *testing.T) {
	hv := NewHelpView()
	for _, k := range []string{"esc", "?", "q"} {
		assert.True(t, hv.Update(k), k)
	}
	assert.False(t, hv.Update("j"))
}

func TestHelpView_ShowsViewCommands(t *testing.T) {
	hv := NewHelpView()
	hv.SetSize(100, 40)
	hv.SetViewCommands(ViewCommands{
		ViewName: "Deck",
		Commands: []Command{{Key: "→, l", Description: "Save this dish to your recipes"}},
	})

	view := hv.View()
	assert.Contains(t, view, "Save this dish to your recipes")
	assert.Contains(t, view, "Mouse")
	assert.Contains(t, view, "Everywhere")

	hv.SetViewCommands(ViewCommands{ViewName: "Create"})
	view = hv.View()
	assert.NotContains(t, view, "Mouse")
	assert.Contains(t, view, "none")
}
