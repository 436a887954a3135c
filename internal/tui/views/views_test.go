package views

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	tea "github.com/charmbracelet/bubbletea"
)

// key builds a key message whose String() is k.
func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// newTestLibrary returns a library backed by a file in a temp dir.
func newTestLibrary(t *testing.T) *saved.Library {
	t.Helper()
	return saved.NewLibrary(saved.NewFileStore(filepath.Join(t.TempDir(), "private_recipes.json")))
}

// memState is an in-memory StateStore.
type memState struct {
	mu    sync.Mutex
	state models.UserState
	saves int
}

func (m *memState) GetUserState() (*models.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state
	return &st, nil
}

func (m *memState) SaveFilters(filters []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SetFilters(filters)
	m.saves++
	return nil
}

func (m *memState) RecordSwipe() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SwipeCount++
	return nil
}
