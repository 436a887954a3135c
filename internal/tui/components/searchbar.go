package components

import (
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is an input component for searching saved recipes.
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates a new search bar component.
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search saved recipes..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 50

	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Current.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Current.TextMuted)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Current.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Current.Primary)

	return &SearchBar{
		input: ti,
	}
}

// View renders the search bar.
func (sb *SearchBar) View() string {
	border := theme.Current.TextMuted
	if sb.input.Focused() {
		border = theme.Current.Accent
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return boxStyle.Render(sb.input.View())
}

// HandleKey passes a key message to the underlying textinput.
// Returns a tea.Cmd that MUST be executed by the parent for cursor blink.
func (sb *SearchBar) HandleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	sb.input, cmd = sb.input.Update(msg)
	return cmd
}

// Focus sets focus on the search bar.
func (sb *SearchBar) Focus() tea.Cmd {
	return sb.input.Focus()
}

// Blur removes focus from the search bar.
func (sb *SearchBar) Blur() {
	sb.input.Blur()
}

// Focused returns true if the search bar has focus.
func (sb *SearchBar) Focused() bool {
	return sb.input.Focused()
}

// Value returns the current search query.
func (sb *SearchBar) Value() string {
	return sb.input.Value()
}

// SetValue sets the search query.
func (sb *SearchBar) SetValue(v string) {
	sb.input.SetValue(v)
}

// Clear clears the search query.
func (sb *SearchBar) Clear() {
	sb.input.Reset()
}

// SetWidth sets the width of the search bar.
func (sb *SearchBar) SetWidth(w int) {
	// Reduce width for padding and borders
	if w > 6 {
		sb.input.Width = w - 6
	}
}
