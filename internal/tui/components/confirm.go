// Package components provides reusable TUI widgets for dishdeck.
package components

import (
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmDialog is a simple yes/no confirmation dialog.
type ConfirmDialog struct {
	title    string
	message  string
	selected bool // false = no, true = yes

	confirmed bool
	cancelled bool
}

// NewConfirmDialog creates a new confirmation dialog.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
	}
}

// SetMessage replaces the dialog body and resets the selection to "No".
func (c *ConfirmDialog) SetMessage(message string) {
	c.message = message
	c.Reset()
}

// Reset clears the dialog state for reuse.
func (c *ConfirmDialog) Reset() {
	c.selected = false
	c.confirmed = false
	c.cancelled = false
}

// SelectYes selects the "Yes" option.
func (c *ConfirmDialog) SelectYes() {
	c.selected = true
}

// SelectNo selects the "No" option.
func (c *ConfirmDialog) SelectNo() {
	c.selected = false
}

// IsYesSelected returns whether "Yes" is selected.
func (c *ConfirmDialog) IsYesSelected() bool {
	return c.selected
}

// Toggle switches between Yes and No.
func (c *ConfirmDialog) Toggle() {
	c.selected = !c.selected
}

// HandleKey processes keyboard input. Enter answers with the current
// selection, y and n answer directly, esc cancels.
func (c *ConfirmDialog) HandleKey(key string) {
	switch key {
	case "left", "h", "right", "l", "tab":
		c.Toggle()
	case "y", "Y":
		c.selected = true
		c.confirmed = true
	case "n", "N", "esc":
		c.selected = false
		c.cancelled = true
	case "enter":
		if c.selected {
			c.confirmed = true
		} else {
			c.cancelled = true
		}
	}
}

// IsConfirmed returns true once the user answered yes.
func (c *ConfirmDialog) IsConfirmed() bool {
	return c.confirmed
}

// IsCancelled returns true once the user answered no or escaped.
func (c *ConfirmDialog) IsCancelled() bool {
	return c.cancelled
}

// View renders the confirmation dialog.
func (c *ConfirmDialog) View() string {
	yesStyle := lipgloss.NewStyle().
		Foreground(theme.Current.TextMuted).
		Padding(0, 2)

	noStyle := lipgloss.NewStyle().
		Foreground(theme.Current.TextMuted).
		Padding(0, 2)

	selected := func(s lipgloss.Style) lipgloss.Style {
		return s.
			Background(theme.Current.Accent).
			Foreground(lipgloss.Color("0")).
			Bold(true)
	}
	if c.selected {
		yesStyle = selected(yesStyle)
	} else {
		noStyle = selected(noStyle)
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		"[ ",
		yesStyle.Render("Yes"),
		" ] [ ",
		noStyle.Render("No"),
		" ]",
	)

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current.Primary).
		Padding(1, 2).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Center,
				lipgloss.NewStyle().Bold(true).Render(c.title),
				"",
				c.message,
				"",
				buttons,
			),
		)

	return dialog
}

// CenteredView renders the dialog centered on the screen.
func (c *ConfirmDialog) CenteredView(width, height int) string {
	dialog := c.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
