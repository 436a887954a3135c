package tui

import (
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the reusable Lipgloss styles for the app chrome.
type Styles struct {
	// Header styles
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// Footer styles
	Footer      lipgloss.Style
	FooterLeft  lipgloss.Style
	FooterRight lipgloss.Style

	// Text styles
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style

	// Status indicators
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles using the current theme.
func DefaultStyles() Styles {
	t := theme.Current

	return Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(2),

		Tab: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.TextHighlight).
			Background(t.Overlay).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		FooterLeft: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Align(lipgloss.Left),

		FooterRight: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Align(lipgloss.Right),

		Normal: lipgloss.NewStyle().
			Foreground(t.Text),

		Muted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Highlight: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		StatusOK: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		StatusInfo: lipgloss.NewStyle().
			Foreground(t.Info),
	}
}
