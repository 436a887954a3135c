package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines the global key bindings of the TUI. Views handle their
// own keys once the app has routed a message to them.
type Keymap struct {
	// Tabs
	DeckTab    key.Binding
	LibraryTab key.Binding
	CreateTab  key.Binding

	// Deck
	Reject   key.Binding
	Like     key.Binding
	Open     key.Binding
	Collapse key.Binding
	Refresh  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		DeckTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "deck"),
		),
		LibraryTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "saved"),
		),
		CreateTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "create"),
		),

		Reject: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "nope"),
		),
		Like: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "save"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// QuickHelpText returns condensed help text for the deck footer.
func (k Keymap) QuickHelpText() string {
	return "←/h nope • →/l save • enter details • r refresh • ? help • q quit"
}
