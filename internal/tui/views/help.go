package views

import (
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// Command is one key binding shown in the help overlay.
type Command struct {
	Key         string
	Description string
}

// ViewCommands are the bindings a view contributes to the help overlay.
type ViewCommands struct {
	ViewName string
	Commands []Command
}

// globalCommands work on every tab unless a text field has focus.
var globalCommands = []Command{
	{Key: "1 / 2 / 3", Description: "Deck, saved recipes, create"},
	{Key: "?", Description: "Toggle this help"},
	{Key: "q, ctrl+c", Description: "Quit"},
}

// gestureNotes explain how mouse drags map to swipes on the deck.
var gestureNotes = []Command{
	{Key: "click", Description: "Open the card when the pointer barely moves"},
	{Key: "drag far", Description: "Swipe the card off screen in that direction"},
	{Key: "drag short", Description: "Card springs back, nothing happens"},
}

// HelpView is the overlay listing the bindings of the active view.
type HelpView struct {
	width     int
	height    int
	current   ViewCommands
	telemetry telemetry.Client
}

// NewHelpView creates a help overlay.
func NewHelpView() *HelpView {
	return &HelpView{telemetry: telemetry.NewNoop()}
}

// Init sets the telemetry client.
func (hv *HelpView) Init(tc telemetry.Client) {
	if tc != nil {
		hv.telemetry = tc
	}
}

// SetSize updates the overlay dimensions.
func (hv *HelpView) SetSize(width, height int) {
	hv.width = width
	hv.height = height
}

// SetViewCommands records the bindings of the view the overlay was
// opened from.
func (hv *HelpView) SetViewCommands(commands ViewCommands) {
	hv.current = commands
	hv.telemetry.TrackViewNavigated("help", commands.ViewName)
}

// Update reports whether key closes the overlay.
func (hv *HelpView) Update(key string) bool {
	switch key {
	case "esc", "?", "q":
		return true
	}
	return false
}

// View renders the overlay.
func (hv *HelpView) View() string {
	heading := lipgloss.NewStyle().Foreground(theme.Current.Primary).Bold(true)

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Current.Accent).Bold(true).Render("dishdeck keys"),
		"",
		heading.Render(hv.current.ViewName),
		hv.renderTable(hv.current.Commands),
	}
	if hv.current.ViewName == "Deck" {
		sections = append(sections, "", heading.Render("Mouse"), hv.renderTable(gestureNotes))
	}
	sections = append(sections,
		"",
		heading.Render("Everywhere"),
		hv.renderTable(globalCommands),
		"",
		lipgloss.NewStyle().Foreground(theme.Current.TextMuted).Italic(true).Render("esc, ? or q closes this help"),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

// renderTable lays out commands in a key column sized to the widest key.
func (hv *HelpView) renderTable(commands []Command) string {
	if len(commands) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Current.TextMuted).Render("  none")
	}

	keyWidth := 0
	for _, c := range commands {
		keyWidth = max(keyWidth, lipgloss.Width(c.Key))
	}
	descWidth := max(20, hv.width-keyWidth-10)

	keyStyle := lipgloss.NewStyle().
		Foreground(theme.Current.Accent).
		Bold(true).
		Width(keyWidth + 2).
		PaddingLeft(2)
	descStyle := lipgloss.NewStyle().
		Foreground(theme.Current.Text).
		MaxWidth(descWidth).
		PaddingLeft(2)

	rows := make([]string, 0, len(commands))
	for _, c := range commands {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(c.Key),
			descStyle.Render(c.Description),
		))
	}
	return strings.Join(rows, "\n")
}
