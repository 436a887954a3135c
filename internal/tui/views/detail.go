package views

import (
	"fmt"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerHeight is the number of lines above the scrollable recipe body:
// title, rating line, tags, divider.
const headerHeight = 4

// DetailView displays a recipe: ingredients, directions and notes.
type DetailView struct {
	telemetry telemetry.Client
	renderer  *MarkdownRenderer
	copy      func(string) error

	dish *models.Dish

	// Scrolling state
	scrollOffset int
	maxScroll    int

	// Dimensions
	width  int
	height int

	// Content cache
	renderedContent []string
	status          string
}

// NewDetailView creates a DetailView sharing renderer.
func NewDetailView(renderer *MarkdownRenderer) *DetailView {
	if renderer == nil {
		renderer = NewMarkdownRenderer()
	}
	return &DetailView{
		telemetry: telemetry.NewNoop(),
		renderer:  renderer,
		copy:      clipboard.WriteAll,
	}
}

// Init sets the telemetry client.
func (dv *DetailView) Init(tc telemetry.Client) {
	if tc != nil {
		dv.telemetry = tc
	}
}

// SetDish shows d from the top.
func (dv *DetailView) SetDish(d models.Dish) {
	dv.dish = &d
	dv.scrollOffset = 0
	dv.status = ""
	dv.updateRenderedContent()
}

// Clear removes the dish.
func (dv *DetailView) Clear() {
	dv.dish = nil
	dv.renderedContent = nil
	dv.scrollOffset = 0
	dv.maxScroll = 0
	dv.status = ""
}

// Dish returns the displayed dish, if any.
func (dv *DetailView) Dish() *models.Dish {
	return dv.dish
}

// SetSize updates the dimensions of the view.
func (dv *DetailView) SetSize(w, h int) {
	dv.width = w
	dv.height = h
	dv.updateRenderedContent()
}

func (dv *DetailView) viewportHeight() int {
	return max(3, dv.height-headerHeight-2)
}

func (dv *DetailView) updateRenderedContent() {
	if dv.dish == nil {
		dv.renderedContent = []string{}
		dv.maxScroll = 0
		return
	}

	// The title is rendered in the header, not by Glamour.
	body := dv.dish.Markdown()
	if i := strings.Index(body, "\n"); i >= 0 && strings.HasPrefix(body, "# ") {
		body = strings.TrimLeft(body[i+1:], "\n")
	}

	dv.renderedContent = dv.renderer.Render(body, dv.width-2)
	dv.maxScroll = max(0, len(dv.renderedContent)-dv.viewportHeight())
	dv.scrollOffset = min(dv.scrollOffset, dv.maxScroll)
}

// Update handles keyboard input and returns (shouldGoBack, cmd).
func (dv *DetailView) Update(key string) (back bool, cmd tea.Cmd) {
	if dv.dish == nil {
		return key == "esc", nil
	}

	switch key {
	case "up", "k":
		dv.scrollOffset = max(0, dv.scrollOffset-1)
	case "down", "j":
		dv.scrollOffset = min(dv.maxScroll, dv.scrollOffset+1)
	case "pgup":
		dv.scrollOffset = max(0, dv.scrollOffset-dv.viewportHeight())
	case "pgdown":
		dv.scrollOffset = min(dv.maxScroll, dv.scrollOffset+dv.viewportHeight())
	case "t":
		dv.scrollOffset = 0
	case "b":
		dv.scrollOffset = dv.maxScroll
	case "c":
		dv.copyIngredients()
	case "esc":
		return true, nil
	}

	return false, nil
}

func (dv *DetailView) copyIngredients() {
	text := dv.dish.IngredientsText()
	if text == "" {
		dv.status = "No ingredients to copy"
		return
	}
	if err := dv.copy(text); err != nil {
		dv.status = "Clipboard unavailable"
		return
	}
	dv.status = "Ingredients copied"
	dv.telemetry.TrackIngredientsCopied()
}

// HandleMouse handles mouse events for scrolling.
func (dv *DetailView) HandleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		dv.scrollOffset = max(0, dv.scrollOffset-3)
	case tea.MouseButtonWheelDown:
		dv.scrollOffset = min(dv.maxScroll, dv.scrollOffset+3)
	}
}

// View renders the detail view at its full size.
func (dv *DetailView) View() string {
	if dv.dish == nil {
		return lipgloss.NewStyle().
			Foreground(theme.Current.TextMuted).
			Render("No recipe selected")
	}

	parts := []string{
		dv.renderTitle(),
		dv.renderMeta(),
		dv.renderTags(),
		dv.renderDivider(),
		dv.renderContent(),
		"",
		dv.renderScrollIndicator(),
	}
	return strings.Join(parts, "\n")
}

func (dv *DetailView) renderTitle() string {
	title := dv.dish.DisplayTitle()
	if dv.dish.IsPrivate() {
		title += "  (saved)"
	}
	return lipgloss.NewStyle().
		Foreground(theme.Current.Primary).
		Bold(true).
		Render(title)
}

func (dv *DetailView) renderMeta() string {
	meta := []string{"★ " + dv.dish.RatingLabel()}
	if dv.dish.Likes > 0 {
		meta = append(meta, fmt.Sprintf("♥ %d", dv.dish.Likes))
	}
	meta = append(meta, imageLabel(dv.dish))
	if dv.dish.OriginalURL != "" {
		meta = append(meta, dv.dish.OriginalURL)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Current.TextMuted).
		MaxWidth(max(1, dv.width)).
		Render(strings.Join(meta, "  •  "))
}

func (dv *DetailView) renderTags() string {
	if len(dv.dish.Tags) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Current.TextMuted).Italic(true).Render("no tags")
	}
	return renderTagChips(dv.dish.Tags, dv.width)
}

func (dv *DetailView) renderDivider() string {
	return lipgloss.NewStyle().
		Foreground(theme.Current.TextMuted).
		Render(strings.Repeat("─", max(1, dv.width)))
}

// renderContent renders the visible window of the recipe body.
func (dv *DetailView) renderContent() string {
	vh := dv.viewportHeight()
	start := dv.scrollOffset
	end := min(len(dv.renderedContent), start+vh)

	visible := make([]string, 0, vh)
	if start < end {
		visible = append(visible, dv.renderedContent[start:end]...)
	}
	for len(visible) < vh {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

func (dv *DetailView) renderScrollIndicator() string {
	var indicators []string
	if dv.scrollOffset > 0 {
		indicators = append(indicators, "↑")
	}
	if dv.scrollOffset < dv.maxScroll {
		indicators = append(indicators, "↓")
	}
	indicators = append(indicators, "c copy ingredients", "esc close")
	if dv.status != "" {
		indicators = append(indicators, dv.status)
	}

	return lipgloss.NewStyle().
		Foreground(theme.Current.TextMuted).
		Italic(true).
		MaxWidth(max(1, dv.width)).
		Render(strings.Join(indicators, "  •  "))
}

// GetKeyboardCommands returns the keyboard commands for this view.
func (dv *DetailView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "Recipe",
		Commands: []Command{
			{Key: "↑↓, k/j", Description: "Scroll the recipe"},
			{Key: "t / b", Description: "Jump to top or bottom"},
			{Key: "c", Description: "Copy ingredients to the clipboard"},
			{Key: "Esc", Description: "Close the recipe"},
		},
	}
}
