package views

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/deck"
	"github.com/asteroid-belt/dishdeck/internal/gesture"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// frameInterval paces animation ticks at roughly 60 fps.
const frameInterval = 16 * time.Millisecond

// DeckView renders the swipe deck and turns keys and mouse drags into
// pointer input for the engine.
type DeckView struct {
	engine    *deck.Engine
	cfg       config.DeckConfig
	detail    *DetailView
	state     StateStore
	telemetry telemetry.Client
	now       func() time.Time

	width  int
	height int

	ticking    bool
	refreshing bool
	dragging   bool
	swipes     int

	lastErr error
	status  string
}

// NewDeckView creates a deck view driving engine.
func NewDeckView(engine *deck.Engine, cfg config.DeckConfig, detail *DetailView) *DeckView {
	return &DeckView{
		engine:    engine,
		cfg:       cfg,
		detail:    detail,
		telemetry: telemetry.NewNoop(),
		now:       time.Now,
	}
}

// Init sets the telemetry client and returns the initial deck fetch.
func (dv *DeckView) Init(tc telemetry.Client) tea.Cmd {
	if tc != nil {
		dv.telemetry = tc
	}
	return dv.Refresh("startup")
}

// SetStateStore enables the lifetime swipe counter.
func (dv *DeckView) SetStateStore(s StateStore) {
	dv.state = s
}

// SetClock overrides the time source.
func (dv *DeckView) SetClock(now func() time.Time) {
	dv.now = now
}

// SetSize updates the deck area in cells and the engine layout in px.
func (dv *DeckView) SetSize(w, h int) {
	dv.width = w
	dv.height = h
	dv.engine.Resize(deck.Layout{
		Width:  float64(w) * dv.cfg.CellWidthPx,
		Height: float64(h) * dv.cfg.CellHeightPx,
	})
	dv.detail.SetSize(max(1, w-4), max(1, h-2))
}

// Swipes returns the number of committed swipes this session.
func (dv *DeckView) Swipes() int {
	return dv.swipes
}

// DetailOpen reports whether the card is expanded into the detail view.
func (dv *DeckView) DetailOpen() bool {
	return dv.engine.DetailDish() != nil
}

// Refresh starts a deck fetch unless one is already running.
func (dv *DeckView) Refresh(trigger string) tea.Cmd {
	if dv.refreshing {
		return nil
	}
	dv.refreshing = true
	dv.status = ""
	engine := dv.engine
	return func() tea.Msg {
		res := engine.Refresh(context.Background())
		return DeckLoadedMsg{Result: res, Trigger: trigger}
	}
}

// Update handles deck messages and keys.
func (dv *DeckView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DeckLoadedMsg:
		dv.refreshing = false
		dv.lastErr = msg.Result.Err
		dv.handleEvents(dv.engine.Loaded(dv.now()))
		dv.detail.Clear()
		dv.telemetry.TrackDeckRefreshed(msg.Result.Count, msg.Result.Err != nil, msg.Trigger)
		if msg.Result.Err != nil {
			dv.status = "Couldn't reach the dish server"
		}
		return dv.ensureTicking()

	case AnimationTickMsg:
		dv.ticking = false
		dv.handleEvents(dv.engine.Tick(msg.At))
		return dv.ensureTicking()

	case DishSavedMsg:
		dv.telemetry.TrackDishSaved(msg.Err == nil)
		switch {
		case msg.Err != nil:
			dv.status = "Couldn't save " + msg.Dish.DisplayTitle()
		case msg.Added:
			dv.status = "Saved " + msg.Dish.DisplayTitle()
		default:
			dv.status = msg.Dish.DisplayTitle() + " is already saved"
		}
		return nil

	case tea.KeyMsg:
		return dv.handleKey(msg.String())

	case tea.MouseMsg:
		return dv.HandleMouse(msg)
	}
	return nil
}

func (dv *DeckView) handleKey(key string) tea.Cmd {
	now := dv.now()

	if dv.DetailOpen() {
		if key == "esc" {
			dv.handleEvents(dv.engine.CloseDetail(now))
			return dv.ensureTicking()
		}
		dv.detail.Update(key)
		return nil
	}

	switch key {
	case "left", "h":
		_, events := dv.engine.Swipe(deck.Left, now)
		dv.handleEvents(events)
	case "right", "l":
		_, events := dv.engine.Swipe(deck.Right, now)
		dv.handleEvents(events)
	case "enter", " ":
		_, events := dv.engine.Tap(now)
		dv.handleEvents(events)
	case "r":
		return dv.Refresh("manual")
	}
	return dv.ensureTicking()
}

// HandleMouse maps a drag on the deck area to pointer input. Cell
// coordinates are relative to the deck area.
func (dv *DeckView) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if dv.DetailOpen() {
		dv.detail.HandleMouse(msg)
		return nil
	}

	now := dv.now()
	p := dv.toPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		ok, events := dv.engine.PointerDown(p, now)
		dv.dragging = ok
		dv.handleEvents(events)
	case tea.MouseActionMotion:
		if dv.dragging {
			dv.engine.PointerMove(p, now)
		}
	case tea.MouseActionRelease:
		if !dv.dragging {
			return nil
		}
		dv.dragging = false
		_, events := dv.engine.PointerUp(p, now)
		dv.handleEvents(events)
	}
	return dv.ensureTicking()
}

// toPoint converts a cell to px at the cell's center.
func (dv *DeckView) toPoint(col, row int) gesture.Point {
	return gesture.Point{
		X: (float64(col) + 0.5) * dv.cfg.CellWidthPx,
		Y: (float64(row) + 0.5) * dv.cfg.CellHeightPx,
	}
}

func (dv *DeckView) handleEvents(events []deck.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case deck.EventSwiped:
			dv.swipes++
			dv.telemetry.TrackDishSwiped(ev.Direction.String(), len(ev.Dish.Tags))
			if dv.state != nil {
				if err := dv.state.RecordSwipe(); err != nil {
					log.Printf("record swipe: %v", err)
				}
			}
			if ev.Direction == deck.Right {
				dv.status = "Saving " + ev.Dish.DisplayTitle() + "…"
			} else {
				dv.status = ""
			}
		case deck.EventExhausted:
			dv.telemetry.TrackDeckExhausted(dv.swipes)
		case deck.EventDetailOpening:
			dv.detail.SetDish(ev.Dish)
			dv.telemetry.TrackDetailOpened(ev.Dish.IsPrivate())
		case deck.EventDetailClosed:
			dv.detail.Clear()
		}
	}
}

// ensureTicking schedules the next animation frame while the engine is
// animating. At most one tick is in flight.
func (dv *DeckView) ensureTicking() tea.Cmd {
	if dv.ticking || !dv.engine.Animating() {
		return nil
	}
	dv.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return AnimationTickMsg{At: t}
	})
}

// View renders the deck area.
func (dv *DeckView) View() string {
	if dv.width <= 0 || dv.height <= 0 {
		return ""
	}

	v := dv.engine.View(dv.now())
	switch {
	case v.Phase == deck.Loading:
		return dv.centered(dv.renderMessage("Fetching dishes…", ""))
	case v.Current == nil && dv.engine.DetailDish() == nil:
		return dv.centered(dv.renderExhausted())
	}

	return dv.renderCards(v)
}

// StatusLine returns the deck position and the latest status message.
func (dv *DeckView) StatusLine() string {
	v := dv.engine.View(dv.now())
	var parts []string
	if v.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d / %d", min(v.Cursor+1, v.Total), v.Total))
	}
	if dv.status != "" {
		parts = append(parts, dv.status)
	}
	return strings.Join(parts, "  •  ")
}

func (dv *DeckView) centered(s string) string {
	return lipgloss.Place(dv.width, dv.height, lipgloss.Center, lipgloss.Center, s)
}

func (dv *DeckView) renderMessage(title, body string) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Current.Accent).Bold(true).Render(title),
	}
	if body != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Current.TextMuted).Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (dv *DeckView) renderExhausted() string {
	body := "Press r to fetch a fresh deck."
	if dv.lastErr != nil {
		body = "Couldn't reach the dish server.\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current.TextMuted).
		Padding(1, 4).
		Render(dv.renderMessage("That's every dish for now", body))
}

// cells converts a px length to whole cells.
func cells(px, cell float64) int {
	return int(math.Round(px / cell))
}

func (dv *DeckView) renderCards(v deck.View) string {
	cw := min(dv.width, max(12, cells(v.CardWidth, dv.cfg.CellWidthPx)))
	ch := min(dv.height, max(6, cells(v.CardHeight, dv.cfg.CellHeightPx)))

	base := blank(dv.width, dv.height)

	if v.Next != nil && v.Detail == deck.DetailClosed {
		bw := max(8, int(float64(cw)*v.BackScale))
		bh := max(4, int(float64(ch)*v.BackScale))
		back := renderCard(v.Next, bw, bh, deck.NoIndicator, true)
		base = overlay(base, back, (dv.width-bw)/2, (dv.height-bh)/2, dv.width)
	}

	var front string
	dish := v.Current
	if d := dv.engine.DetailDish(); d != nil {
		dish = d
	}
	switch {
	case dish == nil:
		return base
	case v.Detail != deck.DetailClosed && v.DetailReadable:
		front = dv.renderDetailCard(cw, ch)
	default:
		front = renderCard(dish, cw, ch, v.Indicator, false)
	}

	x := (dv.width-cw)/2 + cells(v.TranslateX, dv.cfg.CellWidthPx)
	y := (dv.height - ch) / 2
	return overlay(base, front, x, y, dv.width)
}

// renderDetailCard clips the full-size detail view into the card box.
func (dv *DeckView) renderDetailCard(w, h int) string {
	inner := fitLines(dv.detail.View(), max(1, w-4), max(1, h-2))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current.Primary).
		Padding(0, 1).
		Width(max(1, w-4) + 2).
		Render(strings.Join(inner, "\n"))
}

// renderCard draws a dish card of w×h cells including its border.
func renderCard(d *models.Dish, w, h int, ind deck.Indicator, behind bool) string {
	innerW := max(1, w-4)
	innerH := max(1, h-2)

	border := theme.Current.Primary
	titleColor := theme.Current.TextHighlight
	if behind {
		border = theme.Current.TextMuted
		titleColor = theme.Current.TextMuted
	}

	var lines []string
	switch ind {
	case deck.LikeIndicator:
		border = theme.Current.Like
		lines = append(lines, badge("SAVE", theme.Current.Like))
	case deck.NopeIndicator:
		border = theme.Current.Nope
		lines = append(lines, lipgloss.PlaceHorizontal(innerW, lipgloss.Right, badge("NOPE", theme.Current.Nope)))
	default:
		lines = append(lines, "")
	}

	muted := lipgloss.NewStyle().Foreground(theme.Current.TextMuted)
	lines = append(lines,
		muted.Render(imageLabel(d)),
		"",
		lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(d.DisplayTitle()),
	)
	if !behind {
		meta := "★ " + d.RatingLabel()
		if d.Likes > 0 {
			meta += fmt.Sprintf("   ♥ %d", d.Likes)
		}
		lines = append(lines, muted.Render(meta), "")
		if len(d.Tags) > 0 {
			lines = append(lines, renderTagChips(d.Tags, innerW))
		}
		if n := len(d.Ingredients); n > 0 {
			lines = append(lines, "", muted.Render(fmt.Sprintf("%d ingredients • %d steps", n, len(d.Directions))))
		}
	}

	body := fitLines(strings.Join(lines, "\n"), innerW, innerH)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(innerW + 2).
		Render(strings.Join(body, "\n"))
}

func badge(text string, color lipgloss.AdaptiveColor) string {
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(color).
		Bold(true).
		Render(text)
}

// GetKeyboardCommands returns the keyboard commands for this view.
func (dv *DeckView) GetKeyboardCommands() ViewCommands {
	if dv.DetailOpen() {
		return dv.detail.GetKeyboardCommands()
	}
	return ViewCommands{
		ViewName: "Deck",
		Commands: []Command{
			{Key: "←, h", Description: "Pass on this dish"},
			{Key: "→, l", Description: "Save this dish to your recipes"},
			{Key: "enter, space", Description: "Open the recipe"},
			{Key: "drag", Description: "Swipe the card with the mouse, click to open"},
			{Key: "r", Description: "Refresh the deck"},
		},
	}
}
