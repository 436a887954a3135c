package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/deck"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/source"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckHarness struct {
	view    *DeckView
	engine  *deck.Engine
	library *saved.Library
	now     time.Time
}

func (h *deckHarness) advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.view.Update(AnimationTickMsg{At: h.now})
}

func newDeckHarness(t *testing.T, src source.StaticSource) *deckHarness {
	t.Helper()
	cfg := config.DefaultDeckConfig()
	lib := newTestLibrary(t)
	engine := deck.NewEngine(cfg, deck.Layout{}, src, deck.NewDispatcher(lib))

	h := &deckHarness{
		engine:  engine,
		library: lib,
		now:     time.Unix(1000, 0),
	}
	h.view = NewDeckView(engine, cfg, NewDetailView(NewMarkdownRenderer()))
	h.view.SetClock(func() time.Time { return h.now })
	h.view.SetSize(80, 30)
	return h
}

func (h *deckHarness) load(t *testing.T) {
	t.Helper()
	cmd := h.view.Init(telemetry.NewNoop())
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, DeckLoadedMsg{}, msg)
	h.view.Update(msg)
}

func TestDeckView_LoadingThenFirstCard(t *testing.T) {
	h := newDeckHarness(t, source.Samples())

	assert.Contains(t, h.view.View(), "Fetching dishes")

	h.load(t)
	view := h.view.View()
	assert.Contains(t, view, "Spaghetti Carbonara")
	assert.Equal(t, "1 / 5", h.view.StatusLine())
}

func TestDeckView_RefreshIsGuarded(t *testing.T) {
	h := newDeckHarness(t, source.Samples())

	first := h.view.Refresh("manual")
	require.NotNil(t, first)
	assert.Nil(t, h.view.Refresh("manual"), "second refresh while one is running")

	h.view.Update(first())
	assert.NotNil(t, h.view.Refresh("manual"))
}

func TestDeckView_SwipeRightSaves(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)

	cmd := h.view.Update(key("right"))
	assert.NotNil(t, cmd, "exit animation needs ticks")
	assert.Equal(t, 0, h.view.Swipes(), "nothing commits before the exit animation ends")

	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, h.view.Swipes())
	assert.Contains(t, h.view.StatusLine(), "2 / 5")
	assert.Contains(t, h.view.StatusLine(), "Saving Spaghetti Carbonara")

	h.engine.Dispatcher().Wait()
	dishes, err := h.library.List(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "sample-carbonara", dishes[0].ID)
	assert.Equal(t, models.PrivacyPrivate, dishes[0].Privacy)
}

func TestDeckView_SwipesAreCounted(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	st := &memState{}
	h.view.SetStateStore(st)
	h.load(t)

	h.view.Update(key("right"))
	h.advance(200 * time.Millisecond)
	h.view.Update(key("left"))
	h.advance(200 * time.Millisecond)

	assert.Equal(t, 2, h.view.Swipes())
	assert.Equal(t, 2, st.state.SwipeCount)
}

func TestDeckView_RefreshDuringExitAnimation(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)

	h.view.Update(key("right"))
	cmd := h.view.Refresh("manual")
	require.NotNil(t, cmd)
	h.view.Update(cmd())
	h.advance(time.Second)

	assert.Equal(t, 1, h.view.Swipes())
	assert.Contains(t, h.view.StatusLine(), "1 / 5", "the new deck starts at its first card")

	h.engine.Dispatcher().Wait()
	dishes, err := h.library.List(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "sample-carbonara", dishes[0].ID)
}

func TestDeckView_SwipeLeftDoesNotSave(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)

	h.view.Update(key("h"))
	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, h.view.Swipes())

	h.engine.Dispatcher().Wait()
	dishes, err := h.library.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dishes)
}

func TestDeckView_Exhausted(t *testing.T) {
	h := newDeckHarness(t, source.StaticSource{Dishes: models.SampleDishes()[:1]})
	h.load(t)

	h.view.Update(key("left"))
	h.advance(200 * time.Millisecond)

	assert.Equal(t, deck.Exhausted, h.engine.Phase())
	assert.Contains(t, h.view.View(), "That's every dish for now")

	// Keys do nothing on an exhausted deck.
	h.view.Update(key("right"))
	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, h.view.Swipes())
}

func TestDeckView_FetchErrorShowsExhausted(t *testing.T) {
	h := newDeckHarness(t, source.StaticSource{Err: errors.New("connection refused")})
	h.load(t)

	view := h.view.View()
	assert.Contains(t, view, "That's every dish for now")
	assert.Contains(t, view, "Couldn't reach the dish server")
}

func TestDeckView_TapOpensAndEscCloses(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)
	cfg := config.DefaultDeckConfig()

	h.view.Update(key("enter"))
	require.True(t, h.view.DetailOpen())

	h.advance(cfg.ExpandDuration)
	assert.Contains(t, h.view.View(), "Spaghetti Carbonara")
	assert.Equal(t, "Recipe", h.view.GetKeyboardCommands().ViewName)

	h.view.Update(key("esc"))
	h.advance(cfg.CollapseDuration)
	assert.False(t, h.view.DetailOpen())
	assert.Equal(t, 0, h.view.Swipes(), "tap never advances the deck")
	assert.Equal(t, "Deck", h.view.GetKeyboardCommands().ViewName)
}

func TestDeckView_MouseDragSwipes(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)

	h.view.HandleMouse(tea.MouseMsg{X: 40, Y: 15, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.view.HandleMouse(tea.MouseMsg{X: 64, Y: 15, Action: tea.MouseActionMotion})
	h.view.HandleMouse(tea.MouseMsg{X: 64, Y: 15, Action: tea.MouseActionRelease})

	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, h.view.Swipes())
}

func TestDeckView_ShortDragSpringsBack(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)

	h.view.HandleMouse(tea.MouseMsg{X: 40, Y: 15, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.view.HandleMouse(tea.MouseMsg{X: 45, Y: 15, Action: tea.MouseActionMotion})
	h.view.HandleMouse(tea.MouseMsg{X: 45, Y: 15, Action: tea.MouseActionRelease})

	h.advance(time.Second)
	assert.Equal(t, 0, h.view.Swipes())
	assert.False(t, h.view.DetailOpen())
	assert.Equal(t, "1 / 5", h.view.StatusLine())
}

func TestDeckView_DishSavedStatus(t *testing.T) {
	h := newDeckHarness(t, source.Samples())
	h.load(t)
	d := models.SampleDishes()[1]

	h.view.Update(DishSavedMsg{Dish: d, Added: true})
	assert.Contains(t, h.view.StatusLine(), "Saved Chickpea Curry")

	h.view.Update(DishSavedMsg{Dish: d})
	assert.Contains(t, h.view.StatusLine(), "already saved")

	h.view.Update(DishSavedMsg{Dish: d, Err: errors.New("disk full")})
	assert.Contains(t, h.view.StatusLine(), "Couldn't save Chickpea Curry")
}
