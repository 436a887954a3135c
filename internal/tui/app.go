// Package tui contains the Bubble Tea user interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/deck"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/views"
	"github.com/asteroid-belt/dishdeck/pkg/version"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies the visible screen.
type Tab int

const (
	TabDeck Tab = iota
	TabLibrary
	TabCreate
)

func (t Tab) String() string {
	switch t {
	case TabDeck:
		return "deck"
	case TabLibrary:
		return "saved"
	case TabCreate:
		return "create"
	default:
		return "unknown"
	}
}

// chromeHeight is the number of lines taken by the header, the status line
// and the footer.
const chromeHeight = 3

// FilterSource supplies the filter vocabulary.
type FilterSource interface {
	FetchFilters(ctx context.Context) ([]models.FilterCategory, error)
}

// Pinger wakes a dish server that may sleep when idle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires the TUI to its services. Filters, Importer, Publisher,
// State and Pinger may be nil.
type Options struct {
	Config    *config.Config
	Fetcher   deck.Fetcher
	Library   *saved.Library
	Filters   FilterSource
	Importer  views.Importer
	Publisher views.Publisher
	State     views.StateStore
	Pinger    Pinger
	Telemetry telemetry.Client
	// Mode is reported with session telemetry ("tui" or "demo").
	Mode string
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg       *config.Config
	keymap    Keymap
	styles    Styles
	telemetry telemetry.Client
	engine    *deck.Engine
	filters   FilterSource
	pinger    Pinger
	mode      string

	// Views
	tab         Tab
	showHelp    bool
	deckView    *views.DeckView
	libraryView *views.LibraryView
	formView    *views.FormView
	helpView    *views.HelpView

	// Background save results from the swipe dispatcher
	saveCh  chan views.DishSavedMsg
	stopped chan struct{}

	// State
	width    int
	height   int
	ready    bool
	quitting bool

	sessionStart time.Time
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tc := opts.Telemetry
	if tc == nil {
		tc = telemetry.NewNoop()
	}
	mode := opts.Mode
	if mode == "" {
		mode = "tui"
	}

	// The observer runs on the dispatcher goroutine. A full channel blocks
	// it until the UI drains a result or the program exits.
	saveCh := make(chan views.DishSavedMsg, 16)
	stopped := make(chan struct{})
	dispatcher := deck.NewDispatcher(opts.Library, deck.WithSaveObserver(func(d models.Dish, added bool, err error) {
		select {
		case saveCh <- views.DishSavedMsg{Dish: d, Added: added, Err: err}:
		case <-stopped:
		}
	}))
	engine := deck.NewEngine(cfg.Deck, deck.Layout{}, opts.Fetcher, dispatcher)

	renderer := views.NewMarkdownRenderer()
	deckView := views.NewDeckView(engine, cfg.Deck, views.NewDetailView(renderer))
	libraryView := views.NewLibraryView(opts.Library, renderer)
	if opts.State != nil {
		deckView.SetStateStore(opts.State)
		libraryView.SetStateStore(opts.State)
	}

	return &Model{
		cfg:          cfg,
		keymap:       DefaultKeymap(),
		styles:       DefaultStyles(),
		telemetry:    tc,
		engine:       engine,
		filters:      opts.Filters,
		pinger:       opts.Pinger,
		mode:         mode,
		deckView:     deckView,
		libraryView:  libraryView,
		formView:     views.NewFormView(opts.Library, opts.Importer, opts.Publisher),
		helpView:     views.NewHelpView(),
		saveCh:       saveCh,
		stopped:      stopped,
		sessionStart: time.Now(),
	}
}

// Init starts the deck fetch, the saved-list load and the filter fetch.
func (m *Model) Init() tea.Cmd {
	m.formView.Init(m.telemetry)
	m.helpView.Init(m.telemetry)

	return tea.Batch(
		m.deckView.Init(m.telemetry),
		m.libraryView.Init(m.telemetry),
		m.loadFiltersCmd(),
		m.watchSavesCmd(),
		m.pingCmd(),
	)
}

// Engine returns the deck engine.
func (m *Model) Engine() *deck.Engine {
	return m.engine
}

// CurrentTab returns the visible tab.
func (m *Model) CurrentTab() Tab {
	return m.tab
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := max(1, msg.Height-chromeHeight)
		m.deckView.SetSize(msg.Width, contentHeight)
		m.libraryView.SetSize(msg.Width, contentHeight)
		m.formView.SetSize(msg.Width, contentHeight)
		m.helpView.SetSize(msg.Width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Mouse rows are relative to the screen; views expect rows
		// relative to their content area below the header.
		msg.Y--
		switch m.tab {
		case TabDeck:
			return m, m.deckView.HandleMouse(msg)
		case TabLibrary:
			return m, m.libraryView.Update(msg)
		}
		return m, nil

	case views.DeckLoadedMsg, views.AnimationTickMsg:
		return m, m.deckView.Update(msg)

	case views.DishSavedMsg:
		cmds := []tea.Cmd{m.deckView.Update(msg), m.watchSavesCmd()}
		if msg.Added {
			cmds = append(cmds, m.libraryView.Reload())
		}
		return m, tea.Batch(cmds...)

	case views.RecipesLoadedMsg, views.FiltersLoadedMsg, views.RecipeDeletedMsg:
		return m, m.libraryView.Update(msg)

	case views.EditRequestedMsg:
		m.formView.Edit(msg.Dish)
		m.switchTab(TabCreate)
		return m, nil

	case views.SubmitRequestedMsg, views.ImportCompletedMsg:
		return m, m.formView.Update(msg)

	case views.RecipeSubmittedMsg:
		cmd := m.formView.Update(msg)
		if msg.Err != nil || msg.Privacy != models.PrivacyPrivate {
			return m, cmd
		}
		m.switchTab(TabLibrary)
		return m, tea.Batch(cmd, m.libraryView.Reload())
	}

	if m.tab == TabCreate {
		return m, m.formView.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	if m.showHelp {
		if m.helpView.Update(key) {
			m.showHelp = false
		}
		return m, nil
	}

	capturing := (m.tab == TabLibrary && m.libraryView.CapturingInput()) ||
		(m.tab == TabCreate && m.formView.CapturingInput())
	if !capturing {
		switch key {
		case "q":
			return m.quit()
		case "?":
			m.helpView.SetViewCommands(m.currentCommands())
			m.showHelp = true
			return m, nil
		case "1":
			m.switchTab(TabDeck)
			return m, nil
		case "2":
			m.switchTab(TabLibrary)
			return m, nil
		case "3":
			m.switchTab(TabCreate)
			return m, nil
		}
	}

	switch m.tab {
	case TabDeck:
		return m, m.deckView.Update(msg)
	case TabLibrary:
		return m, m.libraryView.Update(msg)
	case TabCreate:
		return m, m.formView.Update(msg)
	}
	return m, nil
}

func (m *Model) switchTab(t Tab) {
	if t == m.tab {
		return
	}
	m.telemetry.TrackViewNavigated(t.String(), m.tab.String())
	m.tab = t
}

func (m *Model) currentCommands() views.ViewCommands {
	switch m.tab {
	case TabLibrary:
		return m.libraryView.GetKeyboardCommands()
	case TabCreate:
		return m.formView.GetKeyboardCommands()
	default:
		return m.deckView.GetKeyboardCommands()
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.trackSessionExit()
	return m, tea.Quit
}

// trackSessionExit tracks app exit.
func (m *Model) trackSessionExit() {
	durationMs := time.Since(m.sessionStart).Milliseconds()
	m.telemetry.TrackAppExited(m.mode, durationMs, m.deckView.Swipes())
}

// loadFiltersCmd fetches the filter vocabulary, falling back to the
// built-in categories.
func (m *Model) loadFiltersCmd() tea.Cmd {
	src := m.filters
	return func() tea.Msg {
		if src == nil {
			return views.FiltersLoadedMsg{Categories: models.DefaultFilterCategories()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cats, err := src.FetchFilters(ctx)
		if err != nil || len(cats) == 0 {
			if err != nil {
				log.Printf("fetch filters: %v", err)
			}
			return views.FiltersLoadedMsg{Categories: models.DefaultFilterCategories(), Err: err}
		}
		return views.FiltersLoadedMsg{Categories: cats}
	}
}

// pingCmd wakes the dish server ahead of the first deck fetch.
func (m *Model) pingCmd() tea.Cmd {
	p := m.pinger
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			log.Printf("wake dish server: %v", err)
		}
		return nil
	}
}

// watchSavesCmd waits for the next background save result.
func (m *Model) watchSavesCmd() tea.Cmd {
	ch := m.saveCh
	return func() tea.Msg {
		return <-ch
	}
}

// View returns the current view as a string.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	contentHeight := max(1, m.height-chromeHeight)

	var content, status, help string
	switch {
	case m.showHelp:
		content = m.helpView.View()
		help = "esc close help"
	case m.tab == TabDeck:
		content = m.deckView.View()
		status = m.deckView.StatusLine()
		help = m.keymap.QuickHelpText()
	case m.tab == TabLibrary:
		content = m.libraryView.View()
		help = "/ search • f filters • enter open • 1 deck • 3 create • q quit"
	case m.tab == TabCreate:
		content = m.formView.View()
		help = "esc then 1/2 to leave • ctrl+s save"
	}

	content = lipgloss.NewStyle().
		MaxHeight(contentHeight).
		Height(contentHeight).
		Render(content)

	return strings.Join([]string{
		m.renderHeader(),
		content,
		m.styles.StatusInfo.MaxWidth(max(1, m.width)).Render(status),
		m.styles.Footer.MaxWidth(max(1, m.width)).Render(help),
	}, "\n")
}

func (m *Model) renderHeader() string {
	tabs := []string{m.styles.HeaderTitle.Render("dishdeck")}
	for _, t := range []Tab{TabDeck, TabLibrary, TabCreate} {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := m.styles.Muted.Render(version.Short())

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// shutdown releases save results nobody will read and waits for the
// in-flight saves.
func (m *Model) shutdown() {
	close(m.stopped)
	m.engine.Dispatcher().Wait()
}

// Run executes the TUI program and waits for in-flight saves on exit.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err := p.Run()
	model.shutdown()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
