package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/components"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type libraryMode int

const (
	modeList libraryMode = iota
	modeSearch
	modeFilters
	modeDetail
	modeConfirmDelete
)

// StateStore persists per-install state: the library tag filters and the
// lifetime swipe counter.
type StateStore interface {
	GetUserState() (*models.UserState, error)
	SaveFilters(filters []string) error
	RecordSwipe() error
}

// filterGridHeight is the number of rows shown for the tag grid.
const filterGridHeight = 5

// LibraryView lists the saved recipes with search, tag filters, detail,
// edit and delete.
type LibraryView struct {
	library   *saved.Library
	state     StateStore
	telemetry telemetry.Client

	searchBar *components.SearchBar
	tagGrid   *components.TagGrid
	confirm   *components.ConfirmDialog
	detail    *DetailView

	dishes  []models.Dish
	results []models.Dish

	mode         libraryMode
	selected     int
	scrollOffset int
	loading      bool
	loadErr      error
	status       string

	lastQuery string
	lastTags  int

	filtersRestored bool
	savedFilters    string

	width  int
	height int
}

// NewLibraryView creates a library view over lib.
func NewLibraryView(lib *saved.Library, renderer *MarkdownRenderer) *LibraryView {
	return &LibraryView{
		library:   lib,
		telemetry: telemetry.NewNoop(),
		searchBar: components.NewSearchBar(),
		tagGrid:   components.NewTagGrid(),
		confirm:   components.NewConfirmDialog("Delete recipe?", ""),
		detail:    NewDetailView(renderer),
	}
}

// Init sets the telemetry client and returns the initial load.
func (lv *LibraryView) Init(tc telemetry.Client) tea.Cmd {
	if tc != nil {
		lv.telemetry = tc
		lv.detail.Init(tc)
	}
	return lv.Reload()
}

// SetStateStore enables tag filter persistence.
func (lv *LibraryView) SetStateStore(s StateStore) {
	lv.state = s
}

// Reload re-reads the saved list.
func (lv *LibraryView) Reload() tea.Cmd {
	lv.loading = true
	lib := lv.library
	return func() tea.Msg {
		dishes, err := lib.List(context.Background())
		return RecipesLoadedMsg{Dishes: dishes, Err: err}
	}
}

// SetSize updates the dimensions of the view.
func (lv *LibraryView) SetSize(w, h int) {
	lv.width = w
	lv.height = h
	lv.searchBar.SetWidth(min(60, w))
	lv.tagGrid.SetSize(w, filterGridHeight)
	lv.detail.SetSize(w, h)
}

// CapturingInput reports whether keys are text input for this view.
func (lv *LibraryView) CapturingInput() bool {
	return lv.mode == modeSearch
}

// Results returns the recipes matching the current search and filters.
func (lv *LibraryView) Results() []models.Dish {
	return lv.results
}

// Update handles library messages and keys.
func (lv *LibraryView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipesLoadedMsg:
		lv.loading = false
		lv.loadErr = msg.Err
		if msg.Err == nil {
			lv.dishes = msg.Dishes
		}
		lv.applyFilter()
		return nil

	case FiltersLoadedMsg:
		lv.tagGrid.SetCategories(msg.Categories)
		lv.restoreFilters()
		return nil

	case RecipeDeletedMsg:
		if msg.Err != nil {
			lv.status = "Delete failed: " + msg.Err.Error()
			return nil
		}
		lv.status = "Recipe deleted"
		lv.telemetry.TrackRecipeDeleted("tui")
		return lv.Reload()

	case tea.KeyMsg:
		return lv.handleKey(msg)

	case tea.MouseMsg:
		if lv.mode == modeDetail {
			lv.detail.HandleMouse(msg)
		}
	}
	return nil
}

func (lv *LibraryView) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch lv.mode {
	case modeSearch:
		switch key {
		case "enter", "esc", "down":
			lv.searchBar.Blur()
			lv.mode = modeList
			lv.trackSearch()
			return nil
		}
		cmd := lv.searchBar.HandleKey(msg)
		lv.applyFilter()
		return cmd

	case modeFilters:
		switch key {
		case "left", "h":
			lv.tagGrid.MoveLeft()
		case "right", "l":
			lv.tagGrid.MoveRight()
		case "up", "k":
			lv.tagGrid.MoveUp()
		case "down", "j":
			lv.tagGrid.MoveDown()
		case " ", "x":
			lv.tagGrid.Toggle()
			lv.applyFilter()
		case "c":
			lv.tagGrid.ClearSelection()
			lv.applyFilter()
		case "enter", "esc", "f":
			lv.tagGrid.SetFocused(false)
			lv.mode = modeList
			lv.persistFilters()
			if n := len(lv.tagGrid.Selected()); n != lv.lastTags {
				lv.lastTags = n
				lv.telemetry.TrackFilterApplied(n)
			}
		}
		return nil

	case modeDetail:
		if back, cmd := lv.detail.Update(key); back {
			lv.detail.Clear()
			lv.mode = modeList
			return nil
		} else if cmd != nil {
			return cmd
		}
		if key == "e" {
			return lv.editSelected()
		}
		return nil

	case modeConfirmDelete:
		lv.confirm.HandleKey(key)
		switch {
		case lv.confirm.IsConfirmed():
			lv.mode = modeList
			return lv.deleteSelected()
		case lv.confirm.IsCancelled():
			lv.mode = modeList
		}
		return nil
	}

	switch key {
	case "up", "k":
		lv.move(-1)
	case "down", "j":
		lv.move(1)
	case "/":
		lv.mode = modeSearch
		return lv.searchBar.Focus()
	case "f":
		lv.mode = modeFilters
		lv.tagGrid.SetFocused(true)
	case "enter":
		if d := lv.Selected(); d != nil {
			lv.detail.SetDish(*d)
			lv.mode = modeDetail
			lv.telemetry.TrackDetailOpened(d.IsPrivate())
		}
	case "e":
		return lv.editSelected()
	case "d", "delete":
		if d := lv.Selected(); d != nil {
			lv.confirm.SetMessage(fmt.Sprintf("Remove %q from your saved recipes?", d.DisplayTitle()))
			lv.mode = modeConfirmDelete
		}
	case "esc":
		if lv.searchBar.Value() != "" || len(lv.tagGrid.Selected()) > 0 {
			lv.searchBar.Clear()
			lv.tagGrid.ClearSelection()
			lv.applyFilter()
			lv.persistFilters()
		}
	}
	return nil
}

// Selected returns the recipe under the cursor.
func (lv *LibraryView) Selected() *models.Dish {
	if lv.selected >= 0 && lv.selected < len(lv.results) {
		return &lv.results[lv.selected]
	}
	return nil
}

func (lv *LibraryView) editSelected() tea.Cmd {
	d := lv.Selected()
	if d == nil {
		return nil
	}
	dish := *d
	return func() tea.Msg { return EditRequestedMsg{Dish: dish} }
}

func (lv *LibraryView) deleteSelected() tea.Cmd {
	d := lv.Selected()
	if d == nil {
		return nil
	}
	id := d.ID
	lib := lv.library
	return func() tea.Msg {
		return RecipeDeletedMsg{ID: id, Err: lib.Delete(context.Background(), id)}
	}
}

func (lv *LibraryView) trackSearch() {
	q := strings.TrimSpace(lv.searchBar.Value())
	if q == "" || q == lv.lastQuery {
		return
	}
	lv.lastQuery = q
	lv.telemetry.TrackSearchPerformed(len(q), len(lv.results), "tui")
}

// restoreFilters selects the persisted tags once the vocabulary is
// known. It runs on the first filter load only.
func (lv *LibraryView) restoreFilters() {
	if lv.state == nil || lv.filtersRestored {
		return
	}
	lv.filtersRestored = true

	st, err := lv.state.GetUserState()
	if err != nil {
		log.Printf("load saved filters: %v", err)
		return
	}
	lv.tagGrid.Select(st.GetFilters())
	lv.savedFilters = strings.Join(lv.tagGrid.Selected(), ",")
	lv.lastTags = len(lv.tagGrid.Selected())
	lv.applyFilter()
}

func (lv *LibraryView) persistFilters() {
	if lv.state == nil {
		return
	}
	sel := lv.tagGrid.Selected()
	if joined := strings.Join(sel, ","); joined != lv.savedFilters {
		if err := lv.state.SaveFilters(sel); err != nil {
			log.Printf("save filters: %v", err)
			return
		}
		lv.savedFilters = joined
	}
}

func (lv *LibraryView) applyFilter() {
	lv.results = saved.Filter(lv.dishes, lv.searchBar.Value(), lv.tagGrid.Selected())
	lv.selected = min(lv.selected, max(0, len(lv.results)-1))
	lv.adjustScroll()
}

func (lv *LibraryView) move(delta int) {
	if len(lv.results) == 0 {
		return
	}
	lv.selected = max(0, min(len(lv.results)-1, lv.selected+delta))
	lv.adjustScroll()
}

// listHeight is the number of list rows that fit under the search bar
// and filters.
func (lv *LibraryView) listHeight() int {
	return max(3, (lv.height-filterGridHeight-6)/2)
}

func (lv *LibraryView) adjustScroll() {
	visible := lv.listHeight()
	if lv.selected < lv.scrollOffset {
		lv.scrollOffset = lv.selected
	}
	if lv.selected >= lv.scrollOffset+visible {
		lv.scrollOffset = lv.selected - visible + 1
	}
}

// View renders the library.
func (lv *LibraryView) View() string {
	switch lv.mode {
	case modeDetail:
		return lv.detail.View()
	case modeConfirmDelete:
		return lv.confirm.CenteredView(lv.width, lv.height)
	}

	parts := []string{
		lv.searchBar.View(),
		lv.tagGrid.View(),
		"",
		lv.renderList(),
	}
	if lv.status != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Current.Info).Render(lv.status))
	}
	return strings.Join(parts, "\n")
}

func (lv *LibraryView) renderList() string {
	muted := lipgloss.NewStyle().Foreground(theme.Current.TextMuted)

	switch {
	case lv.loading && len(lv.dishes) == 0:
		return muted.Render("Loading saved recipes…")
	case lv.loadErr != nil:
		return lipgloss.NewStyle().Foreground(theme.Current.Error).Render("Couldn't read saved recipes: " + lv.loadErr.Error())
	case len(lv.dishes) == 0:
		return muted.Render("Nothing saved yet. Swipe right on a dish or create one with 3.")
	case len(lv.results) == 0:
		return muted.Render("No saved recipes match.")
	}

	titleStyles := components.DefaultHighlightStyles()
	selectedStyles := components.HighlightStyles{
		Normal:    lipgloss.NewStyle().Foreground(theme.Current.TextHighlight).Background(theme.Current.Overlay).Bold(true),
		Highlight: titleStyles.Highlight.Background(theme.Current.Overlay),
	}
	query := lv.searchBar.Value()

	end := min(len(lv.results), lv.scrollOffset+lv.listHeight())
	var rows []string
	for i := lv.scrollOffset; i < end; i++ {
		d := lv.results[i]
		title := components.RenderHighlighted(d.DisplayTitle(), query, titleStyles)
		cursor := "  "
		if i == lv.selected {
			title = components.RenderHighlighted(d.DisplayTitle(), query, selectedStyles)
			cursor = lipgloss.NewStyle().Foreground(theme.Current.Primary).Render("▸ ")
		}
		meta := "★ " + d.RatingLabel()
		if len(d.Tags) > 0 {
			meta += "  " + strings.Join(d.Tags, ", ")
		}
		rows = append(rows,
			cursor+title,
			"  "+muted.MaxWidth(max(1, lv.width-2)).Render(meta),
		)
	}

	footer := muted.Italic(true).Render(fmt.Sprintf("%d of %d  •  / search  •  f filters  •  enter open  •  e edit  •  d delete",
		len(lv.results), len(lv.dishes)))
	return strings.Join(append(rows, "", footer), "\n")
}

// GetKeyboardCommands returns the keyboard commands for this view.
func (lv *LibraryView) GetKeyboardCommands() ViewCommands {
	if lv.mode == modeDetail {
		cmds := lv.detail.GetKeyboardCommands()
		cmds.Commands = append(cmds.Commands, Command{Key: "e", Description: "Edit this recipe"})
		return cmds
	}
	return ViewCommands{
		ViewName: "Saved Recipes",
		Commands: []Command{
			{Key: "↑↓, k/j", Description: "Move through the list"},
			{Key: "/", Description: "Search by title"},
			{Key: "f", Description: "Filter by tags (space toggles, c clears)"},
			{Key: "enter", Description: "Open the recipe"},
			{Key: "e", Description: "Edit the recipe"},
			{Key: "d", Description: "Delete the recipe"},
			{Key: "esc", Description: "Clear search and filters"},
		},
	}
}
