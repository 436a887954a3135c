package views

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/saved"
	"github.com/asteroid-belt/dishdeck/internal/telemetry"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/asteroid-belt/dishdeck/internal/validation"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Importer fetches a recipe from a URL.
type Importer interface {
	Import(ctx context.Context, rawURL string) (*models.Dish, error)
}

// Publisher posts a public recipe to the dish server.
type Publisher interface {
	Publish(ctx context.Context, dish models.Dish) (*models.Dish, error)
}

// ErrNoPublisher is returned when a public recipe is submitted without a
// dish server.
var ErrNoPublisher = errors.New("no dish server configured")

const submitTimeout = 30 * time.Second

// Form field indices in focus order.
const (
	fieldURL = iota
	fieldTitle
	fieldImage
	fieldTags
	fieldRating
	fieldIngredients
	fieldDirections
	fieldNotes
	fieldPrivacy
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Import from URL",
	"Title",
	"Image",
	"Tags",
	"Rating (0-10)",
	"Ingredients (one per line)",
	"Directions (one step per line)",
	"Notes",
	"Visibility",
}

// recipeForm is the validated shape of the form.
type recipeForm struct {
	Title       string   `validate:"required,max=200"`
	Image       string   `validate:"omitempty,max=1000"`
	Tags        []string `validate:"max=30,dive,max=50"`
	Rating      *float64 `validate:"omitempty,gte=0,lte=10"`
	OriginalURL string   `validate:"omitempty,url"`
	Notes       string   `validate:"max=5000"`
}

// FormView creates new recipes and edits saved ones. Submission is driven
// by SubmitRequestedMsg.
type FormView struct {
	library   *saved.Library
	importer  Importer
	publisher Publisher
	validate  *validation.Validator
	telemetry telemetry.Client

	inputs    map[int]*textinput.Model
	areas     map[int]*textarea.Model
	focus     int // -1 when nothing is focused
	isPublic  bool
	editing   *models.Dish
	imported  bool
	busy      bool
	errors    map[string]string
	status    string
	statusErr bool

	width  int
	height int
}

// NewFormView creates a form. importer and publisher may be nil.
func NewFormView(lib *saved.Library, importer Importer, publisher Publisher) *FormView {
	fv := &FormView{
		library:   lib,
		importer:  importer,
		publisher: publisher,
		validate:  validation.New(),
		telemetry: telemetry.NewNoop(),
		inputs:    make(map[int]*textinput.Model),
		areas:     make(map[int]*textarea.Model),
	}

	placeholders := map[int]string{
		fieldURL:    "https://example.com/recipes/pad-thai (ctrl+u to import)",
		fieldTitle:  "Pad Thai",
		fieldImage:  "https://… or asset:pasta.png",
		fieldTags:   "thai, noodles, quick",
		fieldRating: "8.5",
	}
	for _, f := range []int{fieldURL, fieldTitle, fieldImage, fieldTags, fieldRating} {
		ti := textinput.New()
		ti.Placeholder = placeholders[f]
		ti.CharLimit = 1000
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Current.Text)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Current.TextMuted)
		fv.inputs[f] = &ti
	}
	for _, f := range []int{fieldIngredients, fieldDirections, fieldNotes} {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 5000
		ta.SetHeight(3)
		ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
		fv.areas[f] = &ta
	}

	fv.focusField(fieldURL)
	return fv
}

// Init sets the telemetry client.
func (fv *FormView) Init(tc telemetry.Client) {
	if tc != nil {
		fv.telemetry = tc
	}
}

// SetSize updates the dimensions of the view.
func (fv *FormView) SetSize(w, h int) {
	fv.width = w
	fv.height = h
	inner := max(20, min(80, w-4))
	for _, ti := range fv.inputs {
		ti.Width = inner
	}
	for _, ta := range fv.areas {
		ta.SetWidth(inner)
	}
}

// CapturingInput reports whether keys are text input for this view.
func (fv *FormView) CapturingInput() bool {
	return fv.focus >= 0 && fv.focus != fieldPrivacy
}

// Editing returns the saved recipe being edited, if any.
func (fv *FormView) Editing() *models.Dish {
	return fv.editing
}

// Value returns the raw text of a field.
func (fv *FormView) Value(field int) string {
	if ti, ok := fv.inputs[field]; ok {
		return ti.Value()
	}
	if ta, ok := fv.areas[field]; ok {
		return ta.Value()
	}
	return ""
}

// Errors returns the validation errors of the last submit.
func (fv *FormView) Errors() map[string]string {
	return fv.errors
}

// Reset clears the form for a new recipe.
func (fv *FormView) Reset() {
	for _, ti := range fv.inputs {
		ti.Reset()
	}
	for _, ta := range fv.areas {
		ta.Reset()
	}
	fv.isPublic = false
	fv.editing = nil
	fv.imported = false
	fv.errors = nil
	fv.focusField(fieldURL)
}

// Edit loads a saved recipe into the form.
func (fv *FormView) Edit(d models.Dish) {
	fv.Reset()
	fv.fill(d)
	fv.editing = &d
	fv.status = "Editing " + d.DisplayTitle()
	fv.statusErr = false
	fv.focusField(fieldTitle)
}

func (fv *FormView) fill(d models.Dish) {
	fv.inputs[fieldURL].SetValue(d.OriginalURL)
	fv.inputs[fieldTitle].SetValue(d.Title)
	fv.inputs[fieldImage].SetValue(d.Image)
	fv.inputs[fieldTags].SetValue(strings.Join(d.Tags, ", "))
	if d.Rating != nil {
		fv.inputs[fieldRating].SetValue(strconv.FormatFloat(*d.Rating, 'f', -1, 64))
	} else {
		fv.inputs[fieldRating].SetValue("")
	}
	fv.areas[fieldIngredients].SetValue(strings.Join(d.Ingredients.Strings(), "\n"))
	fv.areas[fieldDirections].SetValue(strings.Join(d.Directions, "\n"))
	fv.areas[fieldNotes].SetValue(d.Notes)
}

func (fv *FormView) focusField(f int) tea.Cmd {
	for _, ti := range fv.inputs {
		ti.Blur()
	}
	for _, ta := range fv.areas {
		ta.Blur()
	}
	fv.focus = f
	if ti, ok := fv.inputs[f]; ok {
		return ti.Focus()
	}
	if ta, ok := fv.areas[f]; ok {
		return ta.Focus()
	}
	return nil
}

// Update handles form messages and keys.
func (fv *FormView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitRequestedMsg:
		return fv.submit()

	case ImportCompletedMsg:
		fv.busy = false
		fv.telemetry.TrackRecipeImported("url", msg.Err == nil)
		if msg.Err != nil {
			fv.setStatus("Import failed: "+msg.Err.Error(), true)
			return nil
		}
		editing := fv.editing
		fv.fill(*msg.Dish)
		fv.editing = editing
		fv.imported = true
		fv.setStatus("Imported "+msg.Dish.DisplayTitle()+". Review and press ctrl+s to save.", false)
		return fv.focusField(fieldTitle)

	case RecipeSubmittedMsg:
		fv.busy = false
		if msg.Err != nil {
			fv.setStatus("Save failed: "+msg.Err.Error(), true)
			return nil
		}
		switch {
		case msg.Edited:
			fv.telemetry.TrackRecipeUpdated()
		default:
			origin := "manual"
			if fv.imported {
				origin = "import"
			}
			fv.telemetry.TrackRecipeCreated(string(msg.Privacy), origin)
		}
		fv.Reset()
		if msg.Privacy == models.PrivacyPublic {
			fv.setStatus("Published "+msg.Dish.DisplayTitle()+" to the dish server", false)
		} else {
			fv.setStatus("Saved "+msg.Dish.DisplayTitle(), false)
		}
		return nil

	case tea.KeyMsg:
		return fv.handleKey(msg)

	default:
		// Cursor blink and other input-internal messages.
		var cmd tea.Cmd
		if ti, ok := fv.inputs[fv.focus]; ok {
			*ti, cmd = ti.Update(msg)
		} else if ta, ok := fv.areas[fv.focus]; ok {
			*ta, cmd = ta.Update(msg)
		}
		return cmd
	}
}

func (fv *FormView) setStatus(s string, isErr bool) {
	fv.status = s
	fv.statusErr = isErr
}

func (fv *FormView) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "tab":
		return fv.focusField((fv.focus + 1 + fieldCount) % fieldCount)
	case "shift+tab":
		return fv.focusField((fv.focus - 1 + fieldCount) % fieldCount)
	case "esc":
		fv.focusField(-1)
		return nil
	case "ctrl+s":
		return func() tea.Msg { return SubmitRequestedMsg{} }
	case "ctrl+u":
		return fv.importURL()
	}

	if fv.focus < 0 {
		if key == "enter" {
			return fv.focusField(fieldURL)
		}
		return nil
	}

	if fv.focus == fieldPrivacy {
		switch key {
		case " ", "left", "right", "h", "l", "enter":
			fv.isPublic = !fv.isPublic
		}
		return nil
	}

	if fv.focus == fieldURL && key == "enter" {
		return fv.importURL()
	}

	if ti, ok := fv.inputs[fv.focus]; ok {
		if key == "enter" {
			return fv.focusField(fv.focus + 1)
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	}
	if ta, ok := fv.areas[fv.focus]; ok {
		var cmd tea.Cmd
		*ta, cmd = ta.Update(msg)
		return cmd
	}
	return nil
}

func (fv *FormView) importURL() tea.Cmd {
	raw := strings.TrimSpace(fv.inputs[fieldURL].Value())
	switch {
	case fv.busy:
		return nil
	case raw == "":
		fv.setStatus("Enter a recipe URL to import", true)
		return nil
	case fv.importer == nil:
		fv.setStatus("Import is not available", true)
		return nil
	}

	fv.busy = true
	fv.setStatus("Importing "+raw+"…", false)
	imp := fv.importer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		d, err := imp.Import(ctx, raw)
		return ImportCompletedMsg{Dish: d, URL: raw, Err: err}
	}
}

// build validates the fields and assembles the dish.
func (fv *FormView) build() (models.Dish, bool) {
	fv.errors = nil

	form := recipeForm{
		Title:       strings.TrimSpace(fv.inputs[fieldTitle].Value()),
		Image:       strings.TrimSpace(fv.inputs[fieldImage].Value()),
		Tags:        splitTags(fv.inputs[fieldTags].Value()),
		OriginalURL: strings.TrimSpace(fv.inputs[fieldURL].Value()),
		Notes:       strings.TrimSpace(fv.areas[fieldNotes].Value()),
	}

	errs := map[string]string{}
	if raw := strings.TrimSpace(fv.inputs[fieldRating].Value()); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs["rating"] = "Must be a number"
		} else {
			form.Rating = &v
		}
	}
	if err := fv.validate.Struct(form); err != nil {
		for k, v := range validation.FieldErrors(err) {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		fv.errors = errs
		return models.Dish{}, false
	}

	return models.Dish{
		Title:       form.Title,
		Image:       form.Image,
		Tags:        form.Tags,
		Ingredients: parseIngredientLines(fv.areas[fieldIngredients].Value()),
		Directions:  models.SplitSteps(fv.areas[fieldDirections].Value()),
		Notes:       form.Notes,
		Rating:      form.Rating,
		OriginalURL: form.OriginalURL,
	}, true
}

func (fv *FormView) submit() tea.Cmd {
	if fv.busy {
		return nil
	}
	dish, ok := fv.build()
	if !ok {
		fv.setStatus("Fix the highlighted fields", true)
		return nil
	}

	fv.busy = true
	lib := fv.library

	if fv.editing != nil {
		dish.ID = fv.editing.ID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			err := lib.Update(ctx, dish)
			return RecipeSubmittedMsg{Dish: dish, Privacy: models.PrivacyPrivate, Edited: true, Err: err}
		}
	}

	if fv.isPublic {
		pub := fv.publisher
		return func() tea.Msg {
			if pub == nil {
				return RecipeSubmittedMsg{Dish: dish, Privacy: models.PrivacyPublic, Err: ErrNoPublisher}
			}
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			created, err := pub.Publish(ctx, dish)
			if err == nil && created != nil {
				dish = *created
			}
			return RecipeSubmittedMsg{Dish: dish, Privacy: models.PrivacyPublic, Err: err}
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		created, err := lib.Create(ctx, dish)
		if err == nil {
			dish = created
		}
		return RecipeSubmittedMsg{Dish: dish, Privacy: models.PrivacyPrivate, Err: err}
	}
}

// splitTags turns "Thai, quick noodles" into filter values.
func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if v := models.FilterValue(part); v != "" {
			tags = append(tags, v)
		}
	}
	return models.NormalizeTags(tags)
}

// parseIngredientLines parses one ingredient per line.
func parseIngredientLines(s string) models.IngredientList {
	var out models.IngredientList
	for _, line := range strings.Split(s, "\n") {
		if ing := models.ParseIngredientLine(line); !ing.IsEmpty() {
			out = append(out, ing)
		}
	}
	return out
}

// View renders the form.
func (fv *FormView) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Current.TextMuted)
	focusLabel := lipgloss.NewStyle().Foreground(theme.Current.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(theme.Current.Error)

	heading := "New recipe"
	if fv.editing != nil {
		heading = "Edit " + fv.editing.DisplayTitle()
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Current.Primary).Bold(true).Render(heading),
		"",
	}

	errKeys := map[int]string{
		fieldURL:    "originalurl",
		fieldTitle:  "title",
		fieldImage:  "image",
		fieldTags:   "tags",
		fieldRating: "rating",
		fieldNotes:  "notes",
	}

	for f := 0; f < fieldCount; f++ {
		if f == fieldPrivacy && fv.editing != nil {
			continue
		}
		label := labelStyle.Render(fieldLabels[f])
		if f == fv.focus {
			label = focusLabel.Render("▸ " + fieldLabels[f])
		}
		if msg, ok := fv.errors[errKeys[f]]; ok && errKeys[f] != "" {
			label += "  " + errStyle.Render(msg)
		}
		lines = append(lines, label)

		switch {
		case f == fieldPrivacy:
			lines = append(lines, fv.renderPrivacy())
		case fv.inputs[f] != nil:
			lines = append(lines, fv.inputs[f].View())
		default:
			lines = append(lines, fv.areas[f].View())
		}
	}

	hint := "tab next field • ctrl+u import • ctrl+s save • esc leave form"
	lines = append(lines, "", labelStyle.Italic(true).Render(hint))
	if fv.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Current.Info)
		if fv.statusErr {
			style = errStyle
		}
		lines = append(lines, style.Render(fv.status))
	}

	return strings.Join(lines, "\n")
}

func (fv *FormView) renderPrivacy() string {
	on := lipgloss.NewStyle().Foreground(theme.Current.TextHighlight).Background(theme.Current.Overlay).Bold(true).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(theme.Current.TextMuted).Padding(0, 1)
	private, public := on, off
	if fv.isPublic {
		private, public = off, on
	}
	return private.Render("Private (this device)") + " " + public.Render("Public (dish server)")
}

// GetKeyboardCommands returns the keyboard commands for this view.
func (fv *FormView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "Create",
		Commands: []Command{
			{Key: "tab / shift+tab", Description: "Move between fields"},
			{Key: "ctrl+u", Description: "Import the recipe at the URL"},
			{Key: "ctrl+s", Description: "Save the recipe"},
			{Key: "space", Description: "Toggle private or public"},
			{Key: "esc", Description: "Leave the form (then 1-3 switch tabs)"},
		},
	}
}
