package views

import (
	"time"

	"github.com/asteroid-belt/dishdeck/internal/deck"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// DeckLoadedMsg is sent when a deck refresh completes.
type DeckLoadedMsg struct {
	Result  deck.RefreshResult
	Trigger string // "startup", "manual" or "exhausted"
}

// AnimationTickMsg drives the deck animations while they run.
type AnimationTickMsg struct {
	At time.Time
}

// DishSavedMsg reports the outcome of a background right-swipe save.
type DishSavedMsg struct {
	Dish  models.Dish
	Added bool
	Err   error
}

// RecipesLoadedMsg is sent when the saved-recipe list has been read.
type RecipesLoadedMsg struct {
	Dishes []models.Dish
	Err    error
}

// FiltersLoadedMsg carries the filter vocabulary.
type FiltersLoadedMsg struct {
	Categories []models.FilterCategory
	Err        error
}

// RecipeDeletedMsg is sent when a saved recipe has been removed.
type RecipeDeletedMsg struct {
	ID  string
	Err error
}

// EditRequestedMsg asks the app to open the form on a saved recipe.
type EditRequestedMsg struct {
	Dish models.Dish
}

// SubmitRequestedMsg asks the form to validate and submit its contents.
type SubmitRequestedMsg struct{}

// RecipeSubmittedMsg is sent when the form has been persisted.
type RecipeSubmittedMsg struct {
	Dish    models.Dish
	Privacy models.Privacy
	Edited  bool
	Err     error
}

// ImportCompletedMsg carries the result of a URL import.
type ImportCompletedMsg struct {
	Dish *models.Dish
	URL  string
	Err  error
}
