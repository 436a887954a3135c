package server

import (
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// CreateDishRequest is the payload of POST /dishes.
type CreateDishRequest struct {
	Title       string                `json:"title" validate:"required,max=200"`
	Image       string                `json:"image" validate:"omitempty,max=1000"`
	Tags        []string              `json:"tags" validate:"max=30,dive,max=50"`
	Ingredients models.IngredientList `json:"ingredients" validate:"max=200"`
	Directions  models.StepList       `json:"directions" validate:"max=200"`
	Notes       string                `json:"notes" validate:"max=5000"`
	Rating      *float64              `json:"rating" validate:"omitempty,gte=0,lte=10"`
	OriginalURL string                `json:"original_url" validate:"omitempty,url"`
}

// Dish converts the request into a dish without id or timestamps.
func (r CreateDishRequest) Dish() models.Dish {
	return models.Dish{
		Title:       strings.TrimSpace(r.Title),
		Image:       r.Image,
		Tags:        models.NormalizeTags(r.Tags),
		Ingredients: r.Ingredients,
		Directions:  r.Directions,
		Notes:       r.Notes,
		Rating:      r.Rating,
		OriginalURL: r.OriginalURL,
	}
}
