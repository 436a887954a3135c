// Package models defines the core data structures for dishdeck.
package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Privacy decides where a dish is stored.
type Privacy string

const (
	PrivacyPrivate Privacy = "private" // device-local saved-recipe list
	PrivacyPublic  Privacy = "public"  // remote dish collection
)

// IsValid returns true if the privacy value is recognized.
func (p Privacy) IsValid() bool {
	return p == PrivacyPrivate || p == PrivacyPublic
}

// Display fallbacks.
const (
	UntitledDish     = "Untitled dish"
	NotRated         = "Not rated"
	PlaceholderImage = "asset:placeholder.png"
)

// PrivateIDPrefix prefixes generated ids of private recipes.
const PrivateIDPrefix = "private-"

// Assets maps bundled image asset ids to their display names.
var Assets = map[string]string{
	"asset:placeholder.png": "placeholder",
	"asset:pasta.png":       "pasta",
	"asset:salad.png":       "salad",
	"asset:curry.png":       "curry",
	"asset:tacos.png":       "tacos",
	"asset:pancakes.png":    "pancakes",
}

// Dish is a recipe card. Public dishes live in the dish server's
// collection, private dishes in the local saved-recipe list.
type Dish struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Title string `gorm:"size:255;index" json:"title"`
	Image string `gorm:"size:1000" json:"image"` // asset id or URI

	Tags        []string       `gorm:"serializer:json;type:text" json:"tags"`
	Ingredients IngredientList `gorm:"serializer:json;type:text" json:"ingredients"`
	Directions  StepList       `gorm:"serializer:json;type:text" json:"directions"`
	Notes       string         `gorm:"type:text" json:"notes"`

	Rating  *float64 `json:"rating,omitempty"` // [0,10]
	Likes   int      `gorm:"default:0" json:"likes"`
	Privacy Privacy  `gorm:"size:10;index;default:public" json:"privacy"`

	OriginalURL string    `gorm:"size:1000" json:"original_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Dish) TableName() string {
	return "dishes"
}

// UnmarshalJSON normalizes a dish at the ingestion boundary: tolerant
// ingredient and direction shapes, ratings outside [0,10] dropped,
// tags trimmed and deduplicated.
func (d *Dish) UnmarshalJSON(data []byte) error {
	type alias Dish
	aux := struct {
		*alias
		Rating json.RawMessage `json:"rating"`
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.Rating = parseRating(aux.Rating)
	d.Tags = NormalizeTags(d.Tags)
	return nil
}

func parseRating(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	}

	return ValidRating(v)
}

// ValidRating returns a pointer to v when it lies within [0,10], nil otherwise.
func ValidRating(v float64) *float64 {
	if v < 0 || v > 10 || v != v {
		return nil
	}
	return &v
}

// NormalizeTags trims, drops empty entries and removes duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// DisplayTitle returns the title or the untitled fallback.
func (d *Dish) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return UntitledDish
}

// ResolveImage returns a bundled asset id, an absolute URI, a local file,
// or the placeholder asset when the image is empty or unrecognized.
func (d *Dish) ResolveImage() string {
	img := strings.TrimSpace(d.Image)
	if img == "" {
		return PlaceholderImage
	}
	if _, ok := Assets[img]; ok {
		return img
	}
	if _, ok := Assets["asset:"+img]; ok {
		return "asset:" + img
	}
	if filepath.IsAbs(img) {
		return img
	}
	u, err := url.Parse(img)
	if err != nil || u.Scheme == "" {
		return PlaceholderImage
	}
	switch {
	case u.Scheme == "file" && u.Path != "":
		return img
	case u.Scheme == "data", u.Host != "":
		return img
	}
	return PlaceholderImage
}

// RatingLabel renders the rating as "7.5 / 10" or "Not rated".
func (d *Dish) RatingLabel() string {
	if d.Rating == nil {
		return NotRated
	}
	return fmt.Sprintf("%.1f / 10", *d.Rating)
}

// HasTag returns true if the dish carries the given tag (case-insensitive).
func (d *Dish) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsPrivate returns true if the dish belongs in the local list.
func (d *Dish) IsPrivate() bool {
	return d.Privacy == PrivacyPrivate
}

// NewPrivateID generates an id for a private recipe.
func NewPrivateID() string {
	return PrivateIDPrefix + uuid.New().String()
}

// ToPrivate returns a copy of the dish in the private shape: an id is
// generated when absent, privacy is forced to private and created_at
// defaults to now.
func (d Dish) ToPrivate(now time.Time) Dish {
	out := d
	if strings.TrimSpace(out.ID) == "" {
		out.ID = NewPrivateID()
	}
	out.Privacy = PrivacyPrivate
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.Tags = append([]string(nil), d.Tags...)
	out.Ingredients = append(IngredientList(nil), d.Ingredients...)
	out.Directions = append(StepList(nil), d.Directions...)
	return out
}
