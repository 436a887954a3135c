package importer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ldRecipe is the subset of schema.org/Recipe that maps onto a dish.
// Most fields come in several shapes in the wild, so they stay raw.
type ldRecipe struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Image              json.RawMessage `json:"image"`
	Keywords           json.RawMessage `json:"keywords"`
	RecipeCategory     json.RawMessage `json:"recipeCategory"`
	RecipeCuisine      json.RawMessage `json:"recipeCuisine"`
	RecipeIngredient   []string        `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage `json:"recipeInstructions"`
	AggregateRating    *struct {
		RatingValue json.RawMessage `json:"ratingValue"`
		BestRating  json.RawMessage `json:"bestRating"`
	} `json:"aggregateRating"`
}

// findRecipeJSONLD returns the first schema.org Recipe in the given
// JSON-LD script bodies.
func findRecipeJSONLD(scripts []string) (*models.Dish, bool) {
	for _, script := range scripts {
		var doc any
		if err := json.Unmarshal([]byte(strings.TrimSpace(script)), &doc); err != nil {
			continue
		}
		node := findRecipeNode(doc)
		if node == nil {
			continue
		}
		raw, err := json.Marshal(node)
		if err != nil {
			continue
		}
		var r ldRecipe
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		dish := r.dish()
		if dish.Title == "" && len(dish.Ingredients) == 0 {
			continue
		}
		return &dish, true
	}
	return nil, false
}

// findRecipeNode searches objects, arrays and @graph containers.
func findRecipeNode(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if n := findRecipeNode(item); n != nil {
				return n
			}
		}
	case map[string]any:
		if isRecipeType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findRecipeNode(graph)
		}
		if main, ok := t["mainEntity"]; ok {
			return findRecipeNode(main)
		}
	}
	return nil
}

func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func (r ldRecipe) dish() models.Dish {
	d := models.Dish{
		Title: strings.TrimSpace(r.Name),
		Image: ldImage(r.Image),
		Notes: strings.TrimSpace(r.Description),
	}

	var tags []string
	tags = append(tags, ldStrings(r.RecipeCategory)...)
	tags = append(tags, ldStrings(r.RecipeCuisine)...)
	tags = append(tags, ldStrings(r.Keywords)...)
	for i, t := range tags {
		tags[i] = models.FilterValue(t)
	}
	d.Tags = models.NormalizeTags(tags)

	for _, line := range r.RecipeIngredient {
		if line = strings.TrimSpace(line); line != "" {
			d.Ingredients = append(d.Ingredients, models.ParseIngredientLine(line))
		}
	}
	d.Directions = ldInstructions(r.RecipeInstructions)

	if r.AggregateRating != nil {
		d.Rating = ldRating(r.AggregateRating.RatingValue, r.AggregateRating.BestRating)
	}
	return d
}

// ldStrings reads a string, a comma-separated string or an array of strings.
func ldStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	return nil
}

// ldImage reads a URL string, an ImageObject or an array of either.
func ldImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.URL != "" {
		return obj.URL
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if img := ldImage(item); img != "" {
				return img
			}
		}
	}
	return ""
}

// ldInstructions flattens a string, a list of strings, HowToStep objects
// or HowToSection objects holding further steps.
func ldInstructions(raw json.RawMessage) models.StepList {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return models.SplitSteps(s)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		var single json.RawMessage
		if json.Unmarshal(raw, &single) != nil {
			return nil
		}
		items = []json.RawMessage{single}
	}

	var steps models.StepList
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				steps = append(steps, text)
			}
			continue
		}
		var step struct {
			Text            string          `json:"text"`
			Name            string          `json:"name"`
			ItemListElement json.RawMessage `json:"itemListElement"`
		}
		if err := json.Unmarshal(item, &step); err != nil {
			continue
		}
		switch {
		case len(step.ItemListElement) > 0:
			steps = append(steps, ldInstructions(step.ItemListElement)...)
		case strings.TrimSpace(step.Text) != "":
			steps = append(steps, strings.TrimSpace(step.Text))
		case strings.TrimSpace(step.Name) != "":
			steps = append(steps, strings.TrimSpace(step.Name))
		}
	}
	return steps
}

// ldRating rescales an aggregate rating to [0,10]; schema.org defaults
// bestRating to 5.
func ldRating(value, best json.RawMessage) *float64 {
	v, ok := ldNumber(value)
	if !ok {
		return nil
	}
	b, ok := ldNumber(best)
	if !ok || b <= 0 {
		b = 5
	}
	scaled := v / b * 10
	return models.ValidRating(float64(int(scaled*10+0.5)) / 10)
}

func ldNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
