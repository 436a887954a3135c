package models

import "strings"

// FilterOption is one selectable tag filter.
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FilterCategory groups filter options under a heading.
type FilterCategory struct {
	Name    string         `json:"name"`
	Options []FilterOption `json:"options"`
}

// FilterValue derives a tag value from its label: lower-cased with
// whitespace replaced by "_".
func FilterValue(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// NewFilterCategory builds a category from option labels.
func NewFilterCategory(name string, labels ...string) FilterCategory {
	cat := FilterCategory{Name: name, Options: make([]FilterOption, 0, len(labels))}
	for _, label := range labels {
		cat.Options = append(cat.Options, FilterOption{Label: label, Value: FilterValue(label)})
	}
	return cat
}

// DefaultFilterCategories is the built-in vocabulary used when the dish
// server provides none.
func DefaultFilterCategories() []FilterCategory {
	return []FilterCategory{
		NewFilterCategory("Dietary",
			"Vegan", "Vegetarian", "Pescatarian", "Gluten Free", "Dairy Free",
			"Nut Free", "Egg Free", "Soy Free", "Halal", "Kosher"),
		NewFilterCategory("Macronutrients",
			"High Protein", "High Carbs", "Low Carbs", "Low Fat", "High Fiber", "Keto", "Paleo"),
		NewFilterCategory("Meal Type",
			"Breakfast", "Lunch", "Dinner", "Snack", "Dessert", "Drink"),
		NewFilterCategory("Cuisine",
			"Italian", "Mexican", "Indian", "Chinese", "Japanese", "Thai",
			"French", "American", "Mediterranean", "Middle Eastern"),
	}
}

// FilterTag is a server-side stored filter option.
type FilterTag struct {
	Value    string `gorm:"primaryKey;size:100" json:"value"`
	Label    string `gorm:"size:100" json:"label"`
	Category string `gorm:"size:100;index" json:"category"`
	Position int    `gorm:"default:0" json:"position"`
}

// TableName specifies the table name for GORM.
func (FilterTag) TableName() string {
	return "filter_tags"
}

// GroupFilterTags groups stored tags by category, keeping the order in
// which categories first appear.
func GroupFilterTags(tags []FilterTag) []FilterCategory {
	var out []FilterCategory
	index := make(map[string]int)
	for _, t := range tags {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, FilterCategory{Name: t.Category})
		}
		value := t.Value
		if value == "" {
			value = FilterValue(t.Label)
		}
		out[i].Options = append(out[i].Options, FilterOption{Label: t.Label, Value: value})
	}
	return out
}

// FlattenFilterCategories is the inverse of GroupFilterTags.
func FlattenFilterCategories(cats []FilterCategory) []FilterTag {
	var out []FilterTag
	for _, c := range cats {
		for i, o := range c.Options {
			out = append(out, FilterTag{Value: o.Value, Label: o.Label, Category: c.Name, Position: i})
		}
	}
	return out
}
