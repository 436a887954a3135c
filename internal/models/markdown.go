package models

import (
	"fmt"
	"strings"
)

// Markdown renders the dish as a markdown document for the detail view
// and MCP resources.
func (d *Dish) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.DisplayTitle())
	fmt.Fprintf(&b, "**Rating:** %s", d.RatingLabel())
	if d.Likes > 0 {
		fmt.Fprintf(&b, " · **Likes:** %d", d.Likes)
	}
	b.WriteString("\n\n")

	if len(d.Tags) > 0 {
		tags := make([]string, len(d.Tags))
		for i, t := range d.Tags {
			tags[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n\n")
	}

	b.WriteString("## Ingredients\n\n")
	if len(d.Ingredients) == 0 {
		b.WriteString("_No ingredients listed._\n")
	}
	for _, ing := range d.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing.String())
	}

	b.WriteString("\n## Directions\n\n")
	if len(d.Directions) == 0 {
		b.WriteString("_No directions listed._\n")
	}
	for i, step := range d.Directions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	if notes := strings.TrimSpace(d.Notes); notes != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", notes)
	}
	if d.OriginalURL != "" {
		fmt.Fprintf(&b, "\n[Original recipe](%s)\n", d.OriginalURL)
	}

	return b.String()
}

// IngredientsText renders the ingredient list one per line, suitable for
// copying to the clipboard.
func (d *Dish) IngredientsText() string {
	return strings.Join(d.Ingredients.Strings(), "\n")
}
