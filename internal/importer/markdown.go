package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionDirections
	sectionNotes
)

// MarkdownParser reads recipes written as markdown with YAML frontmatter:
//
//	---
//	title: Shakshuka
//	tags: [breakfast, vegetarian]
//	rating: 8
//	---
//	## Ingredients
//	- 4 eggs
//	## Directions
//	1. Simmer the sauce
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser creates a parser with frontmatter support.
func NewMarkdownParser() *MarkdownParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
	)
	return &MarkdownParser{md: md}
}

// Parse extracts a dish from markdown content.
func (p *MarkdownParser) Parse(content []byte) (*models.Dish, error) {
	ctx := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(ctx))

	frontmatter, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	dish := &models.Dish{}
	applyFrontmatter(dish, frontmatter)

	current := sectionNone
	var notes []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := nodeText(node, content)
			if node.Level == 1 && dish.Title == "" {
				dish.Title = heading
				current = sectionNone
				continue
			}
			current = classifyHeading(heading)

		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				line := nodeText(item, content)
				if line == "" {
					continue
				}
				switch current {
				case sectionIngredients:
					dish.Ingredients = append(dish.Ingredients, models.ParseIngredientLine(line))
				case sectionDirections:
					dish.Directions = append(dish.Directions, line)
				case sectionNotes:
					notes = append(notes, "- "+line)
				}
			}

		default:
			body := nodeText(n, content)
			if body == "" {
				continue
			}
			switch current {
			case sectionDirections:
				dish.Directions = append(dish.Directions, body)
			case sectionNotes, sectionNone:
				notes = append(notes, body)
			}
		}
	}
	if dish.Notes == "" {
		dish.Notes = strings.Join(notes, "\n\n")
	}

	if dish.Title == "" && len(dish.Ingredients) == 0 && len(dish.Directions) == 0 {
		return nil, ErrNoRecipe
	}
	return dish, nil
}

func classifyHeading(heading string) section {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "ingredient"):
		return sectionIngredients
	case strings.Contains(h, "direction"), strings.Contains(h, "instruction"),
		strings.Contains(h, "method"), strings.Contains(h, "step"):
		return sectionDirections
	case strings.Contains(h, "note"):
		return sectionNotes
	}
	return sectionNone
}

// nodeText joins the source lines of n or of its block descendants.
// Inline nodes carry no lines and are never visited.
func nodeText(n ast.Node, src []byte) string {
	if n.Type() != ast.TypeBlock && n.Type() != ast.TypeDocument {
		return ""
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if s := strings.TrimSpace(string(seg.Value(src))); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := nodeText(c, src); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func applyFrontmatter(dish *models.Dish, fm map[string]interface{}) {
	if len(fm) == 0 {
		return
	}
	if v, ok := fm["title"].(string); ok {
		dish.Title = strings.TrimSpace(v)
	} else if v, ok := fm["name"].(string); ok {
		dish.Title = strings.TrimSpace(v)
	}
	if v, ok := fm["image"].(string); ok {
		dish.Image = strings.TrimSpace(v)
	}
	if v, ok := fm["notes"].(string); ok {
		dish.Notes = strings.TrimSpace(v)
	}
	for _, key := range []string{"source", "original_url", "url"} {
		if v, ok := fm[key].(string); ok && v != "" {
			dish.OriginalURL = strings.TrimSpace(v)
			break
		}
	}
	dish.Tags = models.NormalizeTags(frontmatterStrings(fm["tags"]))
	if r, ok := frontmatterNumber(fm["rating"]); ok {
		dish.Rating = models.ValidRating(r)
	}
}

// goldmark-meta decodes YAML lists as []interface{}; a plain string is
// treated as a comma-separated list.
func frontmatterStrings(v interface{}) []string {
	switch t := v.(type) {
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			out = append(out, strings.TrimSpace(part))
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, strings.TrimSpace(fmt.Sprint(item)))
		}
		return out
	}
	return nil
}

func frontmatterNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
