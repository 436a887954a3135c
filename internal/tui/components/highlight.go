package components

import (
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// Highlight is a byte range of matched text.
type Highlight struct {
	Start int
	End   int
}

// HighlightStyles holds the styles for rendering matches.
type HighlightStyles struct {
	Normal    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultHighlightStyles returns the default match styles.
func DefaultHighlightStyles() HighlightStyles {
	return HighlightStyles{
		Normal: lipgloss.NewStyle().
			Foreground(theme.Current.Text).
			Bold(true),
		Highlight: lipgloss.NewStyle().
			Foreground(theme.Current.Accent).
			Bold(true).
			Underline(true),
	}
}

// FindMatches returns the non-overlapping case-insensitive occurrences of
// query in text.
func FindMatches(text, query string) []Highlight {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return nil
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// Case folding changed byte lengths; offsets would not line up.
	if len(lowerText) != len(text) {
		return nil
	}

	var out []Highlight
	for from := 0; from < len(lowerText); {
		i := strings.Index(lowerText[from:], lowerQuery)
		if i < 0 {
			break
		}
		start := from + i
		out = append(out, Highlight{Start: start, End: start + len(lowerQuery)})
		from = start + len(lowerQuery)
	}
	return out
}

// RenderHighlighted renders text with the matches of query emphasized.
func RenderHighlighted(text, query string, styles HighlightStyles) string {
	return RenderHighlights(text, FindMatches(text, query), styles)
}

// RenderHighlights renders text with the given ranges emphasized.
func RenderHighlights(text string, highlights []Highlight, styles HighlightStyles) string {
	if text == "" {
		return ""
	}
	if len(highlights) == 0 {
		return styles.Normal.Render(text)
	}

	var result strings.Builder

	lastEnd := 0
	for _, h := range highlights {
		start := max(h.Start, lastEnd)
		end := min(h.End, len(text))
		if start >= end {
			continue
		}

		if start > lastEnd {
			result.WriteString(styles.Normal.Render(text[lastEnd:start]))
		}
		result.WriteString(styles.Highlight.Render(text[start:end]))
		lastEnd = end
	}

	if lastEnd < len(text) {
		result.WriteString(styles.Normal.Render(text[lastEnd:]))
	}

	return result.String()
}
