package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/hash"
	"github.com/charmbracelet/glamour"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	renderCacheSize = 64
	renderCacheTTL  = 10 * time.Minute
)

// MarkdownRenderer renders recipe markdown with Glamour. Renderers are
// built once per wrap width and rendered output is cached by content.
type MarkdownRenderer struct {
	renderers map[int]*glamour.TermRenderer
	cache     *expirable.LRU[string, []string]
}

// NewMarkdownRenderer creates a renderer with an empty cache.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     expirable.NewLRU[string, []string](renderCacheSize, nil, renderCacheTTL),
	}
}

// Render returns content rendered for width columns, split into lines.
// On renderer failure the raw markdown lines are returned.
func (r *MarkdownRenderer) Render(content string, width int) []string {
	if content == "" {
		return []string{}
	}
	width = max(20, width)

	key := hash.TruncatedSHA256(fmt.Sprintf("%d:%s", width, content))
	if lines, ok := r.cache.Get(key); ok {
		return lines
	}

	renderer, err := r.renderer(width)
	if err != nil {
		return strings.Split(content, "\n")
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return strings.Split(content, "\n")
	}

	lines := strings.Split(rendered, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	r.cache.Add(key, lines)
	return lines
}

// Cached reports how many rendered documents are held.
func (r *MarkdownRenderer) Cached() int {
	return r.cache.Len()
}

func (r *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}
