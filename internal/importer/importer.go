// Package importer turns recipe web pages and files into dishes.
//
// Pages are read in order of reliability: schema.org Recipe JSON-LD,
// markdown with frontmatter, and finally an LLM extraction when a
// provider is configured.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// ErrNoRecipe is returned when no recipe could be found in the input.
var ErrNoRecipe = errors.New("no recipe found")

const (
	maxPageBytes = 4 << 20
	userAgent    = "dishdeck-importer/1.0"
)

// Importer fetches pages and extracts recipes.
type Importer struct {
	client    *http.Client
	markdown  *MarkdownParser
	extractor *LLMExtractor
}

// Option configures an Importer.
type Option func(*Importer)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Importer) { i.client = c }
}

// WithExtractor enables LLM extraction for pages without structured data.
func WithExtractor(e *LLMExtractor) Option {
	return func(i *Importer) { i.extractor = e }
}

// New creates an importer.
func New(opts ...Option) *Importer {
	i := &Importer{
		client:   &http.Client{Timeout: 20 * time.Second},
		markdown: NewMarkdownParser(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import fetches rawURL and extracts the recipe it holds. The returned
// dish has no id or privacy; callers decide where it is stored.
func (i *Importer) Import(ctx context.Context, rawURL string) (*models.Dish, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid recipe url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,text/markdown;q=0.9,*/*;q=0.8")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}

	ctype := resp.Header.Get("Content-Type")
	var dish *models.Dish
	switch {
	case isMarkdown(u.Path, ctype):
		dish, err = i.markdown.Parse(body)
	case strings.Contains(ctype, "json"):
		dish, err = parseJSONDish(body)
	default:
		dish, err = i.fromHTML(ctx, body)
	}
	if err != nil {
		return nil, err
	}

	if dish.OriginalURL == "" {
		dish.OriginalURL = u.String()
	}
	if dish.Image != "" {
		dish.Image = resolveRef(u, dish.Image)
	}
	return dish, nil
}

// ImportFile reads a local recipe: markdown, JSON or a saved HTML page.
func (i *Importer) ImportFile(ctx context.Context, path string) (*models.Dish, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return i.markdown.Parse(data)
	case ".json":
		return parseJSONDish(data)
	case ".html", ".htm":
		return i.fromHTML(ctx, data)
	default:
		return nil, fmt.Errorf("unsupported recipe file type %q", filepath.Ext(path))
	}
}

func (i *Importer) fromHTML(ctx context.Context, page []byte) (*models.Dish, error) {
	scripts, text := scanHTML(page)
	if dish, ok := findRecipeJSONLD(scripts); ok {
		return dish, nil
	}
	if i.extractor == nil {
		return nil, ErrNoRecipe
	}
	return i.extractor.Extract(ctx, text)
}

func parseJSONDish(data []byte) (*models.Dish, error) {
	var dish models.Dish
	if err := json.Unmarshal(data, &dish); err != nil {
		return nil, fmt.Errorf("decode recipe json: %w", err)
	}
	if strings.TrimSpace(dish.Title) == "" && len(dish.Ingredients) == 0 {
		return nil, ErrNoRecipe
	}
	return &dish, nil
}

func isMarkdown(path, ctype string) bool {
	if strings.Contains(ctype, "markdown") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// resolveRef makes relative image references absolute against the page.
func resolveRef(base *url.URL, ref string) string {
	if strings.HasPrefix(ref, "asset:") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}
