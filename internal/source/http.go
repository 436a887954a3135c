package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// maxBody caps response bodies read from the dish server.
const maxBody = 8 << 20

// HTTPSource talks to the dish server.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	// Tags restricts FetchAll to dishes carrying all of them.
	Tags []string
}

// NewHTTPSource creates a client for the dish server at baseURL allowing
// requestsPerMinute requests.
func NewHTTPSource(baseURL string, timeout time.Duration, requestsPerMinute int) *HTTPSource {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

// BaseURL returns the server base URL.
func (s *HTTPSource) BaseURL() string {
	return s.baseURL
}

// FetchAll implements Source.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.Dish, error) {
	q := url.Values{}
	if len(s.Tags) > 0 {
		q.Set("tags", strings.Join(s.Tags, ","))
	}

	var dishes []models.Dish
	if err := s.getJSON(ctx, "/dishes", q, &dishes); err != nil {
		return nil, fmt.Errorf("fetch dishes: %w", err)
	}
	return dishes, nil
}

// FetchFilters returns the server's filter vocabulary, falling back to
// the built-in categories when the server has none or cannot be reached.
func (s *HTTPSource) FetchFilters(ctx context.Context) ([]models.FilterCategory, error) {
	var cats []models.FilterCategory
	if err := s.getJSON(ctx, "/filters", nil, &cats); err != nil {
		return models.DefaultFilterCategories(), fmt.Errorf("fetch filters: %w", err)
	}
	if len(cats) == 0 {
		return models.DefaultFilterCategories(), nil
	}
	return cats, nil
}

// Publish adds a public dish to the server and returns it as stored.
func (s *HTTPSource) Publish(ctx context.Context, dish models.Dish) (*models.Dish, error) {
	body, err := json.Marshal(dish)
	if err != nil {
		return nil, fmt.Errorf("encode dish: %w", err)
	}

	var created models.Dish
	if err := s.do(ctx, http.MethodPost, "/dishes", nil, bytes.NewReader(body), &created); err != nil {
		return nil, fmt.Errorf("publish dish: %w", err)
	}
	return &created, nil
}

// Like increments a public dish's like counter.
func (s *HTTPSource) Like(ctx context.Context, id string) error {
	if err := s.do(ctx, http.MethodPost, "/dish/like", url.Values{"id": {id}}, nil, nil); err != nil {
		return fmt.Errorf("like dish %s: %w", id, err)
	}
	return nil
}

// Ping wakes the server up. Hosted servers may sleep when idle.
func (s *HTTPSource) Ping(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/", nil, nil, nil)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	return s.do(ctx, http.MethodGet, path, q, nil, out)
}

func (s *HTTPSource) do(ctx context.Context, method, path string, q url.Values, body io.Reader, out any) error {
	// Wait for rate limiter
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := s.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
