// Package server implements the dish server: the public dish collection
// served over HTTP with an image thumbnail proxy and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/validation"
)

const maxRequestBytes = 1 << 20

// Options configures a Server.
type Options struct {
	AllowedOrigins    []string
	RequestsPerSecond float64
	Now               func() time.Time
}

// Server serves the dish collection.
type Server struct {
	repo     Repository
	images   *ImageProxy
	validate *validation.Validator
	limiter  *rate.Limiter
	now      func() time.Time
	handler  http.Handler
}

// New builds a server over repo.
func New(repo Repository, opts Options) *Server {
	s := &Server{
		repo:     repo,
		images:   NewImageProxy(256, time.Hour),
		validate: validation.New(),
		now:      opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond * 2)
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(burst, 1))
	}

	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/dishes", s.handleListDishes).Methods(http.MethodGet)
	r.HandleFunc("/dishes", s.handleCreateDish).Methods(http.MethodPost)
	r.HandleFunc("/dish", s.handleGetDish).Methods(http.MethodGet)
	r.HandleFunc("/dish", s.handleDeleteDish).Methods(http.MethodDelete)
	r.HandleFunc("/dish/like", s.handleLikeDish).Methods(http.MethodPost)
	r.HandleFunc("/filters", s.handleFilters).Methods(http.MethodGet)
	r.HandleFunc("/image", s.handleImage).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	s.handler = c.Handler(s.rateLimit(requestSizeLimit(r)))
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dish server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			rateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestSizeLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDishes(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	dishes, err := s.repo.List(r.Context(), tags)
	if err != nil {
		log.Errorf("list dishes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list dishes")
		return
	}
	if dishes == nil {
		dishes = []models.Dish{}
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (s *Server) handleGetDish(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing 'id' query parameter")
		return
	}

	dish, err := s.repo.Get(r.Context(), id)
	if err != nil {
		log.Errorf("get dish %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve dish")
		return
	}
	if dish == nil {
		writeError(w, http.StatusNotFound, "no matching dish found")
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (s *Server) handleCreateDish(w http.ResponseWriter, r *http.Request) {
	var req CreateDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": validation.FieldErrors(err)})
		return
	}

	dish := req.Dish()
	dish.ID = uuid.New().String()
	dish.Privacy = models.PrivacyPublic
	dish.Likes = 0
	dish.CreatedAt = s.now().UTC()

	if err := s.repo.Create(r.Context(), &dish); err != nil {
		log.Errorf("create dish: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create dish")
		return
	}
	dishesCreated.Inc()
	writeJSON(w, http.StatusCreated, dish)
}

func (s *Server) handleDeleteDish(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing 'id' query parameter")
		return
	}

	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "no matching dish found")
			return
		}
		log.Errorf("delete dish %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete dish")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLikeDish(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing 'id' query parameter")
		return
	}

	likes, err := s.repo.Like(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "no matching dish found")
			return
		}
		log.Errorf("like dish %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to like dish")
		return
	}
	dishesLiked.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "likes": likes})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	cats, err := s.repo.Filters(r.Context())
	if err != nil {
		log.Errorf("list filters: %v", err)
		cats = models.DefaultFilterCategories()
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		writeError(w, http.StatusBadRequest, "url parameter is required")
		return
	}
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		writeError(w, http.StatusBadRequest, "url must be http or https")
		return
	}

	data, ctype, err := s.images.Thumbnail(r.Context(), imageURL)
	if err != nil {
		log.Printf("image proxy %s: %v", imageURL, err)
		writeError(w, http.StatusBadGateway, "failed to fetch image")
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
