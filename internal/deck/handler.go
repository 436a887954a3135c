package deck

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Phase of the deck as seen by the UI.
type Phase int

const (
	Loading Phase = iota
	HasCurrent
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case HasCurrent:
		return "has_current"
	default:
		return "exhausted"
	}
}

// Fetcher supplies a fresh deck.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Dish, error)
}

// RefreshResult describes a completed refresh.
type RefreshResult struct {
	Count  int
	Err    error // fetch error; the deck was loaded empty
	Shared bool  // joined a refresh already in flight
}

// Handler owns deck refreshes. Concurrent refreshes join the one in
// flight so only one fetch ever calls Load.
type Handler struct {
	store   *Store
	fetcher Fetcher

	group    singleflight.Group
	inFlight atomic.Bool
	loaded   atomic.Bool
}

// NewHandler creates a handler loading store from fetcher.
func NewHandler(store *Store, fetcher Fetcher) *Handler {
	return &Handler{store: store, fetcher: fetcher}
}

// Phase derives the current phase from the store and the in-flight flag.
func (h *Handler) Phase() Phase {
	if h.inFlight.Load() || !h.loaded.Load() {
		return Loading
	}
	if h.store.Current() != nil {
		return HasCurrent
	}
	return Exhausted
}

// InFlight reports whether a fetch is running.
func (h *Handler) InFlight() bool {
	return h.inFlight.Load()
}

// Refresh fetches the deck and loads it, resetting the cursor. A fetch
// error loads an empty deck.
func (h *Handler) Refresh(ctx context.Context) RefreshResult {
	v, _, shared := h.group.Do("refresh", func() (any, error) {
		h.inFlight.Store(true)
		defer h.inFlight.Store(false)

		dishes, err := h.fetcher.FetchAll(ctx)
		if err != nil {
			log.Printf("fetch deck: %v", err)
			dishes = nil
		}
		h.store.Load(dishes)
		h.loaded.Store(true)
		return RefreshResult{Count: len(dishes), Err: err}, nil
	})

	res := v.(RefreshResult)
	res.Shared = shared
	return res
}
