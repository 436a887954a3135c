// Package deck implements the swipe-deck interaction engine: the deck
// store, the card animator, the swipe side effects and the exhaustion and
// refresh handling.
package deck

import (
	"sync"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Direction of a committed swipe.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// sign returns -1 for Left and 1 for Right.
func (d Direction) sign() float64 {
	if d == Right {
		return 1
	}
	return -1
}

// Store holds the fetched dishes and the cursor. Reads past either end
// return nil; nothing here fails.
type Store struct {
	mu     sync.RWMutex
	dishes []models.Dish
	cursor int
	gen    uint64
}

// NewStore creates an empty, exhausted store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the deck and resets the cursor to 0.
func (s *Store) Load(dishes []models.Dish) {
	cp := make([]models.Dish, len(dishes))
	copy(cp, dishes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dishes = cp
	s.cursor = 0
	s.gen++
}

// Generation counts Load calls. A gesture that began under one
// generation must not act on a deck loaded later.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Current returns the dish at the cursor, or nil when exhausted.
func (s *Store) Current() *models.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.at(s.cursor)
}

// PeekNext returns the dish that becomes current after one more advance.
// The deck only moves forward, so both directions peek the same dish.
func (s *Store) PeekNext(_ Direction) *models.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.at(s.cursor + 1)
}

// Advance moves the cursor forward by one, stopping at Len.
func (s *Store) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.dishes) {
		s.cursor++
	}
}

// Cursor returns the zero-based cursor.
func (s *Store) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Len returns the number of dishes in the deck.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dishes)
}

// Exhausted reports whether no current dish exists.
func (s *Store) Exhausted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor >= len(s.dishes)
}

func (s *Store) at(i int) *models.Dish {
	if i < 0 || i >= len(s.dishes) {
		return nil
	}
	d := s.dishes[i]
	return &d
}
