package deck

import (
	"context"
	"sync"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Saver persists a private dish unless one with the same id exists.
type Saver interface {
	AddIfAbsent(ctx context.Context, dish models.Dish) (added bool, err error)
}

// SaveObserver is notified after every save attempt.
type SaveObserver func(dish models.Dish, added bool, err error)

// Dispatcher runs the side effects of committed swipes. A right swipe
// saves the dish to the local list in the background; failures are
// logged and dropped.
type Dispatcher struct {
	saver    Saver
	timeout  time.Duration
	observer SaveObserver
	now      func() time.Time

	wg sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSaveObserver registers a callback run after each save attempt.
func WithSaveObserver(fn SaveObserver) DispatcherOption {
	return func(d *Dispatcher) { d.observer = fn }
}

// WithClock overrides the time source used for created_at defaults.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a dispatcher writing through saver.
func NewDispatcher(saver Saver, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		saver:   saver,
		timeout: 10 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnSwipeRight saves dish in the private shape. It returns immediately.
func (d *Dispatcher) OnSwipeRight(dish models.Dish) {
	if d == nil || d.saver == nil {
		return
	}
	private := dish.ToPrivate(d.now())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		added, err := d.saver.AddIfAbsent(ctx, private)
		if err != nil {
			log.Printf("save liked dish %s: %v", private.ID, err)
		}
		if d.observer != nil {
			d.observer(private, added, err)
		}
	}()
}

// OnSwipeLeft has no side effect beyond advancing the deck.
func (d *Dispatcher) OnSwipeLeft(models.Dish) {}

// Wait blocks until all pending saves have finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
