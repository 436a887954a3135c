package deck

import (
	"context"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/gesture"
	"github.com/asteroid-belt/dishdeck/internal/models"
)

// EventKind identifies an engine event.
type EventKind int

const (
	EventSwiped EventKind = iota
	EventCancelled
	EventDetailOpening
	EventDetailOpened
	EventDetailClosing
	EventDetailClosed
	EventExhausted
)

// Event reports a state change produced by input or time.
type Event struct {
	Kind      EventKind
	Direction Direction
	Dish      models.Dish
}

// Engine routes pointer input through the gesture tracker to the
// animator, the store and the dispatcher.
type Engine struct {
	cfg        config.DeckConfig
	store      *Store
	tracker    *gesture.Tracker
	animator   *Animator
	dispatcher *Dispatcher
	handler    *Handler

	detailDish *models.Dish

	// trackGen is the store generation the current gesture began under.
	trackGen uint64
	// pending is the dish a running exit animation will commit, captured
	// at release so a refresh mid-animation cannot change the target.
	pending    *models.Dish
	pendingGen uint64
}

// NewEngine wires an engine with its own store. fetcher supplies decks on
// refresh; dispatcher runs the swipe side effects.
func NewEngine(cfg config.DeckConfig, layout Layout, fetcher Fetcher, dispatcher *Dispatcher) *Engine {
	store := NewStore()
	return &Engine{
		cfg:   cfg,
		store: store,
		tracker: gesture.NewTracker(gesture.Thresholds{
			Tap:   cfg.TapThreshold,
			Swipe: cfg.SwipeThreshold,
		}),
		animator:   NewAnimator(cfg, layout),
		dispatcher: dispatcher,
		handler:    NewHandler(store, fetcher),
	}
}

// Store returns the deck store.
func (e *Engine) Store() *Store { return e.store }

// Dispatcher returns the side-effect dispatcher.
func (e *Engine) Dispatcher() *Dispatcher { return e.dispatcher }

// Phase returns the deck phase.
func (e *Engine) Phase() Phase { return e.handler.Phase() }

// Resize updates the screen layout.
func (e *Engine) Resize(layout Layout) { e.animator.Resize(layout) }

// Refresh re-fetches the deck. It is safe to call from a goroutine;
// callers must call Loaded on the UI loop once it returns.
func (e *Engine) Refresh(ctx context.Context) RefreshResult {
	return e.handler.Refresh(ctx)
}

// Loaded resets interaction state after the deck has been replaced. A
// swipe still animating out is committed first: its side effect runs for
// the dish that was swiped, but the new deck's cursor stays at 0.
func (e *Engine) Loaded(now time.Time) []Event {
	dir, committing := e.animator.Committing()
	e.tracker.Reset()
	e.animator.Reset()
	e.detailDish = nil
	if !committing {
		e.pending = nil
		return nil
	}
	return e.finishCommit(dir, now)
}

// DetailDish returns the dish shown in the detail view, if any.
func (e *Engine) DetailDish() *models.Dish {
	return e.detailDish
}

// PointerDown starts a gesture. It returns false when the touch is
// ignored: while loading, while exhausted, or while the detail view is up.
func (e *Engine) PointerDown(p gesture.Point, now time.Time) (bool, []Event) {
	if e.animator.Detail() != DetailClosed {
		return false, nil
	}

	var events []Event
	if dir, ok := e.animator.TakeOver(now); ok {
		events = e.finishCommit(dir, now)
	}
	if e.Phase() != HasCurrent {
		return false, events
	}

	e.tracker.Begin(p, now)
	e.trackGen = e.store.Generation()
	return true, events
}

// PointerMove follows the drag.
func (e *Engine) PointerMove(p gesture.Point, now time.Time) {
	if off, ok := e.tracker.Move(p, now); ok {
		e.animator.DragTo(off.X)
	}
}

// PointerUp classifies the gesture and starts the matching animation.
func (e *Engine) PointerUp(p gesture.Point, now time.Time) (gesture.Kind, []Event) {
	kind, trace, ok := e.tracker.End(p, now)
	if !ok {
		return gesture.Cancel, nil
	}

	if e.store.Generation() != e.trackGen {
		e.animator.DragTo(0)
		return gesture.Cancel, nil
	}
	current := e.store.Current()
	if current == nil {
		e.animator.DragTo(0)
		return kind, nil
	}

	switch kind {
	case gesture.Tap:
		e.animator.DragTo(0)
		e.animator.Expand(now)
		e.detailDish = current
		return kind, []Event{{Kind: EventDetailOpening, Dish: *current}}
	case gesture.SwipeRight:
		e.beginCommit(current, Right, now)
	case gesture.SwipeLeft:
		e.beginCommit(current, Left, now)
	default:
		e.animator.SpringBack(now, trace.Velocity.X)
		return kind, []Event{{Kind: EventCancelled, Dish: *current}}
	}
	return kind, nil
}

// Swipe synthesizes a full drag toward dir, as if the pointer moved past
// the swipe threshold and was released.
func (e *Engine) Swipe(dir Direction, now time.Time) (gesture.Kind, []Event) {
	l := e.animator.Layout()
	start := gesture.Point{X: l.Width / 2, Y: l.Height / 2}
	end := gesture.Point{X: start.X + dir.sign()*(e.cfg.SwipeThreshold+1), Y: start.Y}

	ok, events := e.PointerDown(start, now)
	if !ok {
		return gesture.Cancel, events
	}
	e.PointerMove(end, now)
	kind, more := e.PointerUp(end, now)
	return kind, append(events, more...)
}

// Tap synthesizes a tap on the current card.
func (e *Engine) Tap(now time.Time) (gesture.Kind, []Event) {
	l := e.animator.Layout()
	p := gesture.Point{X: l.Width / 2, Y: l.Height / 2}

	ok, events := e.PointerDown(p, now)
	if !ok {
		return gesture.Cancel, events
	}
	kind, more := e.PointerUp(p, now)
	return kind, append(events, more...)
}

// CloseDetail collapses the detail view back into the card.
func (e *Engine) CloseDetail(now time.Time) []Event {
	switch e.animator.Detail() {
	case DetailExpanding, DetailOpen:
		e.animator.Collapse(now)
		var dish models.Dish
		if e.detailDish != nil {
			dish = *e.detailDish
		}
		return []Event{{Kind: EventDetailClosing, Dish: dish}}
	}
	return nil
}

// Tick advances time-driven state to now.
func (e *Engine) Tick(now time.Time) []Event {
	step := e.animator.Tick(now)

	var events []Event
	if step.Committed {
		events = append(events, e.finishCommit(step.CommitDir, now)...)
	}
	if step.DetailOpened && e.detailDish != nil {
		events = append(events, Event{Kind: EventDetailOpened, Dish: *e.detailDish})
	}
	if step.DetailClosed {
		var dish models.Dish
		if e.detailDish != nil {
			dish = *e.detailDish
		}
		e.detailDish = nil
		events = append(events, Event{Kind: EventDetailClosed, Dish: dish})
	}
	return events
}

// Animating reports whether the UI needs further ticks.
func (e *Engine) Animating() bool {
	return e.animator.Animating() || e.animator.badge != NoIndicator
}

func (e *Engine) beginCommit(dish *models.Dish, dir Direction, now time.Time) {
	e.pending = dish
	e.pendingGen = e.trackGen
	e.animator.Commit(dir, now)
}

// finishCommit runs the side effects for the dish captured at release and
// advances past it. The cursor only moves when the deck it was swiped
// from is still loaded.
func (e *Engine) finishCommit(dir Direction, now time.Time) []Event {
	dish := e.pending
	e.pending = nil
	if dish == nil {
		return nil
	}

	sameDeck := e.store.Generation() == e.pendingGen
	if sameDeck {
		e.store.Advance()
	}
	if dir == Right {
		e.dispatcher.OnSwipeRight(*dish)
	} else {
		e.dispatcher.OnSwipeLeft(*dish)
	}
	e.animator.ShowCommitted(dir, now)

	events := []Event{{Kind: EventSwiped, Direction: dir, Dish: *dish}}
	if sameDeck && e.store.Exhausted() {
		events = append(events, Event{Kind: EventExhausted})
	}
	return events
}

// View is everything the UI needs to draw the deck at one instant.
type View struct {
	Frame
	Phase   Phase
	Current *models.Dish
	Next    *models.Dish
	Cursor  int
	Total   int
}

// View computes the drawable state at now.
func (e *Engine) View(now time.Time) View {
	v := View{
		Frame:   e.animator.Frame(now),
		Phase:   e.Phase(),
		Current: e.store.Current(),
		Cursor:  e.store.Cursor(),
		Total:   e.store.Len(),
	}
	dir := Left
	if v.TranslateX > 0 {
		dir = Right
	}
	v.Next = e.store.PeekNext(dir)
	return v
}
