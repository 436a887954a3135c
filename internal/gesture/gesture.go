// Package gesture classifies pointer drags on a card into taps, swipes
// and cancels.
package gesture

import (
	"math"
	"time"
)

// Kind is the result of classifying a completed gesture.
type Kind int

const (
	Tap Kind = iota
	SwipeLeft
	SwipeRight
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Tap:
		return "tap"
	case SwipeLeft:
		return "swipe_left"
	case SwipeRight:
		return "swipe_right"
	default:
		return "cancel"
	}
}

// IsSwipe reports whether the gesture commits a deck move.
func (k Kind) IsSwipe() bool {
	return k == SwipeLeft || k == SwipeRight
}

// Thresholds are distances in px-equivalent units.
type Thresholds struct {
	Tap   float64
	Swipe float64
}

// DefaultThresholds returns the standard tap and swipe distances.
func DefaultThresholds() Thresholds {
	return Thresholds{Tap: 10, Swipe: 120}
}

// Point is a position or a vector in px-equivalent units.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Trace is the state of one interaction.
type Trace struct {
	Start    Point
	Offset   Point // live dx, dy from Start
	Velocity Point // px per second at release
}

// Classify maps a finished trace to a gesture. Tap wins whenever both
// deltas stay under the tap threshold, whatever the velocity.
func Classify(tr Trace, th Thresholds) Kind {
	dx, dy := tr.Offset.X, tr.Offset.Y
	switch {
	case math.Abs(dx) < th.Tap && math.Abs(dy) < th.Tap:
		return Tap
	case dx > th.Swipe:
		return SwipeRight
	case dx < -th.Swipe:
		return SwipeLeft
	default:
		return Cancel
	}
}

// State of a Tracker.
type State int

const (
	Idle State = iota
	Tracking
)

// Tracker accumulates pointer events of a single interaction and
// classifies them on release.
type Tracker struct {
	th    Thresholds
	state State
	trace Trace

	last     Point
	lastTime time.Time
}

// NewTracker creates an idle tracker.
func NewTracker(th Thresholds) *Tracker {
	return &Tracker{th: th}
}

// State returns the current tracker state.
func (t *Tracker) State() State {
	return t.state
}

// Offset returns the live drag offset, zero when idle.
func (t *Tracker) Offset() Point {
	if t.state != Tracking {
		return Point{}
	}
	return t.trace.Offset
}

// Begin starts tracking at p. A touch-start while already tracking
// restarts the interaction.
func (t *Tracker) Begin(p Point, at time.Time) {
	t.state = Tracking
	t.trace = Trace{Start: p}
	t.last = p
	t.lastTime = at
}

// Move records a pointer move and returns the live offset. Moves while
// idle are ignored.
func (t *Tracker) Move(p Point, at time.Time) (Point, bool) {
	if t.state != Tracking {
		return Point{}, false
	}
	t.record(p, at)
	return t.trace.Offset, true
}

// End releases the pointer at p, classifies the trace and returns to Idle.
// ok is false when no interaction was being tracked.
func (t *Tracker) End(p Point, at time.Time) (kind Kind, tr Trace, ok bool) {
	if t.state != Tracking {
		return Cancel, Trace{}, false
	}
	t.record(p, at)
	tr = t.trace
	t.Reset()
	return Classify(tr, t.th), tr, true
}

// Reset discards the current trace.
func (t *Tracker) Reset() {
	t.state = Idle
	t.trace = Trace{}
	t.last = Point{}
	t.lastTime = time.Time{}
}

func (t *Tracker) record(p Point, at time.Time) {
	if dt := at.Sub(t.lastTime).Seconds(); dt > 0 {
		d := p.Sub(t.last)
		t.trace.Velocity = Point{X: d.X / dt, Y: d.Y / dt}
	}
	t.trace.Offset = p.Sub(t.trace.Start)
	t.last = p
	t.lastTime = at
}
