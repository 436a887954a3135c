package deck

import (
	"math"
	"time"

	"github.com/asteroid-belt/dishdeck/internal/anim"
	"github.com/asteroid-belt/dishdeck/internal/config"
)

// Layout is the screen size in px-equivalent units.
type Layout struct {
	Width  float64
	Height float64
}

// Indicator is the swipe badge shown over the card.
type Indicator int

const (
	NoIndicator Indicator = iota
	NopeIndicator
	LikeIndicator
)

func indicatorFor(d Direction) Indicator {
	if d == Right {
		return LikeIndicator
	}
	return NopeIndicator
}

// DetailState tracks the expand-to-detail lifecycle.
type DetailState int

const (
	DetailClosed DetailState = iota
	DetailExpanding
	DetailOpen
	DetailCollapsing
)

// Animator drives the card translation, the back-card scale and the
// expand/collapse of the card into the detail view.
type Animator struct {
	cfg    config.DeckConfig
	layout Layout

	x      *anim.Value
	width  *anim.Value
	height *anim.Value

	detail DetailState

	committing bool
	commitDir  Direction

	badge      Indicator
	badgeUntil time.Time
}

// NewAnimator creates an animator at rest.
func NewAnimator(cfg config.DeckConfig, layout Layout) *Animator {
	a := &Animator{cfg: cfg, layout: layout, x: anim.NewValue(0)}
	w, h := a.cardSize()
	a.width = anim.NewValue(w)
	a.height = anim.NewValue(h)
	return a
}

func (a *Animator) cardSize() (float64, float64) {
	return a.layout.Width * a.cfg.CardWidthRatio, a.layout.Height * a.cfg.CardHeightRatio
}

// Resize updates the layout. Values at rest snap to the new size.
func (a *Animator) Resize(layout Layout) {
	a.layout = layout
	if a.width.Animating() || a.height.Animating() {
		return
	}
	w, h := a.cardSize()
	if a.detail == DetailOpen {
		w, h = layout.Width, layout.Height
	}
	a.width.Set(w)
	a.height.Set(h)
}

// Layout returns the current layout.
func (a *Animator) Layout() Layout {
	return a.layout
}

// Committing reports whether a commit exit animation is in flight.
func (a *Animator) Committing() (Direction, bool) {
	return a.commitDir, a.committing
}

// Detail returns the detail lifecycle state.
func (a *Animator) Detail() DetailState {
	return a.detail
}

// TakeOver hands the card to a new drag. Any spring-back stops where it
// is. An in-flight commit is reported so the caller can finish it first.
func (a *Animator) TakeOver(now time.Time) (pending Direction, wasCommitting bool) {
	if a.committing {
		dir := a.commitDir
		a.committing = false
		a.x.Set(0)
		return dir, true
	}
	if a.x.Animating() {
		a.x.Stop(now)
	}
	return Left, false
}

// DragTo makes the card translation follow dx 1:1.
func (a *Animator) DragTo(dx float64) {
	a.x.Set(dx)
}

// Commit animates the card off screen toward dir.
func (a *Animator) Commit(dir Direction, now time.Time) {
	a.committing = true
	a.commitDir = dir
	a.x.Animate(anim.Timing{
		From:     a.x.Get(now),
		To:       dir.sign() * a.layout.Width,
		Duration: a.cfg.ExitDuration,
		Ease:     anim.Linear,
	}, now)
}

// SpringBack settles the card back to the center.
func (a *Animator) SpringBack(now time.Time, velocity float64) {
	a.x.Animate(anim.NewSpring(a.x.Get(now), 0, velocity), now)
}

// Expand grows the card to the full screen.
func (a *Animator) Expand(now time.Time) {
	a.detail = DetailExpanding
	a.animateSize(a.layout.Width, a.layout.Height, a.cfg.ExpandDuration, now)
}

// Collapse shrinks the card back to its resting size. The detail view
// is removed once the animation completes.
func (a *Animator) Collapse(now time.Time) {
	if a.detail == DetailClosed || a.detail == DetailCollapsing {
		return
	}
	a.detail = DetailCollapsing
	w, h := a.cardSize()
	a.animateSize(w, h, a.cfg.CollapseDuration, now)
}

func (a *Animator) animateSize(w, h float64, d time.Duration, now time.Time) {
	a.width.Animate(anim.Timing{From: a.width.Get(now), To: w, Duration: d, Ease: anim.EaseOutQuint}, now)
	a.height.Animate(anim.Timing{From: a.height.Get(now), To: h, Duration: d, Ease: anim.EaseOutQuint}, now)
}

// ShowCommitted keeps the badge for dir visible until now plus the
// indicator clear delay.
func (a *Animator) ShowCommitted(dir Direction, now time.Time) {
	a.badge = indicatorFor(dir)
	a.badgeUntil = now.Add(a.cfg.IndicatorClearDelay)
}

// Reset returns everything to rest.
func (a *Animator) Reset() {
	a.committing = false
	a.x.Set(0)
	a.badge = NoIndicator
	a.detail = DetailClosed
	w, h := a.cardSize()
	a.width.Set(w)
	a.height.Set(h)
}

// Step is the outcome of advancing the animator to a point in time.
type Step struct {
	Committed    bool
	CommitDir    Direction
	Settled      bool // spring-back finished
	DetailOpened bool
	DetailClosed bool
}

// Tick completes animations that have finished by now.
func (a *Animator) Tick(now time.Time) Step {
	var s Step

	if a.x.Settle(now) {
		if a.committing {
			a.committing = false
			a.x.Set(0)
			s.Committed = true
			s.CommitDir = a.commitDir
		} else {
			s.Settled = true
		}
	}

	wDone := a.width.Settle(now)
	hDone := a.height.Settle(now)
	if (wDone || hDone) && !a.width.Animating() && !a.height.Animating() {
		switch a.detail {
		case DetailExpanding:
			a.detail = DetailOpen
			s.DetailOpened = true
		case DetailCollapsing:
			a.detail = DetailClosed
			s.DetailClosed = true
		}
	}

	if a.badge != NoIndicator && !now.Before(a.badgeUntil) {
		a.badge = NoIndicator
	}
	return s
}

// Animating reports whether any value is moving.
func (a *Animator) Animating() bool {
	return a.x.Animating() || a.width.Animating() || a.height.Animating()
}

// Frame is the visual state at one instant.
type Frame struct {
	TranslateX float64
	BackScale  float64
	CardWidth  float64
	CardHeight float64
	Indicator  Indicator
	Detail     DetailState
	// DetailReadable is true once the card is large enough to hold the
	// detail content.
	DetailReadable bool
}

// Frame computes the visual state at now.
func (a *Animator) Frame(now time.Time) Frame {
	x := a.x.Get(now)
	w := a.width.Get(now)
	h := a.height.Get(now)

	f := Frame{
		TranslateX: x,
		BackScale:  BackScale(x, a.layout.Width, a.cfg.RestingBackScale),
		CardWidth:  w,
		CardHeight: h,
		Indicator:  IndicatorFor(x, a.cfg.IndicatorThreshold, a.badge),
		Detail:     a.detail,
	}
	if a.detail != DetailClosed {
		f.DetailReadable = a.expandProgress(w, h) >= a.cfg.DetailRevealFraction
	}
	return f
}

// expandProgress is how far the card is between resting and full screen,
// measured on the lagging axis.
func (a *Animator) expandProgress(w, h float64) float64 {
	cw, ch := a.cardSize()
	pw := progress(w, cw, a.layout.Width)
	ph := progress(h, ch, a.layout.Height)
	return math.Min(pw, ph)
}

func progress(v, from, to float64) float64 {
	if to == from {
		return 1
	}
	return clamp((v-from)/(to-from), 0, 1)
}

// BackScale is the scale of the card behind the current one for a
// translation x on a screen of the given width.
func BackScale(x, screenWidth, resting float64) float64 {
	if screenWidth <= 0 {
		return resting
	}
	return clamp(resting+(1-resting)*math.Abs(x)/screenWidth, resting, 1)
}

// IndicatorFor derives the badge from the live offset, falling back to the
// badge of a just-committed swipe.
func IndicatorFor(x, threshold float64, committed Indicator) Indicator {
	switch {
	case x > threshold:
		return LikeIndicator
	case x < -threshold:
		return NopeIndicator
	default:
		return committed
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
