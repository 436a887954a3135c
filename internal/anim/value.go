package anim

import "time"

// Value is an animated scalar. It holds either a resting value or one
// running animation; starting a new animation stops the previous one.
type Value struct {
	rest    float64
	running Animation
	start   time.Time
}

// NewValue returns a value resting at v.
func NewValue(v float64) *Value {
	return &Value{rest: v}
}

// Get returns the value at now.
func (v *Value) Get(now time.Time) float64 {
	if v.running == nil {
		return v.rest
	}
	x, _ := v.running.At(now.Sub(v.start))
	return x
}

// Set stops any running animation and rests the value at x.
func (v *Value) Set(x float64) {
	v.running = nil
	v.rest = x
}

// Animate starts a, stopping any predecessor.
func (v *Value) Animate(a Animation, now time.Time) {
	v.running = a
	v.start = now
}

// Stop freezes the value where it is at now and returns it.
func (v *Value) Stop(now time.Time) float64 {
	x := v.Get(now)
	v.Set(x)
	return x
}

// Animating reports whether an animation is running.
func (v *Value) Animating() bool {
	return v.running != nil
}

// Settle finishes a running animation that has completed by now. It
// returns true exactly once per completed animation.
func (v *Value) Settle(now time.Time) bool {
	if v.running == nil {
		return false
	}
	x, done := v.running.At(now.Sub(v.start))
	if !done {
		return false
	}
	v.running = nil
	v.rest = x
	return true
}
