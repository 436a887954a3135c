// Package anim provides time-based interpolations whose values are pure
// functions of elapsed time, and an animated value that owns at most one
// running animation.
package anim

import (
	"math"
	"time"
)

// Animation yields a value for a given elapsed time since it started.
// done is true once the animation has reached its final value.
type Animation interface {
	At(elapsed time.Duration) (value float64, done bool)
}

// Timing interpolates From to To over a fixed Duration.
type Timing struct {
	From, To float64
	Duration time.Duration
	Ease     Easing
}

// At implements Animation.
func (t Timing) At(elapsed time.Duration) (float64, bool) {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	p := float64(elapsed) / float64(t.Duration)
	return t.From + (t.To-t.From)*ease(p), false
}

// Spring settles From toward To like a damped harmonic oscillator. It has
// no fixed duration; it is done once both the displacement and the speed
// fall under their rest thresholds.
type Spring struct {
	From, To float64
	Velocity float64 // initial velocity, units per second

	Stiffness float64
	Damping   float64
	Mass      float64

	RestDelta float64
	RestSpeed float64
}

// NewSpring returns a spring with default constants.
func NewSpring(from, to, velocity float64) Spring {
	return Spring{
		From:      from,
		To:        to,
		Velocity:  velocity,
		Stiffness: 100,
		Damping:   10,
		Mass:      1,
		RestDelta: 0.1,
		RestSpeed: 0.1,
	}
}

// At implements Animation using the closed-form solution of the spring
// equation.
func (s Spring) At(elapsed time.Duration) (float64, bool) {
	if elapsed < 0 {
		elapsed = 0
	}
	x, v := s.state(elapsed.Seconds())
	if math.Abs(x) < s.RestDelta && math.Abs(v) < s.RestSpeed {
		return s.To, true
	}
	return s.To + x, false
}

// state returns displacement from To and velocity at time t.
func (s Spring) state(t float64) (x, v float64) {
	m := s.Mass
	if m <= 0 {
		m = 1
	}
	x0 := s.From - s.To
	v0 := s.Velocity
	w0 := math.Sqrt(s.Stiffness / m)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*m))

	switch {
	case w0 == 0:
		return x0 + v0*t, v0
	case zeta < 1:
		alpha := zeta * w0
		wd := w0 * math.Sqrt(1-zeta*zeta)
		a := x0
		b := (v0 + alpha*x0) / wd
		e := math.Exp(-alpha * t)
		cos, sin := math.Cos(wd*t), math.Sin(wd*t)
		x = e * (a*cos + b*sin)
		v = e * ((b*wd-alpha*a)*cos - (alpha*b+a*wd)*sin)
		return x, v
	case zeta == 1:
		c := v0 + w0*x0
		e := math.Exp(-w0 * t)
		x = (x0 + c*t) * e
		v = (c - w0*(x0+c*t)) * e
		return x, v
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		c2 := (v0 - r1*x0) / (r2 - r1)
		c1 := x0 - c2
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		x = c1*e1 + c2*e2
		v = r1*c1*e1 + r2*c2*e2
		return x, v
	}
}
