package anim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubicBezier(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		assert.Equal(t, 0.0, EaseOutQuint(0))
		assert.Equal(t, 1.0, EaseOutQuint(1))
		assert.Equal(t, 0.0, EaseOutQuint(-1))
		assert.Equal(t, 1.0, EaseOutQuint(2))
	})

	t.Run("linear control points", func(t *testing.T) {
		ease := CubicBezier(0.25, 0.25, 0.75, 0.75)
		for _, x := range []float64{0.1, 0.3, 0.5, 0.9} {
			assert.InDelta(t, x, ease(x), 1e-5)
		}
	})

	t.Run("ease out is monotonic and ahead of linear", func(t *testing.T) {
		prev := 0.0
		for i := 1; i < 100; i++ {
			x := float64(i) / 100
			y := EaseOutQuint(x)
			assert.GreaterOrEqual(t, y, prev)
			assert.Greater(t, y, x)
			prev = y
		}
	})
}

func TestTiming(t *testing.T) {
	tm := Timing{From: 0, To: 100, Duration: 200 * time.Millisecond}

	v, done := tm.At(0)
	assert.Equal(t, 0.0, v)
	assert.False(t, done)

	v, done = tm.At(100 * time.Millisecond)
	assert.InDelta(t, 50, v, 1e-9)
	assert.False(t, done)

	v, done = tm.At(200 * time.Millisecond)
	assert.Equal(t, 100.0, v)
	assert.True(t, done)

	v, done = tm.At(time.Hour)
	assert.Equal(t, 100.0, v)
	assert.True(t, done)
}

func TestSpring_SettlesAtTarget(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
	}{
		{"underdamped", 10},
		{"critically damped", 20},
		{"overdamped", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpring(50, 0, 0)
			s.Damping = tt.damping

			v, done := s.At(0)
			assert.InDelta(t, 50, v, 1e-9)
			assert.False(t, done)

			v, done = s.At(10 * time.Second)
			assert.Equal(t, 0.0, v)
			assert.True(t, done)
		})
	}
}

func TestSpring_Continuous(t *testing.T) {
	s := NewSpring(-80, 0, 300)
	prev, _ := s.At(0)
	for ms := 1; ms < 2000; ms++ {
		v, _ := s.At(time.Duration(ms) * time.Millisecond)
		assert.Less(t, math.Abs(v-prev), 5.0, "jump at %dms", ms)
		prev = v
	}
}

func TestValue_AnimateStopsPredecessor(t *testing.T) {
	now := time.Unix(100, 0)
	v := NewValue(0)

	v.Animate(Timing{From: 0, To: 100, Duration: time.Second}, now)
	assert.InDelta(t, 50, v.Get(now.Add(500*time.Millisecond)), 1e-9)

	v.Animate(Timing{From: 50, To: -50, Duration: time.Second}, now.Add(500*time.Millisecond))
	assert.InDelta(t, 50, v.Get(now.Add(500*time.Millisecond)), 1e-9)
	assert.InDelta(t, -50, v.Get(now.Add(2*time.Second)), 1e-9)
}

func TestValue_Settle(t *testing.T) {
	now := time.Unix(100, 0)
	v := NewValue(0)
	v.Animate(Timing{From: 0, To: 10, Duration: 100 * time.Millisecond}, now)

	assert.False(t, v.Settle(now.Add(50*time.Millisecond)))
	assert.True(t, v.Animating())

	require.True(t, v.Settle(now.Add(100*time.Millisecond)))
	assert.False(t, v.Animating())
	assert.Equal(t, 10.0, v.Get(now))
	assert.False(t, v.Settle(now.Add(time.Second)), "settles only once")
}

func TestValue_StopFreezes(t *testing.T) {
	now := time.Unix(100, 0)
	v := NewValue(0)
	v.Animate(Timing{From: 0, To: 100, Duration: time.Second}, now)

	x := v.Stop(now.Add(250 * time.Millisecond))
	assert.InDelta(t, 25, x, 1e-9)
	assert.False(t, v.Animating())
	assert.InDelta(t, 25, v.Get(now.Add(time.Hour)), 1e-9)
}
