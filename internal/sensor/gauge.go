package sensor

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// FrameRate is the number of animation steps per second. It matches the
// dashboard's default 50ms tick.
const FrameRate = 20

const settleEpsilon = 0.01

// trendEpsilon is the smallest change that counts as a rising or falling
// trend; smaller changes are sensor noise.
const trendEpsilon = 0.05

// Gauge animates a displayed value toward the latest measured value on a
// critically damped spring, so a new reading slides in instead of jumping.
type Gauge struct {
	spring harmonica.Spring

	target   float64
	shown    float64
	velocity float64
	delta    float64
	known    bool
}

// NewGauge returns a gauge with no value.
func NewGauge() *Gauge {
	return NewGaugeAt(time.Second / FrameRate)
}

// NewGaugeAt returns a gauge that animates in steps of the given frame time.
func NewGaugeAt(frame time.Duration) *Gauge {
	return &Gauge{
		spring: harmonica.NewSpring(harmonica.FPS(int(time.Second/frame)), 6.0, 1.0),
	}
}

// Set records a new measured value. The delta against the value on screen
// is kept for the trend indicator. The first value has no trend.
func (g *Gauge) Set(v float64) {
	if g.known {
		g.delta = v - g.shown
	} else {
		g.delta = 0
	}
	g.target = v
	g.known = true
}

// Step advances the animation one frame and reports whether the gauge is
// still moving.
func (g *Gauge) Step() bool {
	if !g.Moving() {
		return false
	}
	g.shown, g.velocity = g.spring.Update(g.shown, g.velocity, g.target)
	if math.Abs(g.shown-g.target) < settleEpsilon && math.Abs(g.velocity) < settleEpsilon {
		g.shown = g.target
		g.velocity = 0
		return false
	}
	return true
}

// Moving reports whether the displayed value has not reached the target yet.
func (g *Gauge) Moving() bool {
	return g.known && (g.shown != g.target || g.velocity != 0)
}

// Known reports whether the gauge has ever been set.
func (g *Gauge) Known() bool { return g.known }

// Value returns the latest measured value.
func (g *Gauge) Value() float64 { return g.target }

// Shown returns the value currently displayed.
func (g *Gauge) Shown() float64 { return g.shown }

// Delta returns the change recorded by the last Set.
func (g *Gauge) Delta() float64 { return g.delta }

// Trend is 1 when the last reading rose above the displayed value, -1 when
// it fell below it, and 0 otherwise.
func (g *Gauge) Trend() int {
	switch {
	case g.delta >= trendEpsilon:
		return 1
	case g.delta <= -trendEpsilon:
		return -1
	}
	return 0
}

// Fraction returns the displayed value as a fraction of scale, clamped to [0, 1].
func (g *Gauge) Fraction(scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, g.shown/scale))
}
