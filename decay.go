package flick

import (
	"fmt"
	"math"
)

const (
	// defaultDeceleration is the per-millisecond velocity retention factor.
	// Matches the feel of platform scroll views at 60 ticks per second.
	defaultDeceleration = 0.998

	decayRestVelocity = 1.0
)

// DecayConfig tunes a Decay motion. Zero fields take defaults.
type DecayConfig struct {
	// Deceleration is the fraction of velocity retained per millisecond,
	// in (0, 1). Defaults to 0.998. Values outside (0, 1) panic.
	Deceleration float64
	// Clamp limits the traveled position. When the position reaches a
	// bound the motion stops dead there; there is no bounce. Nil leaves
	// the motion unclamped.
	Clamp *Range
	// OnComplete fires exactly once when the motion comes to rest or hits
	// a clamp bound (finished=true), or is replaced, disposed, or directly
	// assigned over (finished=false).
	OnComplete func(finished bool)
}

type decayMotion struct {
	motionBase
	v0           float64
	deceleration float64
	clamp        *Range
	x, v         float64
}

// Decay returns a friction motion: the value coasts from the given initial
// velocity, losing a fixed fraction of velocity per millisecond, and rests
// where friction wins. With a Clamp it stops dead at the bound instead of
// passing it, which is what makes fling resolution deterministic. Panics if
// the deceleration is outside (0, 1).
func Decay(initialVelocity float64, cfg DecayConfig) Motion {
	if cfg.Deceleration == 0 {
		cfg.Deceleration = defaultDeceleration
	}
	if cfg.Deceleration <= 0 || cfg.Deceleration >= 1 {
		panic(fmt.Sprintf("flick: decay deceleration must be in (0, 1), got %v", cfg.Deceleration))
	}
	return &decayMotion{
		motionBase:   motionBase{onComplete: cfg.OnComplete},
		v0:           initialVelocity,
		deceleration: cfg.Deceleration,
		clamp:        cfg.Clamp,
	}
}

func (m *decayMotion) init(current, velocity float64) {
	m.x = current
	m.v = m.v0
}

func (m *decayMotion) step(dt float64) (float64, float64, bool) {
	m.x += m.v * dt
	m.v *= math.Pow(m.deceleration, dt*1000)

	if m.clamp != nil {
		if m.x <= m.clamp.Min {
			m.x = m.clamp.Min
			m.v = 0
			return m.x, m.v, true
		}
		if m.x >= m.clamp.Max {
			m.x = m.clamp.Max
			m.v = 0
			return m.x, m.v, true
		}
	}
	if math.Abs(m.v) < decayRestVelocity {
		m.v = 0
		return m.x, m.v, true
	}
	return m.x, m.v, false
}

func (m *decayMotion) target() float64 {
	rest := DecayRest(m.x, m.v, m.deceleration)
	if m.clamp != nil {
		rest = m.clamp.Clamp(rest)
	}
	return rest
}

// DecayRest returns the natural rest position of a decay motion started at
// from with the given velocity: the closed form of integrating velocity
// decaying by the per-millisecond factor to zero. Callers use it to decide
// where a fling will land before scheduling it. Panics if the deceleration
// is outside (0, 1).
func DecayRest(from, velocity, deceleration float64) float64 {
	if deceleration <= 0 || deceleration >= 1 {
		panic(fmt.Sprintf("flick: decay deceleration must be in (0, 1), got %v", deceleration))
	}
	return from - velocity/(1000*math.Log(deceleration))
}
