package flick

import (
	"fmt"
	"math"
)

// Spring defaults. Stiffness 170 / damping 26 with unit mass is close to
// critically damped: a screen-scale displacement is within a pixel of its
// target in about 40 frames at 60 ticks per second.
const (
	defaultSpringStiffness = 170.0
	defaultSpringDamping   = 26.0

	springRestDisplacement = 0.01
	springRestVelocity     = 0.01

	// settleFramesRequired is how many consecutive frames the rest
	// condition must hold before the spring snaps to its target. A single
	// frame can satisfy it mid-oscillation at the turnaround point.
	settleFramesRequired = 2
)

// SpringConfig tunes a Spring motion. Zero fields take defaults.
type SpringConfig struct {
	// Stiffness is the spring constant. Higher values pull harder.
	// Defaults to 170. Must not be negative.
	Stiffness float64
	// Damping resists velocity. Higher values settle with less bounce.
	// Defaults to 26. Must not be negative.
	Damping float64
	// OnComplete fires exactly once when the spring settles (finished=true)
	// or is replaced, disposed, or directly assigned over (finished=false).
	OnComplete func(finished bool)
}

type springMotion struct {
	motionBase
	to           float64
	stiffness    float64
	damping      float64
	x, v         float64
	settleFrames int
}

// Spring returns a physically based motion that accelerates toward the
// target and settles there, inheriting the value's current velocity so an
// interrupted gesture hands off without a visual jump. Integration is
// semi-implicit Euler; the spring settles when displacement and velocity
// stay under rest thresholds for two consecutive frames, then snaps exactly
// to the target. Panics if stiffness or damping is negative.
func Spring(target float64, cfg SpringConfig) Motion {
	if cfg.Stiffness < 0 {
		panic(fmt.Sprintf("flick: spring stiffness must not be negative, got %v", cfg.Stiffness))
	}
	if cfg.Damping < 0 {
		panic(fmt.Sprintf("flick: spring damping must not be negative, got %v", cfg.Damping))
	}
	if cfg.Stiffness == 0 {
		cfg.Stiffness = defaultSpringStiffness
	}
	if cfg.Damping == 0 {
		cfg.Damping = defaultSpringDamping
	}
	return &springMotion{
		motionBase: motionBase{onComplete: cfg.OnComplete},
		to:         target,
		stiffness:  cfg.Stiffness,
		damping:    cfg.Damping,
	}
}

func (m *springMotion) init(current, velocity float64) {
	m.x = current
	m.v = velocity
}

func (m *springMotion) step(dt float64) (float64, float64, bool) {
	accel := -m.stiffness*(m.x-m.to) - m.damping*m.v
	m.v += accel * dt
	m.x += m.v * dt

	atRest := math.Abs(m.v) < springRestVelocity &&
		math.Abs(m.x-m.to) < springRestDisplacement
	if atRest {
		m.settleFrames++
	} else {
		m.settleFrames = 0
	}
	if m.settleFrames >= settleFramesRequired {
		m.x = m.to
		m.v = 0
		return m.x, m.v, true
	}
	return m.x, m.v, false
}

func (m *springMotion) target() float64 { return m.to }
