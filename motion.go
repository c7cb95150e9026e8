package flick

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Motion describes how a Value's current number evolves over time. Create
// motions with the constructors Immediate, Timed, Spring, and Decay, then
// schedule them with Value.Set. A Motion is single-use: it carries stepping
// state and must not be shared between values or scheduled twice.
type Motion interface {
	// init arms the motion with the value's state at scheduling time.
	init(current, velocity float64)
	// step advances the motion by dt seconds and returns the new sample
	// and whether the motion has settled.
	step(dt float64) (current, velocity float64, settled bool)
	// target returns the value the motion resolves to when skipped,
	// as under the reduce-motion preference.
	target() float64
	// completeOnce fires the completion callback at most once.
	completeOnce(finished bool)
}

// motionBase carries the completion callback shared by all motion kinds.
type motionBase struct {
	onComplete func(finished bool)
	completed  bool
}

func (b *motionBase) completeOnce(finished bool) {
	if b.completed {
		return
	}
	b.completed = true
	if b.onComplete == nil {
		return
	}
	fn := b.onComplete
	safeCall("motion completion", func() { fn(finished) })
}

// defaultTimedDuration is used when TimedConfig.Duration is zero.
const defaultTimedDuration = 300 * time.Millisecond

// TimedConfig tunes a Timed motion. Zero fields take defaults.
type TimedConfig struct {
	// Duration of the motion. Defaults to 300ms. Negative durations panic.
	Duration time.Duration
	// Easing curve applied over the duration. Defaults to ease.OutQuad.
	Easing ease.TweenFunc
	// OnComplete fires exactly once when the motion settles (finished=true)
	// or is replaced, disposed, or directly assigned over (finished=false).
	OnComplete func(finished bool)
}

type timedMotion struct {
	motionBase
	to       float64
	duration float32
	easing   ease.TweenFunc
	tween    *gween.Tween
	last     float64
	velocity float64
}

// Timed returns a motion that animates to the target over a fixed duration
// along an easing curve. Panics if the duration is negative.
func Timed(target float64, cfg TimedConfig) Motion {
	if cfg.Duration < 0 {
		panic(fmt.Sprintf("flick: timed motion duration must not be negative, got %v", cfg.Duration))
	}
	if cfg.Duration == 0 {
		cfg.Duration = defaultTimedDuration
	}
	if cfg.Easing == nil {
		cfg.Easing = ease.OutQuad
	}
	return &timedMotion{
		motionBase: motionBase{onComplete: cfg.OnComplete},
		to:         target,
		duration:   float32(cfg.Duration.Seconds()),
		easing:     cfg.Easing,
	}
}

func (m *timedMotion) init(current, velocity float64) {
	m.tween = gween.New(float32(current), float32(m.to), m.duration, m.easing)
	m.last = current
}

func (m *timedMotion) step(dt float64) (float64, float64, bool) {
	val, finished := m.tween.Update(float32(dt))
	current := float64(val)
	if finished {
		current = m.to
	}
	m.velocity = (current - m.last) / dt
	m.last = current
	return current, m.velocity, finished
}

func (m *timedMotion) target() float64 { return m.to }

// ImmediateConfig tunes an Immediate motion.
type ImmediateConfig struct {
	// OnComplete fires exactly once: on the step that assigns the target
	// (finished=true) or when the motion is replaced first (finished=false).
	OnComplete func(finished bool)
}

type immediateMotion struct {
	motionBase
	to float64
}

// Immediate returns a motion that jumps to the target on the next Step with
// no intermediate frames. It is also what every other motion collapses to
// while the reduce-motion preference is enabled.
func Immediate(target float64, cfg ImmediateConfig) Motion {
	return &immediateMotion{
		motionBase: motionBase{onComplete: cfg.OnComplete},
		to:         target,
	}
}

func (m *immediateMotion) init(current, velocity float64) {}

func (m *immediateMotion) step(dt float64) (float64, float64, bool) {
	return m.to, 0, true
}

func (m *immediateMotion) target() float64 { return m.to }
