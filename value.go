package flick

import (
	"fmt"
	"os"
)

// maxStepDt caps a single integration step. A stall (window drag, debugger
// pause) otherwise delivers one huge dt and explicit integration of a stiff
// spring diverges.
const maxStepDt = 1.0 / 20.0

// Value is a single animated number: a current value, a current velocity,
// and at most one motion in flight. Each Value is owned by exactly one
// component; all methods must be called from the goroutine driving that
// component's Update, conventionally the game loop.
//
// The current value changes only two ways: the active motion's stepper
// during Step, or a direct assignment via SetNow. Reads never mutate.
type Value struct {
	current  float64
	velocity float64
	motion   Motion
	disposed bool
	warned   bool
}

// NewValue creates a Value at rest at the given initial value.
func NewValue(initial float64) *Value {
	return &Value{current: initial}
}

// Read returns the current value. Safe to call at any time, including from
// motion completion callbacks; returns the last value after Dispose.
func (v *Value) Read() float64 {
	return v.current
}

// Velocity returns the current velocity in value units per second. It is
// zero at rest and tracks the active motion while one is in flight.
func (v *Value) Velocity() float64 {
	return v.velocity
}

// Animating reports whether a motion is in flight.
func (v *Value) Animating() bool {
	return v.motion != nil
}

// Set schedules a motion on the value, replacing any motion in flight. The
// replaced motion's completion callback fires with finished=false before
// the new motion is armed. A nil motion or a disposed value is a no-op.
//
// While the reduce-motion preference is enabled the motion still schedules,
// but the next Step jumps straight to its target and completes it.
func (v *Value) Set(m Motion) {
	if v.disposed {
		v.warnDisposed("Set")
		return
	}
	if m == nil {
		return
	}
	v.interrupt()
	m.init(v.current, v.velocity)
	v.motion = m
}

// SetNow assigns the value directly, clearing any motion in flight (its
// completion callback fires with finished=false) and zeroing velocity.
// Gesture-driven components use it to pin the value to the finger each
// frame while a drag is active.
func (v *Value) SetNow(value float64) {
	if v.disposed {
		v.warnDisposed("SetNow")
		return
	}
	v.interrupt()
	v.current = value
	v.velocity = 0
}

// interrupt fires the pending completion with finished=false. The loop
// covers completions that schedule a new motion from inside the callback;
// each such motion is interrupted in turn until none remains.
func (v *Value) interrupt() {
	for v.motion != nil {
		old := v.motion
		v.motion = nil
		old.completeOnce(false)
	}
}

// Step advances the active motion by dt seconds. At most one completion
// callback fires per call, after the value reflects its final state. A
// value at rest, a disposed value, or a non-positive dt is a no-op.
func (v *Value) Step(dt float64) {
	if v.disposed {
		v.warnDisposed("Step")
		return
	}
	if v.motion == nil || dt <= 0 {
		return
	}
	if dt > maxStepDt {
		dt = maxStepDt
	}

	m := v.motion
	if reducedMotion.Load() {
		v.current = m.target()
		v.velocity = 0
		v.motion = nil
		m.completeOnce(true)
		return
	}

	current, velocity, settled, err := stepMotion(m, dt)
	if err != nil {
		// A panicking stepper (bad user easing function) must not take
		// the frame loop down. Degrade to the un-animated end state.
		logger.Error("flick: motion step failed, jumping to target", "error", err)
		v.current = m.target()
		v.velocity = 0
		v.motion = nil
		m.completeOnce(true)
		return
	}
	v.current = current
	v.velocity = velocity
	if settled {
		v.motion = nil
		m.completeOnce(true)
	}
}

func stepMotion(m Motion, dt float64) (current, velocity float64, settled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	current, velocity, settled = m.step(dt)
	return current, velocity, settled, nil
}

// Dispose releases the value. Any motion in flight is discarded without
// firing its completion callback; subsequent Set, SetNow, and Step calls
// are no-ops and Read keeps returning the last value. Dispose is how a
// component unmounts mid-animation without triggering state transitions.
func (v *Value) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.motion = nil
	v.velocity = 0
}

// IsDisposed reports whether Dispose has been called.
func (v *Value) IsDisposed() bool {
	return v.disposed
}

func (v *Value) warnDisposed(op string) {
	if !globalDebug || v.warned {
		return
	}
	v.warned = true
	fmt.Fprintf(os.Stderr, "[flick] %s on disposed value ignored\n", op)
}
