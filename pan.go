package flick

import (
	"fmt"
	"math"
)

// defaultDeadZone is the minimum displacement in pixels before a pan
// recognizes.
const defaultDeadZone = 4.0

// PanConfig tunes a Pan recognizer. Zero fields take defaults.
type PanConfig struct {
	// DeadZone is the displacement the pointer must travel from its press
	// point before the pan recognizes. Defaults to 4 pixels. Negative
	// values are a configuration error.
	DeadZone float64
	// Axis selects which displacement component is measured against the
	// dead zone. The reported translation always carries both components.
	Axis Axis
}

// Pan recognizes a one-pointer drag. It stays Idle inside the dead zone,
// Begins when displacement exceeds it, emits per-frame updates with
// cumulative translation and smoothed velocity while the pointer moves,
// and Ends with the release velocity when the pointer lifts.
//
// Callback fields are nil-able; set only the ones you need. For one touch
// sequence OnStart fires before any OnUpdate, and exactly one of OnEnd or
// OnCancel follows if the pan recognized.
type Pan struct {
	OnStart  func(GestureState)
	OnUpdate func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	core     gestureCore
	cfg      PanConfig
	velocity velocityTracker
	slot     int
}

// NewPan creates a pan recognizer. Returns an error if the configuration
// is invalid.
func NewPan(cfg PanConfig) (*Pan, error) {
	if cfg.DeadZone < 0 {
		return nil, fmt.Errorf("flick: pan dead zone must not be negative, got %v", cfg.DeadZone)
	}
	if cfg.DeadZone == 0 {
		cfg.DeadZone = defaultDeadZone
	}
	return &Pan{core: newGestureCore(), cfg: cfg}, nil
}

// Phase returns the recognizer's current lifecycle phase.
func (p *Pan) Phase() Phase { return p.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling while a pan is
// in progress cancels it immediately: OnCancel fires and the recognizer
// ignores the rest of the touch sequence. Disabling an idle pan just stops
// it from recognizing until re-enabled.
func (p *Pan) SetEnabled(enabled bool) {
	if p.core.enabled == enabled {
		return
	}
	p.core.enabled = enabled
	if !enabled {
		switch p.core.st.Phase {
		case PhaseBegan, PhaseActive:
			p.forceCancel()
		}
	}
}

// Enabled reports whether the recognizer is accepting input.
func (p *Pan) Enabled() bool { return p.core.enabled }

func (p *Pan) phase() Phase { return p.core.st.Phase }

func (p *Pan) feed(f *frame) {
	if !p.core.enabled || p.core.locked {
		return
	}
	st := &p.core.st
	st.Pointers = f.downCount

	switch st.Phase {
	case PhaseIdle:
		slot := f.primary()
		if slot < 0 {
			return
		}
		t := &f.tracks[slot]
		p.fill(t)
		if !p.exceedsDeadZone(st.Translation) {
			return
		}
		p.slot = slot
		p.velocity.reset()
		p.velocity.sample(t.x-t.prevX, t.y-t.prevY, f.dt)
		st.Velocity = p.velocity.v
		st.Phase = PhaseBegan
		p.core.emit(p.OnStart, "pan OnStart")
		if t.justReleased {
			st.Phase = PhaseEnded
			p.core.emit(p.OnEnd, "pan OnEnd")
		}
	case PhaseBegan, PhaseActive:
		t := &f.tracks[p.slot]
		p.fill(t)
		p.velocity.sample(t.x-t.prevX, t.y-t.prevY, f.dt)
		st.Velocity = p.velocity.v
		if !t.down {
			st.Phase = PhaseEnded
			p.core.emit(p.OnEnd, "pan OnEnd")
			return
		}
		st.Phase = PhaseActive
		p.core.emit(p.OnUpdate, "pan OnUpdate")
	}
}

func (p *Pan) fill(t *pointerTrack) {
	st := &p.core.st
	st.Location = Vec2{X: t.x, Y: t.y}
	st.Start = Vec2{X: t.startX, Y: t.startY}
	st.Translation = Vec2{X: t.x - t.startX, Y: t.y - t.startY}
}

func (p *Pan) exceedsDeadZone(translation Vec2) bool {
	switch p.cfg.Axis {
	case AxisHorizontal:
		return math.Abs(translation.X) > p.cfg.DeadZone
	case AxisVertical:
		return math.Abs(translation.Y) > p.cfg.DeadZone
	default:
		return translation.Length() > p.cfg.DeadZone
	}
}

func (p *Pan) forceCancel() {
	switch p.core.st.Phase {
	case PhaseBegan, PhaseActive:
		p.core.st.Phase = PhaseCancelled
		p.core.locked = true
		p.core.emit(p.OnCancel, "pan OnCancel")
	case PhaseIdle:
		p.core.st.Phase = PhaseCancelled
		p.core.locked = true
	}
}

func (p *Pan) reset() {
	p.core.resetSequence()
	p.velocity.reset()
}
