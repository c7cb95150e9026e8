package flick

import (
	"fmt"
	"time"
)

const (
	defaultTapMaxDuration = 300 * time.Millisecond
	defaultTapMaxMovement = 10.0

	defaultDoubleTapInterval = 300 * time.Millisecond
	defaultDoubleTapSpread   = 32.0

	defaultLongPressMinDuration   = 500 * time.Millisecond
	defaultLongPressMoveTolerance = 10.0
)

// TapConfig tunes a Tap recognizer. Zero fields take defaults.
type TapConfig struct {
	// MaxDuration is the longest press that still counts as a tap.
	// Defaults to 300ms.
	MaxDuration time.Duration
	// MaxMovement is the farthest the pointer may stray from its press
	// point. Defaults to 10 pixels.
	MaxMovement float64
	// ConfirmDelay postpones recognition after a qualifying release.
	// Leave zero for immediate taps. Set it to a double-tap interval when
	// the tap competes with a DoubleTap in an Exclusive group: the tap
	// then yields if a second press arrives inside the delay.
	ConfirmDelay time.Duration
}

func (cfg *TapConfig) fill() error {
	if cfg.MaxDuration < 0 || cfg.MaxMovement < 0 || cfg.ConfirmDelay < 0 {
		return fmt.Errorf("flick: tap config fields must not be negative: %+v", *cfg)
	}
	if cfg.MaxDuration == 0 {
		cfg.MaxDuration = defaultTapMaxDuration
	}
	if cfg.MaxMovement == 0 {
		cfg.MaxMovement = defaultTapMaxMovement
	}
	return nil
}

// Tap recognizes a quick press and release with little movement. The tap is
// armed on pointer down and confirmed on release; recognition is
// instantaneous, so one confirmed tap emits OnStart immediately followed by
// OnEnd. A press that runs too long, strays too far, or gains a second
// pointer fails silently.
//
// OnTouchDown and OnTouchUp are raw hooks outside the recognition
// lifecycle, for press visuals that must react before the tap confirms.
// They stop firing once the recognizer is cancelled for the sequence.
type Tap struct {
	OnStart  func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	OnTouchDown func(pos Vec2)
	OnTouchUp   func(pos Vec2)

	core gestureCore
	cfg  TapConfig

	slot    int
	tracked bool
	armed   bool

	pending    bool
	pendingFor float64
	pendingSt  GestureState
}

// NewTap creates a tap recognizer. Returns an error if the configuration
// is invalid.
func NewTap(cfg TapConfig) (*Tap, error) {
	if err := cfg.fill(); err != nil {
		return nil, err
	}
	return &Tap{core: newGestureCore(), cfg: cfg}, nil
}

// Phase returns the recognizer's current lifecycle phase.
func (t *Tap) Phase() Phase { return t.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling drops any
// armed or pending tap.
func (t *Tap) SetEnabled(enabled bool) {
	if t.core.enabled == enabled {
		return
	}
	t.core.enabled = enabled
	if !enabled {
		t.forceCancel()
	}
}

// Enabled reports whether the recognizer is accepting input.
func (t *Tap) Enabled() bool { return t.core.enabled }

func (t *Tap) phase() Phase { return t.core.st.Phase }

func (t *Tap) feed(f *frame) {
	if !t.core.enabled || t.core.locked {
		return
	}

	// A deferred confirmation counts its delay down even between touch
	// sequences; any new press inside the window yields to it.
	if t.pending {
		if f.downCount > 0 {
			t.pending = false
		} else {
			t.pendingFor += f.dt
			if t.pendingFor >= t.cfg.ConfirmDelay.Seconds() {
				t.pending = false
				t.confirm(t.pendingSt)
				t.core.resetSequence()
			}
			return
		}
	}

	st := &t.core.st
	st.Pointers = f.downCount

	slot := f.primary()
	if slot < 0 {
		return
	}

	if st.Phase == PhaseIdle && !t.tracked {
		tr := &f.tracks[slot]
		if !tr.justPressed {
			return
		}
		t.slot = slot
		t.tracked = true
		t.armed = true
		pos := Vec2{X: tr.x, Y: tr.y}
		if t.OnTouchDown != nil {
			fn := t.OnTouchDown
			safeCall("tap OnTouchDown", func() { fn(pos) })
		}
		return
	}
	if !t.tracked {
		return
	}

	tr := &f.tracks[t.slot]
	st.Location = Vec2{X: tr.x, Y: tr.y}
	st.Start = Vec2{X: tr.startX, Y: tr.startY}
	st.Translation = Vec2{X: tr.x - tr.startX, Y: tr.y - tr.startY}

	if t.armed {
		if f.downCount > 1 ||
			tr.heldFor > t.cfg.MaxDuration.Seconds() ||
			st.Translation.Length() > t.cfg.MaxMovement {
			t.armed = false
		}
	}

	if tr.justReleased {
		pos := st.Location
		if t.OnTouchUp != nil {
			fn := t.OnTouchUp
			safeCall("tap OnTouchUp", func() { fn(pos) })
		}
		if t.armed {
			t.armed = false
			if t.cfg.ConfirmDelay > 0 {
				t.pending = true
				t.pendingFor = 0
				t.pendingSt = *st
			} else {
				t.confirm(*st)
			}
		}
		t.tracked = false
	}
}

// confirm emits the instantaneous recognition pair.
func (t *Tap) confirm(st GestureState) {
	t.core.st = st
	t.core.st.Phase = PhaseBegan
	t.core.emit(t.OnStart, "tap OnStart")
	t.core.st.Phase = PhaseEnded
	t.core.emit(t.OnEnd, "tap OnEnd")
}

func (t *Tap) forceCancel() {
	t.armed = false
	t.tracked = false
	t.pending = false
	switch t.core.st.Phase {
	case PhaseBegan, PhaseActive:
		t.core.st.Phase = PhaseCancelled
		t.core.locked = true
		t.core.emit(t.OnCancel, "tap OnCancel")
	case PhaseIdle:
		t.core.st.Phase = PhaseCancelled
		t.core.locked = true
	}
}

func (t *Tap) reset() {
	t.core.resetSequence()
	t.armed = false
	t.tracked = false
	// pending survives: the deferred confirmation outlives its sequence.
}

// DoubleTapConfig tunes a DoubleTap recognizer. Zero fields take defaults.
type DoubleTapConfig struct {
	// MaxDuration is the longest press of either tap. Defaults to 300ms.
	MaxDuration time.Duration
	// Interval is the longest gap between the first release and the
	// second press. Defaults to 300ms.
	Interval time.Duration
	// MaxMovement is the farthest either press may stray from its own
	// press point. Defaults to 10 pixels.
	MaxMovement float64
	// Spread is the farthest the second press may land from the first
	// tap's release. Defaults to 32 pixels.
	Spread float64
}

func (cfg *DoubleTapConfig) fill() error {
	if cfg.MaxDuration < 0 || cfg.Interval < 0 || cfg.MaxMovement < 0 || cfg.Spread < 0 {
		return fmt.Errorf("flick: double-tap config fields must not be negative: %+v", *cfg)
	}
	if cfg.MaxDuration == 0 {
		cfg.MaxDuration = defaultTapMaxDuration
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultDoubleTapInterval
	}
	if cfg.MaxMovement == 0 {
		cfg.MaxMovement = defaultTapMaxMovement
	}
	if cfg.Spread == 0 {
		cfg.Spread = defaultDoubleTapSpread
	}
	return nil
}

// DoubleTap recognizes two confirmed taps in quick succession. The window
// between them spans touch sequences, so the recognizer keeps its first-tap
// memory across the gap and recognition is instantaneous on the second
// release.
type DoubleTap struct {
	OnStart  func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	core gestureCore
	cfg  DoubleTapConfig

	slot    int
	tracked bool
	armed   bool

	haveFirst bool
	firstPos  Vec2
	sinceTap  float64
}

// NewDoubleTap creates a double-tap recognizer. Returns an error if the
// configuration is invalid.
func NewDoubleTap(cfg DoubleTapConfig) (*DoubleTap, error) {
	if err := cfg.fill(); err != nil {
		return nil, err
	}
	return &DoubleTap{core: newGestureCore(), cfg: cfg}, nil
}

// Phase returns the recognizer's current lifecycle phase.
func (d *DoubleTap) Phase() Phase { return d.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling drops any
// first-tap memory.
func (d *DoubleTap) SetEnabled(enabled bool) {
	if d.core.enabled == enabled {
		return
	}
	d.core.enabled = enabled
	if !enabled {
		d.forceCancel()
	}
}

// Enabled reports whether the recognizer is accepting input.
func (d *DoubleTap) Enabled() bool { return d.core.enabled }

func (d *DoubleTap) phase() Phase { return d.core.st.Phase }

func (d *DoubleTap) feed(f *frame) {
	if !d.core.enabled || d.core.locked {
		return
	}

	if d.haveFirst && !d.tracked {
		d.sinceTap += f.dt
		if d.sinceTap > d.cfg.Interval.Seconds() {
			d.haveFirst = false
		}
	}

	st := &d.core.st
	st.Pointers = f.downCount

	slot := f.primary()
	if slot < 0 {
		return
	}

	if st.Phase == PhaseIdle && !d.tracked {
		tr := &f.tracks[slot]
		if !tr.justPressed {
			return
		}
		if d.haveFirst {
			// Second press outside the spread restarts the count with
			// this press as a new first tap.
			off := Vec2{X: tr.x, Y: tr.y}.Sub(d.firstPos)
			if off.Length() > d.cfg.Spread {
				d.haveFirst = false
			}
		}
		d.slot = slot
		d.tracked = true
		d.armed = true
		return
	}
	if !d.tracked {
		return
	}

	tr := &f.tracks[d.slot]
	st.Location = Vec2{X: tr.x, Y: tr.y}
	st.Start = Vec2{X: tr.startX, Y: tr.startY}
	st.Translation = Vec2{X: tr.x - tr.startX, Y: tr.y - tr.startY}

	if d.armed {
		if f.downCount > 1 ||
			tr.heldFor > d.cfg.MaxDuration.Seconds() ||
			st.Translation.Length() > d.cfg.MaxMovement {
			d.armed = false
		}
	}

	if tr.justReleased {
		confirmed := d.armed
		d.armed = false
		d.tracked = false
		if !confirmed {
			d.haveFirst = false
			return
		}
		if !d.haveFirst {
			d.haveFirst = true
			d.firstPos = st.Location
			d.sinceTap = 0
			return
		}
		d.haveFirst = false
		st.Phase = PhaseBegan
		d.core.emit(d.OnStart, "double-tap OnStart")
		st.Phase = PhaseEnded
		d.core.emit(d.OnEnd, "double-tap OnEnd")
	}
}

func (d *DoubleTap) forceCancel() {
	d.armed = false
	d.tracked = false
	d.haveFirst = false
	switch d.core.st.Phase {
	case PhaseBegan, PhaseActive:
		d.core.st.Phase = PhaseCancelled
		d.core.locked = true
		d.core.emit(d.OnCancel, "double-tap OnCancel")
	case PhaseIdle:
		d.core.st.Phase = PhaseCancelled
		d.core.locked = true
	}
}

func (d *DoubleTap) reset() {
	d.core.resetSequence()
	d.armed = false
	d.tracked = false
	// haveFirst and sinceTap survive: the inter-tap window spans sequences.
}

// LongPressConfig tunes a LongPress recognizer. Zero fields take defaults.
type LongPressConfig struct {
	// MinDuration is how long the pointer must stay down before the press
	// recognizes. Defaults to 500ms.
	MinDuration time.Duration
	// MoveTolerance is the farthest the pointer may stray from its press
	// point before the press fails. Defaults to 10 pixels.
	MoveTolerance float64
}

func (cfg *LongPressConfig) fill() error {
	if cfg.MinDuration < 0 || cfg.MoveTolerance < 0 {
		return fmt.Errorf("flick: long-press config fields must not be negative: %+v", *cfg)
	}
	if cfg.MinDuration == 0 {
		cfg.MinDuration = defaultLongPressMinDuration
	}
	if cfg.MoveTolerance == 0 {
		cfg.MoveTolerance = defaultLongPressMoveTolerance
	}
	return nil
}

// LongPress recognizes a press held within a movement tolerance for a
// minimum duration. OnStart fires the moment the duration is reached, with
// the pointer still down; OnEnd fires on release. A press that strays or
// gains a second pointer before the duration fails silently.
type LongPress struct {
	OnStart  func(GestureState)
	OnUpdate func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	core gestureCore
	cfg  LongPressConfig

	slot  int
	armed bool
}

// NewLongPress creates a long-press recognizer. Returns an error if the
// configuration is invalid.
func NewLongPress(cfg LongPressConfig) (*LongPress, error) {
	if err := cfg.fill(); err != nil {
		return nil, err
	}
	return &LongPress{core: newGestureCore(), cfg: cfg}, nil
}

// Phase returns the recognizer's current lifecycle phase.
func (l *LongPress) Phase() Phase { return l.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling while a press
// is recognized cancels it immediately.
func (l *LongPress) SetEnabled(enabled bool) {
	if l.core.enabled == enabled {
		return
	}
	l.core.enabled = enabled
	if !enabled {
		l.forceCancel()
	}
}

// Enabled reports whether the recognizer is accepting input.
func (l *LongPress) Enabled() bool { return l.core.enabled }

func (l *LongPress) phase() Phase { return l.core.st.Phase }

func (l *LongPress) feed(f *frame) {
	if !l.core.enabled || l.core.locked {
		return
	}
	st := &l.core.st
	st.Pointers = f.downCount

	if st.Phase == PhaseIdle && !l.armed {
		slot := f.primary()
		if slot < 0 {
			return
		}
		if !f.tracks[slot].justPressed {
			return
		}
		l.slot = slot
		l.armed = true
		return
	}
	if st.Phase == PhaseIdle && l.armed {
		tr := &f.tracks[l.slot]
		st.Location = Vec2{X: tr.x, Y: tr.y}
		st.Start = Vec2{X: tr.startX, Y: tr.startY}
		st.Translation = Vec2{X: tr.x - tr.startX, Y: tr.y - tr.startY}
		if !tr.down {
			l.armed = false
			return
		}
		if f.downCount > 1 || st.Translation.Length() > l.cfg.MoveTolerance {
			l.armed = false
			return
		}
		if tr.heldFor >= l.cfg.MinDuration.Seconds() {
			st.Phase = PhaseBegan
			l.core.emit(l.OnStart, "long-press OnStart")
		}
		return
	}

	if st.Phase == PhaseBegan || st.Phase == PhaseActive {
		tr := &f.tracks[l.slot]
		st.Location = Vec2{X: tr.x, Y: tr.y}
		st.Translation = Vec2{X: tr.x - tr.startX, Y: tr.y - tr.startY}
		if !tr.down {
			st.Phase = PhaseEnded
			l.core.emit(l.OnEnd, "long-press OnEnd")
			return
		}
		st.Phase = PhaseActive
		l.core.emit(l.OnUpdate, "long-press OnUpdate")
	}
}

func (l *LongPress) forceCancel() {
	l.armed = false
	switch l.core.st.Phase {
	case PhaseBegan, PhaseActive:
		l.core.st.Phase = PhaseCancelled
		l.core.locked = true
		l.core.emit(l.OnCancel, "long-press OnCancel")
	case PhaseIdle:
		l.core.st.Phase = PhaseCancelled
		l.core.locked = true
	}
}

func (l *LongPress) reset() {
	l.core.resetSequence()
	l.armed = false
}
