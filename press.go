package flick

import (
	"fmt"
	"time"
)

const (
	defaultPressedScale  = 0.96
	defaultPressMaxMove  = 16.0
	pressSpringStiffness = 400.0
	pressSpringDamping   = 28.0
)

// PressConfig configures a Pressable. Zero fields take defaults.
type PressConfig struct {
	// PressedScale is the content scale while the pointer is down.
	// Defaults to 0.96. Must be positive.
	PressedScale float64
	// MaxMovement is the tap slop: how far the pointer may stray and
	// still count as a press. Defaults to 16 pixels.
	MaxMovement float64
	// LongPressDuration is the hold time that turns a press into a long
	// press. Defaults to 500ms. Releases before it count as presses.
	LongPressDuration time.Duration
	// Haptics pulses when a long press recognizes. Defaults to
	// NoopHaptics.
	Haptics Haptics
	// Dispatcher carries OnPress and OnLongPress to the application.
	Dispatcher Dispatcher
	// OnPress fires on a confirmed press, after the release motion is
	// scheduled. Under reduced motion the visuals jump but OnPress still
	// fires.
	OnPress func()
	// OnLongPress fires the moment the hold time is reached, with the
	// pointer still down.
	OnLongPress func()
}

// PressStyle is the per-frame drawing snapshot for a pressable.
type PressStyle struct {
	Scale float64 // content scale, springing between 1 and PressedScale
}

// Pressable is press feedback plus action dispatch: the content scales
// down on pointer down, springs back on release, and the release runs
// OnPress unless the hold was long enough to be a long press. Tap and
// long press compete exclusively, so exactly one action fires per touch.
type Pressable struct {
	cfg PressConfig

	scale *Value

	tap  *Tap
	long *LongPress
	det  *Detector

	pressed  bool
	disabled bool
	disposed bool
}

// NewPressable creates a pressable. Returns an error if the configuration
// is invalid.
func NewPressable(cfg PressConfig) (*Pressable, error) {
	if cfg.PressedScale < 0 {
		return nil, fmt.Errorf("flick: pressed scale must not be negative, got %v", cfg.PressedScale)
	}
	if cfg.MaxMovement < 0 {
		return nil, fmt.Errorf("flick: press max movement must not be negative, got %v", cfg.MaxMovement)
	}
	if cfg.LongPressDuration < 0 {
		return nil, fmt.Errorf("flick: long press duration must not be negative, got %v", cfg.LongPressDuration)
	}
	if cfg.PressedScale == 0 {
		cfg.PressedScale = defaultPressedScale
	}
	if cfg.MaxMovement == 0 {
		cfg.MaxMovement = defaultPressMaxMove
	}
	if cfg.LongPressDuration == 0 {
		cfg.LongPressDuration = defaultLongPressMinDuration
	}
	if cfg.Haptics == nil {
		cfg.Haptics = NoopHaptics{}
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = DefaultDispatcher()
	}

	// Any release before the long press recognizes counts as a press, so
	// the tap's duration ceiling is the long-press floor.
	tap, err := NewTap(TapConfig{
		MaxDuration: cfg.LongPressDuration,
		MaxMovement: cfg.MaxMovement,
	})
	if err != nil {
		return nil, err
	}
	long, err := NewLongPress(LongPressConfig{
		MinDuration:   cfg.LongPressDuration,
		MoveTolerance: cfg.MaxMovement,
	})
	if err != nil {
		return nil, err
	}

	p := &Pressable{
		cfg:   cfg,
		scale: NewValue(1),
		tap:   tap,
		long:  long,
	}
	tap.OnTouchDown = p.pressIn
	tap.OnTouchUp = p.pressOut
	tap.OnEnd = p.tapConfirmed
	tap.OnCancel = func(GestureState) { p.release() }
	long.OnStart = p.longPressed
	long.OnEnd = func(GestureState) { p.release() }
	long.OnCancel = func(GestureState) { p.release() }
	p.det = NewDetector(Exclusive(long, tap))
	return p, nil
}

func (p *Pressable) pressIn(Vec2) {
	p.pressed = true
	p.scale.Set(Spring(p.cfg.PressedScale, SpringConfig{
		Stiffness: pressSpringStiffness,
		Damping:   pressSpringDamping,
	}))
}

func (p *Pressable) pressOut(Vec2) {
	p.release()
}

func (p *Pressable) release() {
	if !p.pressed {
		return
	}
	p.pressed = false
	p.scale.Set(Spring(1, SpringConfig{
		Stiffness: pressSpringStiffness,
		Damping:   pressSpringDamping,
	}))
}

func (p *Pressable) tapConfirmed(GestureState) {
	if p.cfg.OnPress != nil {
		p.cfg.Dispatcher.Invoke(p.cfg.OnPress)
	}
}

func (p *Pressable) longPressed(GestureState) {
	pulse(p.cfg.Haptics)
	if p.cfg.OnLongPress != nil {
		p.cfg.Dispatcher.Invoke(p.cfg.OnLongPress)
	}
}

// SetDisabled enables or disables the pressable. Disabling mid-press
// cancels the recognizers and releases the press visual.
func (p *Pressable) SetDisabled(disabled bool) {
	if p.disposed || p.disabled == disabled {
		return
	}
	p.disabled = disabled
	p.tap.SetEnabled(!disabled)
	p.long.SetEnabled(!disabled)
	if disabled {
		p.release()
	}
}

// Disabled reports whether the pressable is ignoring input.
func (p *Pressable) Disabled() bool { return p.disabled }

// Pressed reports whether a pointer is currently holding the pressable.
func (p *Pressable) Pressed() bool { return p.pressed }

// Update advances the pressable by one frame.
func (p *Pressable) Update(dt float64, samples []Sample) {
	if p.disposed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	p.det.Feed(dt, samples)
	if globalDebug {
		stats.feedTime = time.Since(t0)
		t0 = time.Now()
	}
	p.scale.Step(dt)
	if globalDebug {
		stats.stepTime = time.Since(t0)
		stats.samples = len(samples)
		stats.activeCount = animatingCount(p.scale)
		debugLog("press", stats)
	}
}

// Style returns the current drawing snapshot.
func (p *Pressable) Style() PressStyle {
	return PressStyle{Scale: p.scale.Read()}
}

// Dispose releases the pressable.
func (p *Pressable) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.scale.Dispose()
}
