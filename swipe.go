package flick

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// SwipeDirection selects which way a row travels to reveal and delete.
type SwipeDirection uint8

const (
	SwipeLeft  SwipeDirection = iota // row slides left; action area on the right
	SwipeRight                       // row slides right; action area on the left
)

const (
	defaultSwipeHeight       = 64.0
	defaultVelocityThreshold = 500.0

	exitSlideDuration    = 200 * time.Millisecond
	exitFadeDuration     = 150 * time.Millisecond
	exitCollapseDuration = 150 * time.Millisecond
)

// SwipeConfig configures a SwipeItem. Zero fields take defaults where one
// is documented.
type SwipeConfig struct {
	// Width of the row in pixels. Required; the exit slide travels this
	// far and flings clamp to it.
	Width float64
	// Height of the row at rest. Defaults to 64.
	Height float64
	// Direction the row travels. Defaults to SwipeLeft.
	Direction SwipeDirection
	// Thresholds for release resolution. DismissDistance defaults to half
	// the width and VelocityThreshold to 500 px/s. RevealWidth is taken
	// as given: zero means the row has no revealed resting position.
	Thresholds Thresholds
	// RevealOnly disables the commit tier so the row can reveal its
	// actions but never delete by gesture.
	RevealOnly bool
	// Deceleration for fling decay. Defaults to 0.998 per millisecond.
	Deceleration float64
	// Haptics pulses when the drag crosses the dismiss threshold.
	// Defaults to NoopHaptics.
	Haptics Haptics
	// Dispatcher carries OnDelete and OnReveal to the application.
	// Defaults to the shared async dispatcher.
	Dispatcher Dispatcher
	// OnDelete fires exactly once, after the exit animation completes.
	OnDelete func()
	// OnReveal fires when the row settles into its revealed position,
	// once per open.
	OnReveal func()
}

// SwipeStyle is the per-frame drawing snapshot for a swipe row.
type SwipeStyle struct {
	Offset  float64 // horizontal translation in pixels, signed by direction
	Opacity float64 // 1 at rest, fading to 0 during the exit
	Height  float64 // row height, collapsing to 0 during the exit
}

// SwipeItem is a swipeable list row: drag to reveal an action area, drag
// far or fling to delete. A release resolves through Resolve; a committed
// delete runs the exit chain (slide out, fade, collapse) and then reports
// OnDelete exactly once. While the exit chain runs the recognizer is
// disabled, so a row can never be deleted twice.
type SwipeItem struct {
	cfg SwipeConfig

	offset  *Value
	opacity *Value
	height  *Value

	pan *Pan
	det *Detector

	dragBase float64
	latch    thresholdLatch

	revealed bool
	deleting bool
	deleted  bool
	disposed bool
}

// NewSwipeItem creates a swipe row. Returns an error if the configuration
// is invalid.
func NewSwipeItem(cfg SwipeConfig) (*SwipeItem, error) {
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("flick: swipe item width must be positive, got %v", cfg.Width)
	}
	if cfg.Height < 0 {
		return nil, fmt.Errorf("flick: swipe item height must not be negative, got %v", cfg.Height)
	}
	if err := cfg.Thresholds.validate(); err != nil {
		return nil, err
	}
	if cfg.Thresholds.RevealWidth >= cfg.Width {
		return nil, fmt.Errorf("flick: reveal width %v must be smaller than row width %v",
			cfg.Thresholds.RevealWidth, cfg.Width)
	}
	if cfg.Deceleration != 0 && (cfg.Deceleration <= 0 || cfg.Deceleration >= 1) {
		return nil, fmt.Errorf("flick: swipe deceleration must be in (0, 1), got %v", cfg.Deceleration)
	}
	if cfg.Height == 0 {
		cfg.Height = defaultSwipeHeight
	}
	if cfg.Thresholds.DismissDistance == 0 {
		cfg.Thresholds.DismissDistance = cfg.Width / 2
	}
	if cfg.Thresholds.VelocityThreshold == 0 {
		cfg.Thresholds.VelocityThreshold = defaultVelocityThreshold
	}
	if cfg.Deceleration == 0 {
		cfg.Deceleration = defaultDeceleration
	}
	if cfg.Haptics == nil {
		cfg.Haptics = NoopHaptics{}
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = DefaultDispatcher()
	}

	pan, err := NewPan(PanConfig{Axis: AxisHorizontal})
	if err != nil {
		return nil, err
	}

	s := &SwipeItem{
		cfg:     cfg,
		offset:  NewValue(0),
		opacity: NewValue(1),
		height:  NewValue(cfg.Height),
		pan:     pan,
		latch:   thresholdLatch{threshold: cfg.Thresholds.DismissDistance},
	}
	pan.OnStart = s.dragStart
	pan.OnUpdate = s.dragMove
	pan.OnEnd = s.dragEnd
	pan.OnCancel = s.dragCancel
	s.det = NewDetector(pan)
	return s, nil
}

// dirSign maps the commit direction onto the screen X axis.
func (s *SwipeItem) dirSign() float64 {
	if s.cfg.Direction == SwipeRight {
		return 1
	}
	return -1
}

// progress maps a screen-axis offset to commit-ward translation.
func (s *SwipeItem) progress(offset float64) float64 {
	return s.dirSign() * offset
}

// offsetRange is the reachable band of offsets: rest position to fully
// slid out.
func (s *SwipeItem) offsetRange() Range {
	if s.cfg.Direction == SwipeRight {
		return Range{Min: 0, Max: s.cfg.Width}
	}
	return Range{Min: -s.cfg.Width, Max: 0}
}

func (s *SwipeItem) dragStart(GestureState) {
	s.dragBase = s.offset.Read()
	s.latch.reset()
}

func (s *SwipeItem) dragMove(st GestureState) {
	if s.deleting {
		return
	}
	target := s.offsetRange().Clamp(s.dragBase + st.Translation.X)
	s.offset.SetNow(target)
	if s.latch.update(s.progress(target)) {
		pulse(s.cfg.Haptics)
	}
}

func (s *SwipeItem) dragEnd(st GestureState) {
	if s.deleting {
		return
	}
	res := Resolve(
		s.progress(s.offset.Read()),
		s.progress(st.Velocity.X),
		!s.cfg.RevealOnly,
		s.cfg.Thresholds,
	)
	switch res.Outcome {
	case OutcomeCommit:
		s.commit()
	case OutcomeFling:
		s.fling(st.Velocity.X)
	case OutcomeReveal:
		s.settleRevealed()
	default:
		s.snapBack()
	}
}

func (s *SwipeItem) dragCancel(GestureState) {
	if s.deleting {
		return
	}
	if s.revealed {
		s.settleRevealed()
	} else {
		s.snapBack()
	}
}

// fling coasts the row on a clamped decay with the raw release velocity
// and resolves again where it stops.
func (s *SwipeItem) fling(velocityX float64) {
	bounds := s.offsetRange()
	s.offset.Set(Decay(velocityX, DecayConfig{
		Deceleration: s.cfg.Deceleration,
		Clamp:        &bounds,
		OnComplete: func(finished bool) {
			if !finished || s.deleting || s.disposed {
				return
			}
			res := ResolveSettled(s.progress(s.offset.Read()), !s.cfg.RevealOnly, s.cfg.Thresholds)
			switch res.Outcome {
			case OutcomeCommit:
				s.commit()
			case OutcomeReveal:
				s.settleRevealed()
			default:
				s.snapBack()
			}
		},
	}))
}

func (s *SwipeItem) settleRevealed() {
	s.offset.Set(Spring(s.dirSign()*s.cfg.Thresholds.RevealWidth, SpringConfig{}))
	if !s.revealed {
		s.revealed = true
		if s.cfg.OnReveal != nil {
			s.cfg.Dispatcher.Invoke(s.cfg.OnReveal)
		}
	}
}

func (s *SwipeItem) snapBack() {
	s.offset.Set(Spring(0, SpringConfig{}))
	s.revealed = false
}

// commit starts the exit chain: slide fully out, fade, collapse, then
// report the delete. The recognizer is disabled first so no gesture can
// restart the row mid-exit.
func (s *SwipeItem) commit() {
	if s.deleting {
		return
	}
	s.deleting = true
	s.revealed = false
	s.pan.SetEnabled(false)

	s.offset.Set(Timed(s.dirSign()*s.cfg.Width, TimedConfig{
		Duration: exitSlideDuration,
		Easing:   ease.OutQuad,
		OnComplete: func(finished bool) {
			if !finished {
				return
			}
			s.opacity.Set(Timed(0, TimedConfig{
				Duration: exitFadeDuration,
				OnComplete: func(finished bool) {
					if !finished {
						return
					}
					s.height.Set(Timed(0, TimedConfig{
						Duration: exitCollapseDuration,
						Easing:   ease.OutCubic,
						OnComplete: func(finished bool) {
							if finished {
								s.fireDelete()
							}
						},
					}))
				},
			}))
		},
	}))
}

func (s *SwipeItem) fireDelete() {
	if s.deleted {
		return
	}
	s.deleted = true
	if s.cfg.OnDelete != nil {
		s.cfg.Dispatcher.Invoke(s.cfg.OnDelete)
	}
}

// Update advances the row by one frame: feeds pointer samples to the
// recognizer, then steps the animated values. Call it every tick from the
// game loop.
func (s *SwipeItem) Update(dt float64, samples []Sample) {
	if s.disposed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	s.det.Feed(dt, samples)
	if globalDebug {
		stats.feedTime = time.Since(t0)
		t0 = time.Now()
	}
	s.offset.Step(dt)
	s.opacity.Step(dt)
	s.height.Step(dt)
	if globalDebug {
		stats.stepTime = time.Since(t0)
		stats.samples = len(samples)
		stats.activeCount = animatingCount(s.offset, s.opacity, s.height)
		debugLog("swipe", stats)
	}
}

// Style returns the current drawing snapshot. Reading it has no side
// effects; call it as often as needed.
func (s *SwipeItem) Style() SwipeStyle {
	return SwipeStyle{
		Offset:  s.offset.Read(),
		Opacity: s.opacity.Read(),
		Height:  s.height.Read(),
	}
}

// Revealed reports whether the row is at (or settling toward) its revealed
// position.
func (s *SwipeItem) Revealed() bool { return s.revealed }

// Deleting reports whether the exit chain is running or finished.
func (s *SwipeItem) Deleting() bool { return s.deleting }

// Close springs a revealed row back to rest. No-op while deleting.
func (s *SwipeItem) Close() {
	if s.disposed || s.deleting || !s.revealed {
		return
	}
	s.snapBack()
}

// Dispose releases the row. In-flight motions are discarded without firing
// their completions, so an unmounted row never reports a delete it did not
// finish.
func (s *SwipeItem) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.offset.Dispose()
	s.opacity.Dispose()
	s.height.Dispose()
}
