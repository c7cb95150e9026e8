package flick

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// ModalFamily selects the presentation animation of a Modal.
type ModalFamily uint8

const (
	ModalFade      ModalFamily = iota // content fades in place
	ModalScale                        // content fades while scaling up from 92%
	ModalSlideUp                      // content slides up from the bottom edge
	ModalSlideDown                    // content slides down from the top edge
)

// ModalState is the lifecycle state of a Modal.
type ModalState uint8

const (
	ModalHidden  ModalState = iota // not presented
	ModalShowing                   // entrance animation running
	ModalShown                     // presented and interactive
	ModalHiding                    // exit animation running
)

// String returns the state name for debugging.
func (s ModalState) String() string {
	switch s {
	case ModalHidden:
		return "Hidden"
	case ModalShowing:
		return "Showing"
	case ModalShown:
		return "Shown"
	case ModalHiding:
		return "Hiding"
	default:
		return "Unknown"
	}
}

const (
	defaultModalDuration      = 250 * time.Millisecond
	defaultModalSlideDistance = 480.0

	// modalDismissFraction of the slide distance is the default dismiss
	// threshold.
	modalDismissFraction = 0.35

	backdropMaxOpacity = 0.5
	modalScaleStart    = 0.92
)

// ModalConfig configures a Modal. Zero fields take defaults.
type ModalConfig struct {
	// Family selects the entrance and exit animation.
	Family ModalFamily
	// Duration of entrance and exit. Defaults to 250ms.
	Duration time.Duration
	// SlideDistance is the content travel in pixels: the off-screen
	// distance for slide families and the full drag range for gesture
	// dismissal of every family. Defaults to 480.
	SlideDistance float64
	// Thresholds for dismissal resolution. DismissDistance defaults to
	// 35% of SlideDistance and VelocityThreshold to 500 px/s. Modals have
	// no reveal tier; a non-zero RevealWidth is a configuration error.
	Thresholds Thresholds
	// Deceleration for dismissal flings. Defaults to 0.998.
	Deceleration float64
	// Haptics pulses when the drag crosses the dismiss threshold.
	Haptics Haptics
	// Dispatcher carries OnShown and OnDismissed to the application.
	Dispatcher Dispatcher
	// OnShown fires when the entrance animation completes.
	OnShown func()
	// OnDismissed fires when the modal reaches Hidden, whether by gesture
	// or by Hide.
	OnDismissed func()
}

// ModalStyle is the per-frame drawing snapshot for a modal.
type ModalStyle struct {
	Backdrop         float64 // backdrop opacity, 0 to 0.5
	ContentOpacity   float64 // content opacity, 0 to 1
	ContentScale     float64 // content scale, around 1
	ContentTranslate float64 // content offset in pixels along the slide axis
}

// Modal is an animated presentation surface: show it with an entrance
// animation chosen by family, drag it along the dismiss axis to tear it
// down, or call Hide for a programmatic exit. The drag drives the content
// directly and the backdrop dims in lockstep; a release resolves through
// Resolve with no reveal tier, so it either commits the dismissal, flings,
// or snaps back to Shown.
//
// Gestures are accepted only in the Shown state. Show and Hide during an
// animation are no-ops.
type Modal struct {
	cfg ModalConfig

	state ModalState

	backdrop       *Value
	contentOpacity *Value
	contentScale   *Value
	translate      *Value

	pan   *Pan
	det   *Detector
	latch thresholdLatch

	disposed bool
}

// NewModal creates a modal. Returns an error if the configuration is
// invalid.
func NewModal(cfg ModalConfig) (*Modal, error) {
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("flick: modal duration must not be negative, got %v", cfg.Duration)
	}
	if cfg.SlideDistance < 0 {
		return nil, fmt.Errorf("flick: modal slide distance must not be negative, got %v", cfg.SlideDistance)
	}
	if err := cfg.Thresholds.validate(); err != nil {
		return nil, err
	}
	if cfg.Thresholds.RevealWidth != 0 {
		return nil, fmt.Errorf("flick: modal thresholds have no reveal tier; RevealWidth must be 0")
	}
	if cfg.Deceleration != 0 && (cfg.Deceleration <= 0 || cfg.Deceleration >= 1) {
		return nil, fmt.Errorf("flick: modal deceleration must be in (0, 1), got %v", cfg.Deceleration)
	}
	if cfg.Duration == 0 {
		cfg.Duration = defaultModalDuration
	}
	if cfg.SlideDistance == 0 {
		cfg.SlideDistance = defaultModalSlideDistance
	}
	if cfg.Thresholds.DismissDistance == 0 {
		cfg.Thresholds.DismissDistance = cfg.SlideDistance * modalDismissFraction
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

	pan, err := NewPan(PanConfig{Axis: AxisVertical})
	if err != nil {
		return nil, err
	}

	m := &Modal{
		cfg:            cfg,
		backdrop:       NewValue(0),
		contentOpacity: NewValue(0),
		contentScale:   NewValue(1),
		translate:      NewValue(0),
		pan:            pan,
		latch:          thresholdLatch{threshold: cfg.Thresholds.DismissDistance},
	}
	pan.OnStart = m.dragStart
	pan.OnUpdate = m.dragMove
	pan.OnEnd = m.dragEnd
	pan.OnCancel = m.dragCancel
	pan.SetEnabled(false)
	m.det = NewDetector(pan)
	return m, nil
}

// dismissSign maps the dismiss direction onto the screen Y axis: a modal
// that slid up from the bottom dismisses downward, one that slid down from
// the top dismisses upward, and the in-place families dismiss downward.
func (m *Modal) dismissSign() float64 {
	if m.cfg.Family == ModalSlideDown {
		return -1
	}
	return 1
}

// hiddenTranslate is the content offset in the Hidden state.
func (m *Modal) hiddenTranslate() float64 {
	switch m.cfg.Family {
	case ModalSlideUp:
		return m.cfg.SlideDistance
	case ModalSlideDown:
		return -m.cfg.SlideDistance
	default:
		return 0
	}
}

// State returns the modal's lifecycle state.
func (m *Modal) State() ModalState { return m.state }

// Show starts the entrance animation. No-op unless the modal is Hidden.
func (m *Modal) Show() {
	if m.disposed || m.state != ModalHidden {
		return
	}
	m.state = ModalShowing

	m.backdrop.SetNow(0)
	m.backdrop.Set(Timed(backdropMaxOpacity, TimedConfig{Duration: m.cfg.Duration}))

	switch m.cfg.Family {
	case ModalScale:
		m.translate.SetNow(0)
		m.contentScale.SetNow(modalScaleStart)
		m.contentScale.Set(Spring(1, SpringConfig{}))
		m.contentOpacity.SetNow(0)
		m.contentOpacity.Set(Timed(1, TimedConfig{
			Duration:   m.cfg.Duration,
			OnComplete: m.showComplete,
		}))
	case ModalSlideUp, ModalSlideDown:
		m.contentOpacity.SetNow(1)
		m.contentScale.SetNow(1)
		m.translate.SetNow(m.hiddenTranslate())
		m.translate.Set(Timed(0, TimedConfig{
			Duration:   m.cfg.Duration,
			Easing:     ease.OutCubic,
			OnComplete: m.showComplete,
		}))
	default: // ModalFade
		m.translate.SetNow(0)
		m.contentScale.SetNow(1)
		m.contentOpacity.SetNow(0)
		m.contentOpacity.Set(Timed(1, TimedConfig{
			Duration:   m.cfg.Duration,
			OnComplete: m.showComplete,
		}))
	}
}

func (m *Modal) showComplete(finished bool) {
	if !finished || m.state != ModalShowing {
		return
	}
	m.state = ModalShown
	m.pan.SetEnabled(true)
	if m.cfg.OnShown != nil {
		m.cfg.Dispatcher.Invoke(m.cfg.OnShown)
	}
}

// Hide starts the exit animation. No-op unless the modal is Shown.
func (m *Modal) Hide() {
	if m.disposed || m.state != ModalShown {
		return
	}
	m.exit()
}

// exit runs the family's exit animation from the current visual state and
// reports the dismissal when it completes.
func (m *Modal) exit() {
	m.state = ModalHiding
	m.pan.SetEnabled(false)

	m.backdrop.Set(Timed(0, TimedConfig{Duration: m.cfg.Duration}))

	switch m.cfg.Family {
	case ModalScale:
		m.contentScale.Set(Timed(modalScaleStart, TimedConfig{Duration: m.cfg.Duration}))
		m.contentOpacity.Set(Timed(0, TimedConfig{
			Duration:   m.cfg.Duration,
			OnComplete: m.hideComplete,
		}))
	case ModalSlideUp, ModalSlideDown:
		m.translate.Set(Timed(m.hiddenTranslate(), TimedConfig{
			Duration:   m.cfg.Duration,
			Easing:     ease.OutQuad,
			OnComplete: m.hideComplete,
		}))
	default: // ModalFade
		m.contentOpacity.Set(Timed(0, TimedConfig{
			Duration:   m.cfg.Duration,
			OnComplete: m.hideComplete,
		}))
	}
}

func (m *Modal) hideComplete(finished bool) {
	if !finished || m.state != ModalHiding {
		return
	}
	m.state = ModalHidden
	if m.cfg.OnDismissed != nil {
		m.cfg.Dispatcher.Invoke(m.cfg.OnDismissed)
	}
}

func (m *Modal) dragStart(GestureState) {
	m.latch.reset()
}

// dragMove pins the content to the finger along the dismiss axis and dims
// the backdrop in lockstep. Dragging against the dismiss direction holds
// at the presented position.
func (m *Modal) dragMove(st GestureState) {
	if m.state != ModalShown {
		return
	}
	progress := clamp(m.dismissSign()*st.Translation.Y, 0, m.cfg.SlideDistance)
	m.translate.SetNow(m.dismissSign() * progress)
	m.backdrop.SetNow(backdropMaxOpacity * (1 - progress/m.cfg.SlideDistance))
	if m.latch.update(progress) {
		pulse(m.cfg.Haptics)
	}
}

func (m *Modal) dragEnd(st GestureState) {
	if m.state != ModalShown {
		return
	}
	progress := m.dismissSign() * m.translate.Read()
	res := Resolve(progress, m.dismissSign()*st.Velocity.Y, true, m.cfg.Thresholds)
	switch res.Outcome {
	case OutcomeCommit:
		m.exit()
	case OutcomeFling:
		m.fling(st.Velocity.Y)
	default:
		m.snapBackShown()
	}
}

func (m *Modal) dragCancel(GestureState) {
	if m.state != ModalShown {
		return
	}
	m.snapBackShown()
}

// fling coasts the content on a clamped decay and decides at rest whether
// the dismissal committed.
func (m *Modal) fling(velocityY float64) {
	bounds := Range{Min: 0, Max: m.cfg.SlideDistance}
	if m.dismissSign() < 0 {
		bounds = Range{Min: -m.cfg.SlideDistance, Max: 0}
	}
	m.translate.Set(Decay(velocityY, DecayConfig{
		Deceleration: m.cfg.Deceleration,
		Clamp:        &bounds,
		OnComplete: func(finished bool) {
			if !finished || m.disposed || m.state != ModalShown {
				return
			}
			progress := m.dismissSign() * m.translate.Read()
			res := ResolveSettled(progress, true, m.cfg.Thresholds)
			if res.Outcome == OutcomeCommit {
				m.exit()
			} else {
				m.snapBackShown()
			}
		},
	}))
}

func (m *Modal) snapBackShown() {
	m.translate.Set(Spring(0, SpringConfig{}))
	m.backdrop.Set(Timed(backdropMaxOpacity, TimedConfig{Duration: m.cfg.Duration / 2}))
}

// Update advances the modal by one frame: feeds pointer samples to the
// recognizer, then steps the animated values.
func (m *Modal) Update(dt float64, samples []Sample) {
	if m.disposed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	m.det.Feed(dt, samples)
	if globalDebug {
		stats.feedTime = time.Since(t0)
		t0 = time.Now()
	}
	m.backdrop.Step(dt)
	m.contentOpacity.Step(dt)
	m.contentScale.Step(dt)
	m.translate.Step(dt)
	if globalDebug {
		stats.stepTime = time.Since(t0)
		stats.samples = len(samples)
		stats.activeCount = animatingCount(m.backdrop, m.contentOpacity, m.contentScale, m.translate)
		debugLog("modal", stats)
	}
}

// Style returns the current drawing snapshot.
func (m *Modal) Style() ModalStyle {
	return ModalStyle{
		Backdrop:         m.backdrop.Read(),
		ContentOpacity:   m.contentOpacity.Read(),
		ContentScale:     m.contentScale.Read(),
		ContentTranslate: m.translate.Read(),
	}
}

// Dispose releases the modal. In-flight motions are discarded without
// firing their completions.
func (m *Modal) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.backdrop.Dispose()
	m.contentOpacity.Dispose()
	m.contentScale.Dispose()
	m.translate.Dispose()
}
