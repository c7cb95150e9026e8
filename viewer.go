package flick

import (
	"fmt"
	"math"
	"time"
)

const (
	defaultMaxScale        = 3.0
	defaultViewerOvershoot = 60.0

	// scaleOvershootBand is the rubber band for pinching past the scale
	// limits, as an absolute scale margin.
	scaleOvershootBand = 0.25

	quarterTurn = math.Pi / 2
)

// ViewerConfig configures a Viewer. Zero fields take defaults.
type ViewerConfig struct {
	// ContentSize is the content's size at scale 1. Required.
	ContentSize Vec2
	// ViewportSize is the visible area. Required. Pointer samples fed to
	// the viewer are interpreted in viewport coordinates.
	ViewportSize Vec2
	// MinScale is the smallest resting zoom. Defaults to 1.
	MinScale float64
	// MaxScale is the largest resting zoom. Defaults to 3 and must
	// exceed MinScale.
	MaxScale float64
	// DoubleTapScale is the zoom a double tap toggles to. Defaults to 2
	// (capped at MaxScale) and must lie within the scale limits.
	DoubleTapScale float64
	// Overshoot is the rubber-band distance in pixels the content may be
	// dragged past its pan bounds while a gesture is active. Defaults
	// to 60.
	Overshoot float64
}

// ViewerStyle is the per-frame drawing snapshot for a viewer. Translation
// is the offset of the content center from the viewport center.
type ViewerStyle struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotation   float64
}

// Viewer is a zoomable, rotatable content viewer: one finger pans, two
// fingers pinch and twist simultaneously, a double tap toggles between the
// minimum zoom and DoubleTapScale anchored at the tap point. While a
// gesture is active the content may rubber-band past its limits; on
// release springs pull scale into its limits, translation into the pan
// bounds, and rotation onto the nearest quarter turn.
type Viewer struct {
	cfg ViewerConfig

	tx       *Value
	ty       *Value
	scale    *Value
	rotation *Value

	pan   *Pan
	pinch *Pinch
	rot   *Rotation
	dtap  *DoubleTap
	det   *Detector

	basePan   Vec2
	baseScale float64
	baseRot   float64

	disposed bool
}

// NewViewer creates a viewer. Returns an error if the configuration is
// invalid.
func NewViewer(cfg ViewerConfig) (*Viewer, error) {
	if cfg.ContentSize.X <= 0 || cfg.ContentSize.Y <= 0 {
		return nil, fmt.Errorf("flick: viewer content size must be positive, got %+v", cfg.ContentSize)
	}
	if cfg.ViewportSize.X <= 0 || cfg.ViewportSize.Y <= 0 {
		return nil, fmt.Errorf("flick: viewer viewport size must be positive, got %+v", cfg.ViewportSize)
	}
	if cfg.MinScale < 0 || cfg.MaxScale < 0 || cfg.DoubleTapScale < 0 || cfg.Overshoot < 0 {
		return nil, fmt.Errorf("flick: viewer scales and overshoot must not be negative")
	}
	if cfg.MinScale == 0 {
		cfg.MinScale = 1
	}
	if cfg.MaxScale == 0 {
		cfg.MaxScale = defaultMaxScale
	}
	if cfg.MaxScale <= cfg.MinScale {
		return nil, fmt.Errorf("flick: viewer max scale %v must exceed min scale %v",
			cfg.MaxScale, cfg.MinScale)
	}
	if cfg.DoubleTapScale == 0 {
		cfg.DoubleTapScale = math.Min(2, cfg.MaxScale)
	}
	if cfg.DoubleTapScale < cfg.MinScale || cfg.DoubleTapScale > cfg.MaxScale {
		return nil, fmt.Errorf("flick: viewer double-tap scale %v must lie in [%v, %v]",
			cfg.DoubleTapScale, cfg.MinScale, cfg.MaxScale)
	}
	if cfg.Overshoot == 0 {
		cfg.Overshoot = defaultViewerOvershoot
	}

	pan, err := NewPan(PanConfig{})
	if err != nil {
		return nil, err
	}
	dtap, err := NewDoubleTap(DoubleTapConfig{})
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:      cfg,
		tx:       NewValue(0),
		ty:       NewValue(0),
		scale:    NewValue(cfg.MinScale),
		rotation: NewValue(0),
		pan:      pan,
		pinch:    NewPinch(),
		rot:      NewRotation(),
		dtap:     dtap,
	}
	pan.OnStart = v.panStart
	pan.OnUpdate = v.panMove
	pan.OnEnd = v.panEnd
	pan.OnCancel = v.panEnd
	v.pinch.OnStart = v.pinchStart
	v.pinch.OnUpdate = v.pinchMove
	v.pinch.OnEnd = v.pinchEnd
	v.pinch.OnCancel = v.pinchEnd
	v.rot.OnStart = v.rotateStart
	v.rot.OnUpdate = v.rotateMove
	v.rot.OnEnd = v.rotateEnd
	v.rot.OnCancel = v.rotateEnd
	dtap.OnEnd = v.doubleTapped

	// The transform recognizers all see every frame; the double tap sits
	// in its own exclusive group layered on top. The pan dead zone and
	// the tap's movement limit keep a sloppy tap from fighting a drag.
	v.det = NewDetector(Simultaneous(
		Simultaneous(pan, v.pinch, v.rot),
		Exclusive(dtap),
	))
	return v, nil
}

// panBounds returns the largest center offset that keeps content covering
// the viewport at the given scale, per axis. Content smaller than the
// viewport stays centered.
func (v *Viewer) panBounds(scale float64) Vec2 {
	return Vec2{
		X: math.Max(0, (v.cfg.ContentSize.X*scale-v.cfg.ViewportSize.X)/2),
		Y: math.Max(0, (v.cfg.ContentSize.Y*scale-v.cfg.ViewportSize.Y)/2),
	}
}

// rubberBand compresses an excess displacement into a band: small excess
// passes nearly through, infinite excess approaches the band width.
func rubberBand(excess, band float64) float64 {
	if band <= 0 || excess <= 0 {
		return 0
	}
	return band * (1 - 1/(excess/band+1))
}

// rubberClamp lets a value past [min, max] with rubber resistance.
func rubberClamp(value, min, max, band float64) float64 {
	if value < min {
		return min - rubberBand(min-value, band)
	}
	if value > max {
		return max + rubberBand(value-max, band)
	}
	return value
}

func (v *Viewer) panStart(GestureState) {
	v.basePan = Vec2{X: v.tx.Read(), Y: v.ty.Read()}
}

func (v *Viewer) panMove(st GestureState) {
	b := v.panBounds(v.scale.Read())
	v.tx.SetNow(rubberClamp(v.basePan.X+st.Translation.X, -b.X, b.X, v.cfg.Overshoot))
	v.ty.SetNow(rubberClamp(v.basePan.Y+st.Translation.Y, -b.Y, b.Y, v.cfg.Overshoot))
}

func (v *Viewer) panEnd(GestureState) {
	v.springIntoBounds(v.restingScale())
}

func (v *Viewer) pinchStart(GestureState) {
	v.baseScale = v.scale.Read()
}

func (v *Viewer) pinchMove(st GestureState) {
	target := rubberClamp(v.baseScale*st.Scale, v.cfg.MinScale, v.cfg.MaxScale, scaleOvershootBand)
	v.scale.SetNow(target)
}

func (v *Viewer) pinchEnd(GestureState) {
	resting := v.restingScale()
	if v.scale.Read() != resting {
		v.scale.Set(Spring(resting, SpringConfig{}))
	}
	v.springIntoBounds(resting)
}

// restingScale is the current scale hard-clamped into the limits.
func (v *Viewer) restingScale() float64 {
	return clamp(v.scale.Read(), v.cfg.MinScale, v.cfg.MaxScale)
}

func (v *Viewer) rotateStart(GestureState) {
	v.baseRot = v.rotation.Read()
}

func (v *Viewer) rotateMove(st GestureState) {
	v.rotation.SetNow(v.baseRot + st.Rotation)
}

// rotateEnd snaps the rotation to the nearest quarter turn.
func (v *Viewer) rotateEnd(GestureState) {
	target := math.Round(v.rotation.Read()/quarterTurn) * quarterTurn
	v.rotation.Set(Spring(target, SpringConfig{}))
}

// springIntoBounds pulls any out-of-bounds translation back inside the pan
// bounds for the given resting scale. In-bounds axes are left alone.
func (v *Viewer) springIntoBounds(atScale float64) {
	b := v.panBounds(atScale)
	if x := v.tx.Read(); x < -b.X || x > b.X {
		v.tx.Set(Spring(clamp(x, -b.X, b.X), SpringConfig{}))
	}
	if y := v.ty.Read(); y < -b.Y || y > b.Y {
		v.ty.Set(Spring(clamp(y, -b.Y, b.Y), SpringConfig{}))
	}
}

// doubleTapped toggles between the minimum zoom and DoubleTapScale. Zooming
// in anchors the content point under the tap; zooming out recenters.
func (v *Viewer) doubleTapped(st GestureState) {
	cur := v.scale.Read()
	zoomedIn := cur > (v.cfg.MinScale+v.cfg.DoubleTapScale)/2
	if zoomedIn {
		v.scale.Set(Spring(v.cfg.MinScale, SpringConfig{}))
		v.tx.Set(Spring(0, SpringConfig{}))
		v.ty.Set(Spring(0, SpringConfig{}))
		return
	}

	next := v.cfg.DoubleTapScale
	// Tap position relative to the viewport center.
	px := st.Location.X - v.cfg.ViewportSize.X/2
	py := st.Location.Y - v.cfg.ViewportSize.Y/2
	// Keep the content point under the tap fixed across the zoom.
	factor := next / cur
	b := v.panBounds(next)
	targetX := clamp(px-(px-v.tx.Read())*factor, -b.X, b.X)
	targetY := clamp(py-(py-v.ty.Read())*factor, -b.Y, b.Y)

	v.scale.Set(Spring(next, SpringConfig{}))
	v.tx.Set(Spring(targetX, SpringConfig{}))
	v.ty.Set(Spring(targetY, SpringConfig{}))
}

// Update advances the viewer by one frame.
func (v *Viewer) Update(dt float64, samples []Sample) {
	if v.disposed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	v.det.Feed(dt, samples)
	if globalDebug {
		stats.feedTime = time.Since(t0)
		t0 = time.Now()
	}
	v.tx.Step(dt)
	v.ty.Step(dt)
	v.scale.Step(dt)
	v.rotation.Step(dt)
	if globalDebug {
		stats.stepTime = time.Since(t0)
		stats.samples = len(samples)
		stats.activeCount = animatingCount(v.tx, v.ty, v.scale, v.rotation)
		debugLog("viewer", stats)
	}
}

// Style returns the current drawing snapshot.
func (v *Viewer) Style() ViewerStyle {
	return ViewerStyle{
		TranslateX: v.tx.Read(),
		TranslateY: v.ty.Read(),
		Scale:      v.scale.Read(),
		Rotation:   v.rotation.Read(),
	}
}

// Dispose releases the viewer.
func (v *Viewer) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.tx.Dispose()
	v.ty.Dispose()
	v.scale.Dispose()
	v.rotation.Dispose()
}
