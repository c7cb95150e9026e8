package flick

import "math"

// pairTracker captures the two pointers of a two-pointer gesture when the
// second contact lands and measures their separation and orientation each
// frame. Both Pinch and Rotation embed one; each recognizer tracks its own
// pair so composed recognizers never share mutable state.
type pairTracker struct {
	slot0, slot1 int
	startDist    float64
	startAngle   float64
	prevDist     float64
	prevAngle    float64
}

// capture finds the two down slots and records the starting geometry.
// Returns false when the contacts are degenerate (zero separation).
func (pt *pairTracker) capture(f *frame) bool {
	pt.slot0, pt.slot1 = -1, -1
	for i := range f.tracks {
		if !f.tracks[i].down {
			continue
		}
		if pt.slot0 < 0 {
			pt.slot0 = i
		} else {
			pt.slot1 = i
			break
		}
	}
	if pt.slot1 < 0 {
		return false
	}
	dist, angle := pt.measure(f)
	if dist == 0 {
		return false
	}
	pt.startDist = dist
	pt.startAngle = angle
	pt.prevDist = dist
	pt.prevAngle = angle
	return true
}

func (pt *pairTracker) measure(f *frame) (dist, angle float64) {
	t0 := &f.tracks[pt.slot0]
	t1 := &f.tracks[pt.slot1]
	dx := t1.x - t0.x
	dy := t1.y - t0.y
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

func (pt *pairTracker) centroid(f *frame) Vec2 {
	t0 := &f.tracks[pt.slot0]
	t1 := &f.tracks[pt.slot1]
	return Vec2{X: (t0.x + t1.x) / 2, Y: (t0.y + t1.y) / 2}
}

// lifted reports whether either captured pointer has released.
func (pt *pairTracker) lifted(f *frame) bool {
	return !f.tracks[pt.slot0].down || !f.tracks[pt.slot1].down
}

// normalizeAngle wraps a into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Pinch recognizes a two-pointer scale gesture. It Begins the moment a
// second pointer lands, reports Scale as the ratio of the current pointer
// separation to the separation at recognition, and Ends when either
// captured pointer lifts. Extra pointers beyond the captured pair are
// ignored.
type Pinch struct {
	OnStart  func(GestureState)
	OnUpdate func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	core     gestureCore
	pair     pairTracker
	velocity scalarVelocityTracker
}

// NewPinch creates a pinch recognizer.
func NewPinch() *Pinch {
	return &Pinch{core: newGestureCore()}
}

// Phase returns the recognizer's current lifecycle phase.
func (p *Pinch) Phase() Phase { return p.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling while a pinch
// is in progress cancels it immediately.
func (p *Pinch) SetEnabled(enabled bool) {
	if p.core.enabled == enabled {
		return
	}
	p.core.enabled = enabled
	if !enabled {
		p.forceCancel()
	}
}

// Enabled reports whether the recognizer is accepting input.
func (p *Pinch) Enabled() bool { return p.core.enabled }

func (p *Pinch) phase() Phase { return p.core.st.Phase }

func (p *Pinch) feed(f *frame) {
	if !p.core.enabled || p.core.locked {
		return
	}
	st := &p.core.st
	st.Pointers = f.downCount

	switch st.Phase {
	case PhaseIdle:
		if f.downCount < 2 || !p.pair.capture(f) {
			return
		}
		st.Location = p.pair.centroid(f)
		st.Start = st.Location
		st.Scale = 1
		p.velocity.reset()
		st.Phase = PhaseBegan
		p.core.emit(p.OnStart, "pinch OnStart")
	case PhaseBegan, PhaseActive:
		if p.pair.lifted(f) {
			st.Phase = PhaseEnded
			p.core.emit(p.OnEnd, "pinch OnEnd")
			return
		}
		dist, _ := p.pair.measure(f)
		scale := dist / p.pair.startDist
		prevScale := p.pair.prevDist / p.pair.startDist
		p.velocity.sample(scale-prevScale, f.dt)
		p.pair.prevDist = dist

		st.Location = p.pair.centroid(f)
		st.Scale = scale
		st.ScaleVelocity = p.velocity.v
		st.Phase = PhaseActive
		p.core.emit(p.OnUpdate, "pinch OnUpdate")
	}
}

func (p *Pinch) forceCancel() {
	switch p.core.st.Phase {
	case PhaseBegan, PhaseActive:
		p.core.st.Phase = PhaseCancelled
		p.core.locked = true
		p.core.emit(p.OnCancel, "pinch OnCancel")
	case PhaseIdle:
		p.core.st.Phase = PhaseCancelled
		p.core.locked = true
	}
}

func (p *Pinch) reset() {
	p.core.resetSequence()
	p.velocity.reset()
}

// Rotation recognizes a two-pointer twist gesture. It Begins when a second
// pointer lands and reports the cumulative signed angle swept by the pair,
// built from per-frame deltas normalized into (-pi, pi] so the value stays
// continuous across the atan2 seam.
type Rotation struct {
	OnStart  func(GestureState)
	OnUpdate func(GestureState)
	OnEnd    func(GestureState)
	OnCancel func(GestureState)

	core     gestureCore
	pair     pairTracker
	total    float64
	velocity scalarVelocityTracker
}

// NewRotation creates a rotation recognizer.
func NewRotation() *Rotation {
	return &Rotation{core: newGestureCore()}
}

// Phase returns the recognizer's current lifecycle phase.
func (r *Rotation) Phase() Phase { return r.core.st.Phase }

// SetEnabled enables or disables the recognizer. Disabling while a
// rotation is in progress cancels it immediately.
func (r *Rotation) SetEnabled(enabled bool) {
	if r.core.enabled == enabled {
		return
	}
	r.core.enabled = enabled
	if !enabled {
		r.forceCancel()
	}
}

// Enabled reports whether the recognizer is accepting input.
func (r *Rotation) Enabled() bool { return r.core.enabled }

func (r *Rotation) phase() Phase { return r.core.st.Phase }

func (r *Rotation) feed(f *frame) {
	if !r.core.enabled || r.core.locked {
		return
	}
	st := &r.core.st
	st.Pointers = f.downCount

	switch st.Phase {
	case PhaseIdle:
		if f.downCount < 2 || !r.pair.capture(f) {
			return
		}
		st.Location = r.pair.centroid(f)
		st.Start = st.Location
		r.total = 0
		r.velocity.reset()
		st.Phase = PhaseBegan
		r.core.emit(r.OnStart, "rotation OnStart")
	case PhaseBegan, PhaseActive:
		if r.pair.lifted(f) {
			st.Phase = PhaseEnded
			r.core.emit(r.OnEnd, "rotation OnEnd")
			return
		}
		_, angle := r.pair.measure(f)
		delta := normalizeAngle(angle - r.pair.prevAngle)
		r.pair.prevAngle = angle
		r.total += delta
		r.velocity.sample(delta, f.dt)

		st.Location = r.pair.centroid(f)
		st.Rotation = r.total
		st.RotationVelocity = r.velocity.v
		st.Phase = PhaseActive
		r.core.emit(r.OnUpdate, "rotation OnUpdate")
	}
}

func (r *Rotation) forceCancel() {
	switch r.core.st.Phase {
	case PhaseBegan, PhaseActive:
		r.core.st.Phase = PhaseCancelled
		r.core.locked = true
		r.core.emit(r.OnCancel, "rotation OnCancel")
	case PhaseIdle:
		r.core.st.Phase = PhaseCancelled
		r.core.locked = true
	}
}

func (r *Rotation) reset() {
	r.core.resetSequence()
	r.velocity.reset()
}
