package flick

import (
	"math"
	"testing"
)

// pairSamples builds one frame of two-pointer data.
func pairSamples(x0, y0, x1, y1 float64) []Sample {
	return []Sample{
		{ID: 1, X: x0, Y: y0, Down: true},
		{ID: 2, X: x1, Y: y1, Down: true},
	}
}

func TestPinchBeginsOnSecondContact(t *testing.T) {
	p := NewPinch()
	var start GestureState
	started := false
	p.OnStart = func(st GestureState) {
		started = true
		start = st
	}
	det := NewDetector(p)

	det.Feed(frameDt, touchDown(0, 0))
	if started || p.Phase() != PhaseIdle {
		t.Fatal("pinch must not begin with one pointer")
	}

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	if !started || p.Phase() != PhaseBegan {
		t.Fatalf("started=%v phase=%v after second contact, want true/Began", started, p.Phase())
	}
	if start.Scale != 1 {
		t.Errorf("scale at recognition = %f, want 1", start.Scale)
	}
	if start.Location.X != 50 || start.Location.Y != 0 {
		t.Errorf("location = %+v, want pair centroid {50 0}", start.Location)
	}
}

func TestPinchScaleIsRatioToStartDistance(t *testing.T) {
	p := NewPinch()
	var last GestureState
	p.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 150, 0))
	if last.Scale != 1.5 {
		t.Errorf("scale = %f after spreading to 150px, want 1.5", last.Scale)
	}

	det.Feed(frameDt, pairSamples(0, 0, 50, 0))
	if last.Scale != 0.5 {
		t.Errorf("scale = %f after closing to 50px, want 0.5", last.Scale)
	}
}

func TestPinchCentroidTracksPair(t *testing.T) {
	p := NewPinch()
	var last GestureState
	p.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(10, 20, 110, 20))

	if last.Location.X != 60 || last.Location.Y != 20 {
		t.Errorf("location = %+v after the pair moved, want {60 20}", last.Location)
	}
	if last.Scale != 1 {
		t.Errorf("scale = %f for a pure translation, want 1", last.Scale)
	}
}

func TestPinchEndsWhenEitherPointerLifts(t *testing.T) {
	p := NewPinch()
	ended := false
	p.OnEnd = func(GestureState) { ended = true }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 120, 0))
	det.Feed(frameDt, []Sample{
		{ID: 1, X: 0, Y: 0, Down: false},
		{ID: 2, X: 120, Y: 0, Down: true},
	})

	if !ended || p.Phase() != PhaseEnded {
		t.Errorf("ended=%v phase=%v after one pointer lifted, want true/Ended", ended, p.Phase())
	}
}

func TestPinchZeroDistancePairRejected(t *testing.T) {
	p := NewPinch()
	det := NewDetector(p)

	// Two contacts on the same pixel have no measurable separation.
	det.Feed(frameDt, pairSamples(50, 50, 50, 50))
	if p.Phase() != PhaseIdle {
		t.Fatalf("phase = %v for a zero-distance pair, want Idle", p.Phase())
	}

	// Once they separate the pinch can begin.
	det.Feed(frameDt, pairSamples(40, 50, 60, 50))
	if p.Phase() != PhaseBegan {
		t.Errorf("phase = %v after the pair separated, want Began", p.Phase())
	}
}

func TestPinchIgnoresThirdPointer(t *testing.T) {
	p := NewPinch()
	var last GestureState
	p.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, []Sample{
		{ID: 1, X: 0, Y: 0, Down: true},
		{ID: 2, X: 150, Y: 0, Down: true},
		{ID: 3, X: 999, Y: 999, Down: true},
	})

	if last.Scale != 1.5 {
		t.Errorf("scale = %f with a third pointer down, want 1.5 from the captured pair", last.Scale)
	}
	if last.Pointers != 3 {
		t.Errorf("pointers = %d, want 3", last.Pointers)
	}
}

func TestPinchScaleVelocity(t *testing.T) {
	p := NewPinch()
	var last GestureState
	p.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 110, 0))

	// Scale grew 0.1 in one 60fps frame: 6.0 per second.
	if math.Abs(last.ScaleVelocity-6.0) > 1e-6 {
		t.Errorf("scale velocity = %f, want ~6.0", last.ScaleVelocity)
	}
}

func TestPinchDisableMidGestureCancels(t *testing.T) {
	p := NewPinch()
	cancels := 0
	p.OnCancel = func(GestureState) { cancels++ }
	det := NewDetector(p)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	p.SetEnabled(false)

	if cancels != 1 || p.Phase() != PhaseCancelled {
		t.Errorf("cancels=%d phase=%v, want 1/Cancelled", cancels, p.Phase())
	}
}

func TestPinchRecognizesAgainNextSequence(t *testing.T) {
	p := NewPinch()
	starts := 0
	p.OnStart = func(GestureState) { starts++ }
	det := NewDetector(p)

	for i := 0; i < 2; i++ {
		det.Feed(frameDt, pairSamples(0, 0, 100, 0))
		det.Feed(frameDt, []Sample{
			{ID: 1, X: 0, Y: 0, Down: false},
			{ID: 2, X: 100, Y: 0, Down: false},
		})
	}
	if starts != 2 {
		t.Errorf("starts = %d across two sequences, want 2", starts)
	}
}

// --- Rotation ---

func TestRotationQuarterTurn(t *testing.T) {
	r := NewRotation()
	var last GestureState
	r.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(r)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 0, 100))

	if math.Abs(last.Rotation-math.Pi/2) > 1e-9 {
		t.Errorf("rotation = %f after a quarter turn, want %f", last.Rotation, math.Pi/2)
	}
}

func TestRotationAccumulatesPastHalfTurn(t *testing.T) {
	// A full twist must read 2*pi, not wrap back through the atan2 seam.
	r := NewRotation()
	var last GestureState
	r.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(r)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 0, 100))
	det.Feed(frameDt, pairSamples(0, 0, -100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 0, -100))
	det.Feed(frameDt, pairSamples(0, 0, 100, 0))

	if math.Abs(last.Rotation-2*math.Pi) > 1e-9 {
		t.Errorf("rotation = %f after a full twist, want %f", last.Rotation, 2*math.Pi)
	}
}

func TestRotationNegativeDirection(t *testing.T) {
	r := NewRotation()
	var last GestureState
	r.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(r)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 0, -100))

	if math.Abs(last.Rotation+math.Pi/2) > 1e-9 {
		t.Errorf("rotation = %f for a counter-clockwise quarter turn, want %f", last.Rotation, -math.Pi/2)
	}
}

func TestRotationVelocity(t *testing.T) {
	r := NewRotation()
	var last GestureState
	r.OnUpdate = func(st GestureState) { last = st }
	det := NewDetector(r)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, pairSamples(0, 0, 0, 100))

	want := (math.Pi / 2) / frameDt
	if math.Abs(last.RotationVelocity-want) > 1e-9 {
		t.Errorf("rotation velocity = %f, want %f", last.RotationVelocity, want)
	}
}

func TestRotationEndsOnLift(t *testing.T) {
	r := NewRotation()
	ended := false
	r.OnEnd = func(GestureState) { ended = true }
	det := NewDetector(r)

	det.Feed(frameDt, pairSamples(0, 0, 100, 0))
	det.Feed(frameDt, []Sample{
		{ID: 1, X: 0, Y: 0, Down: true},
		{ID: 2, X: 100, Y: 0, Down: false},
	})

	if !ended || r.Phase() != PhaseEnded {
		t.Errorf("ended=%v phase=%v, want true/Ended", ended, r.Phase())
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays", math.Pi, math.Pi},
		{"negative pi wraps up", -math.Pi, math.Pi},
		{"past pi wraps negative", 3 * math.Pi / 2, -math.Pi / 2},
		{"past negative pi wraps positive", -3 * math.Pi / 2, math.Pi / 2},
		{"full turn collapses", 2 * math.Pi, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("normalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}
