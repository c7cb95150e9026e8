package flick

import (
	"math"
	"testing"
)

// runDecay steps the motion at 60 ticks per second until it settles,
// returning the final position and the frame count.
func runDecay(t *testing.T, m Motion, maxFrames int) (float64, int) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		current, _, settled := m.step(frameDt)
		if settled {
			return current, i + 1
		}
	}
	t.Fatalf("decay did not settle within %d frames", maxFrames)
	return 0, 0
}

func TestDecayComesToRest(t *testing.T) {
	m := Decay(900, DecayConfig{})
	m.init(0, 0)

	final, frames := runDecay(t, m, 600)

	// The closed form is the continuous limit; the discrete 60Hz
	// integration lands within a few percent of it.
	want := DecayRest(0, 900, defaultDeceleration)
	if math.Abs(final-want)/want > 0.03 {
		t.Errorf("rest position = %f, want within 3%% of %f", final, want)
	}
	if frames < 60 {
		t.Errorf("decay rested after only %d frames; a 900px/s fling should coast for seconds", frames)
	}
}

func TestDecayVelocityShrinksMonotonically(t *testing.T) {
	m := Decay(600, DecayConfig{})
	m.init(0, 0)

	prev := 600.0
	for i := 0; i < 100; i++ {
		_, velocity, settled := m.step(frameDt)
		if math.Abs(velocity) > prev {
			t.Fatalf("velocity grew at frame %d: %f -> %f", i, prev, velocity)
		}
		prev = math.Abs(velocity)
		if settled {
			break
		}
	}
}

func TestDecayClampStopsDead(t *testing.T) {
	bounds := Range{Min: -300, Max: 0}
	m := Decay(-900, DecayConfig{Clamp: &bounds})
	m.init(0, 0)

	final, frames := runDecay(t, m, 600)
	if final != -300 {
		t.Errorf("clamped decay rested at %f, want exactly -300", final)
	}
	// A 900px/s fling covers 300px in well under a second.
	if frames > 60 {
		t.Errorf("clamped decay took %d frames to reach the bound, want < 60", frames)
	}

	// Settled at the bound with zero velocity, no bounce.
	current, velocity, settled := m.step(frameDt)
	if !settled || current != -300 || velocity != 0 {
		t.Errorf("after clamp stop: current=%f velocity=%f settled=%v, want -300, 0, true", current, velocity, settled)
	}
}

func TestDecayClampAtStartingBound(t *testing.T) {
	// Flinging outward from a bound stops dead on the first step.
	bounds := Range{Min: -300, Max: 0}
	m := Decay(50, DecayConfig{Clamp: &bounds})
	m.init(0, 0)

	current, _, settled := m.step(frameDt)
	if !settled || current != 0 {
		t.Errorf("outward fling from bound: current=%f settled=%v, want 0, true", current, settled)
	}
}

func TestDecaySlowVelocityRestsImmediately(t *testing.T) {
	m := Decay(0.5, DecayConfig{})
	m.init(10, 0)

	current, _, settled := m.step(frameDt)
	if !settled {
		t.Fatal("sub-threshold velocity should rest on the first step")
	}
	if math.Abs(current-10) > 0.1 {
		t.Errorf("current = %f, want ~10", current)
	}
}

func TestDecayCustomDeceleration(t *testing.T) {
	// A harsher deceleration rests sooner and travels less.
	soft := Decay(900, DecayConfig{Deceleration: 0.998})
	hard := Decay(900, DecayConfig{Deceleration: 0.99})
	soft.init(0, 0)
	hard.init(0, 0)

	softFinal, softFrames := runDecay(t, soft, 1000)
	hardFinal, hardFrames := runDecay(t, hard, 1000)

	if hardFinal >= softFinal {
		t.Errorf("harsher deceleration should travel less: hard=%f soft=%f", hardFinal, softFinal)
	}
	if hardFrames >= softFrames {
		t.Errorf("harsher deceleration should rest sooner: hard=%d soft=%d frames", hardFrames, softFrames)
	}
}

func TestDecayRestClosedForm(t *testing.T) {
	tests := []struct {
		name                  string
		from, velocity, decel float64
		want                  float64
	}{
		{"rightward fling", 0, 900, 0.998, 449.55},
		{"leftward fling", 0, -900, 0.998, -449.55},
		{"from offset", -160, -80, 0.998, -199.96},
		{"zero velocity", 42, 0, 0.998, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecayRest(tt.from, tt.velocity, tt.decel)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("DecayRest(%v, %v, %v) = %f, want ~%f",
					tt.from, tt.velocity, tt.decel, got, tt.want)
			}
		})
	}
}

func TestDecayTargetMatchesClampedRest(t *testing.T) {
	bounds := Range{Min: -300, Max: 0}
	m := Decay(-900, DecayConfig{Clamp: &bounds})
	m.init(0, 0)

	// The natural rest of a 900px/s fling is past the bound, so the
	// reduce-motion target is the bound itself.
	if got := m.target(); got != -300 {
		t.Errorf("clamped decay target = %f, want -300", got)
	}

	free := Decay(-80, DecayConfig{})
	free.init(-160, 0)
	want := DecayRest(-160, -80, defaultDeceleration)
	if got := free.target(); math.Abs(got-want) > 1e-9 {
		t.Errorf("unclamped decay target = %f, want %f", got, want)
	}
}

func TestDecayInvalidDecelerationPanics(t *testing.T) {
	for _, d := range []float64{-0.5, 1.0, 1.5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for deceleration %v", d)
				}
			}()
			Decay(100, DecayConfig{Deceleration: d})
		}()
	}
}

func TestDecayRestInvalidDecelerationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for deceleration 1.0")
		}
	}()
	DecayRest(0, 100, 1.0)
}

func TestDecayStepZeroAlloc(t *testing.T) {
	m := Decay(900, DecayConfig{})
	m.init(0, 0)
	m.step(frameDt)

	result := testing.AllocsPerRun(100, func() {
		m.step(frameDt)
	})
	if result > 0 {
		t.Errorf("decay step allocated %f times per run, want 0", result)
	}
}
