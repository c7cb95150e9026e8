package flick

import (
	"io"
	"log/slog"
	"testing"
)

type countingHaptics struct {
	pulses int
}

func (h *countingHaptics) Pulse() { h.pulses++ }

func TestThresholdLatchFiresOncePerCrossing(t *testing.T) {
	l := thresholdLatch{threshold: 150}

	if l.update(100) {
		t.Error("latch fired below the threshold")
	}
	if !l.update(151) {
		t.Error("latch did not fire on crossing")
	}
	if l.update(160) || l.update(200) {
		t.Error("latch fired again while held past the threshold")
	}
}

func TestThresholdLatchJitterSuppressed(t *testing.T) {
	// Oscillating right at the threshold must not buzz: the latch only
	// re-arms once the value retreats past the hysteresis band.
	l := thresholdLatch{threshold: 150}

	if !l.update(151) {
		t.Fatal("latch did not fire on first crossing")
	}
	for _, v := range []float64{149, 151, 148, 152, 140} {
		if l.update(v) {
			t.Errorf("latch fired at %v inside the hysteresis band", v)
		}
	}
}

func TestThresholdLatchRearmsPastHysteresis(t *testing.T) {
	l := thresholdLatch{threshold: 150}

	l.update(151)
	// 10% band: re-arms below 135.
	if l.update(136) {
		t.Error("latch fired while re-arming")
	}
	l.update(134)
	if !l.update(151) {
		t.Error("latch did not fire after a full retreat and re-crossing")
	}
}

func TestThresholdLatchExactThresholdDoesNotFire(t *testing.T) {
	l := thresholdLatch{threshold: 150}
	if l.update(150) {
		t.Error("crossing must be strict; exactly the threshold is not past it")
	}
}

func TestThresholdLatchReset(t *testing.T) {
	l := thresholdLatch{threshold: 150}
	l.update(151)
	l.reset()
	if !l.update(151) {
		t.Error("latch did not fire after reset; a new gesture starts armed")
	}
}

func TestPulseNilSafe(t *testing.T) {
	pulse(nil) // must not panic
	pulse(NoopHaptics{})
}

func TestPulsePanicIsolated(t *testing.T) {
	prev := logger
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer SetLogger(prev)

	pulse(panickyHaptics{})
}

type panickyHaptics struct{}

func (panickyHaptics) Pulse() { panic("actuator exploded") }

func TestPulseDelivers(t *testing.T) {
	h := &countingHaptics{}
	pulse(h)
	pulse(h)
	if h.pulses != 2 {
		t.Errorf("pulses = %d, want 2", h.pulses)
	}
}
