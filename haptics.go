package flick

// Haptics delivers tactile feedback pulses for threshold crossings.
// Platforms without an actuator plug in NoopHaptics; the engine treats the
// implementation as an external collaborator and isolates its panics.
type Haptics interface {
	Pulse()
}

// NoopHaptics is the Haptics used when a component config carries none.
type NoopHaptics struct{}

// Pulse does nothing.
func (NoopHaptics) Pulse() {}

// hapticHysteresisFraction is how far back past the threshold the value
// must retreat, as a fraction of the threshold, before the latch re-arms.
// Jitter right at the threshold therefore produces one pulse, not a burst.
const hapticHysteresisFraction = 0.1

// thresholdLatch debounces threshold-crossing feedback: it fires once when
// the value passes the threshold and stays quiet until the value retreats
// past the hysteresis band.
type thresholdLatch struct {
	threshold float64
	fired     bool
}

// update advances the latch with the current value and reports whether a
// pulse should fire this frame.
func (l *thresholdLatch) update(value float64) bool {
	if !l.fired && value > l.threshold {
		l.fired = true
		return true
	}
	if l.fired && value < l.threshold*(1-hapticHysteresisFraction) {
		l.fired = false
	}
	return false
}

// reset re-arms the latch for a new gesture.
func (l *thresholdLatch) reset() {
	l.fired = false
}

// pulse fires h through the panic barrier.
func pulse(h Haptics) {
	if h == nil {
		return
	}
	safeCall("haptics pulse", h.Pulse)
}
