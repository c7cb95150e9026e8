package flick

import (
	"fmt"
	"os"
	"time"
)

// globalDebug gates the engine's stderr diagnostics: per-frame timing from
// components and disposed-value warnings.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, component
// Update calls print per-frame timing stats to stderr and operations on
// disposed values print a one-time warning instead of being silently
// ignored.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugStats holds per-frame interaction metrics.
// Only populated when debug mode is on.
type debugStats struct {
	feedTime    time.Duration
	stepTime    time.Duration
	samples     int
	activeCount int
}

// debugLog prints feed/step timing for one component frame to stderr.
func debugLog(component string, stats debugStats) {
	if !globalDebug {
		return
	}
	total := stats.feedTime + stats.stepTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[flick] %s feed: %v | step: %v | total: %v | samples: %d | animating: %d\n",
		component, stats.feedTime, stats.stepTime, total, stats.samples, stats.activeCount)
}

// animatingCount counts the values with a motion in flight.
func animatingCount(values ...*Value) int {
	count := 0
	for _, v := range values {
		if v != nil && v.Animating() {
			count++
		}
	}
	return count
}
