package flick

import (
	"log/slog"
	"math"
)

// Vec2 is a 2D vector used for positions, translations, velocities, and
// sizes throughout the API. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Range is a general-purpose min/max interval.
// Used by decay clamping (DecayConfig) and pan bounds.
type Range struct {
	Min, Max float64
}

// Clamp returns value limited to [Min, Max].
func (r Range) Clamp(value float64) float64 {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}

// Contains reports whether value lies inside the range.
// Values on the boundary are considered inside.
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Sample is one raw pointer observation for one frame. A pointer is a touch
// contact or a mouse button press; IDs are stable for the lifetime of a
// contact and may be reused after release. Down is false exactly once, on
// the frame the contact lifts, with X and Y holding the final position.
type Sample struct {
	ID   int
	X, Y float64
	Down bool
}

// Axis restricts which displacement component a pan recognizer measures
// against its dead zone.
type Axis uint8

const (
	AxisAny        Axis = iota // either axis may trip the dead zone (default)
	AxisHorizontal             // only horizontal displacement counts
	AxisVertical               // only vertical displacement counts
)

// maxPointers is the number of simultaneously tracked pointers:
// one mouse pointer plus up to nine touches.
const maxPointers = 10

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// logger receives engine diagnostics: recovered callback panics, dropped
// dispatches, motion stepper failures. Defaults to slog's default logger.
var logger = slog.Default()

// SetLogger replaces the engine's diagnostic logger. Pass nil to restore
// the default. Call before the game loop starts; the logger is read without
// synchronization afterwards.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.Default()
		return
	}
	logger = l
}
