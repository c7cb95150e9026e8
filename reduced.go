package flick

import (
	"sync"

	"go.uber.org/atomic"
)

// reducedMotion mirrors the platform accessibility preference. Values read
// it on every Set and Step, possibly from the game goroutine while a
// platform watcher writes it from another, hence the atomic.
var reducedMotion = atomic.NewBool(false)

type reducedMotionSubs struct {
	mu     sync.Mutex
	subs   []reducedMotionHandler
	nextID uint32
}

type reducedMotionHandler struct {
	id uint32
	fn func(enabled bool)
}

var reducedSubs reducedMotionSubs

// ReducedMotion reports whether the reduce-motion preference is enabled.
func ReducedMotion() bool {
	return reducedMotion.Load()
}

// SetReducedMotion updates the reduce-motion preference. Platform adapters
// call this from their change-notification watcher; applications can call
// it directly to force the behavior. Subscribers registered with
// OnReducedMotionChanged are notified on the caller's goroutine when the
// value actually changes.
//
// While enabled, every motion, including those already in flight when the
// preference flips, jumps straight to its target on its next Step and
// completes with finished=true.
func SetReducedMotion(enabled bool) {
	if reducedMotion.Swap(enabled) == enabled {
		return
	}
	reducedSubs.mu.Lock()
	subs := make([]reducedMotionHandler, len(reducedSubs.subs))
	copy(subs, reducedSubs.subs)
	reducedSubs.mu.Unlock()
	for _, h := range subs {
		fn := h.fn
		safeCall("reduced motion subscriber", func() { fn(enabled) })
	}
}

// ReducedMotionHandle allows removing a reduced-motion subscription.
type ReducedMotionHandle struct {
	id uint32
}

// OnReducedMotionChanged registers fn to run whenever the reduce-motion
// preference flips. fn runs on whichever goroutine calls SetReducedMotion.
func OnReducedMotionChanged(fn func(enabled bool)) ReducedMotionHandle {
	reducedSubs.mu.Lock()
	defer reducedSubs.mu.Unlock()
	reducedSubs.nextID++
	id := reducedSubs.nextID
	reducedSubs.subs = append(reducedSubs.subs, reducedMotionHandler{id: id, fn: fn})
	return ReducedMotionHandle{id: id}
}

// Remove unregisters this subscription so it no longer fires.
func (h ReducedMotionHandle) Remove() {
	reducedSubs.mu.Lock()
	defer reducedSubs.mu.Unlock()
	s := reducedSubs.subs
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = reducedMotionHandler{}
			reducedSubs.subs = s[:len(s)-1]
			return
		}
	}
}
