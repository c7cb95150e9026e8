package flick

import (
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"
)

// safeCall runs fn, recovering and logging any panic. Every callback the
// engine fires on behalf of the application goes through here: a throwing
// callback must never unwind into the frame loop.
func safeCall(where string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("flick: callback panic recovered", "where", where, "panic", r)
		}
	}()
	fn()
}

// Dispatcher carries application-level callbacks (delete confirmations,
// press actions, dismissal notifications) out of the interaction engine.
// Invoke must not block the caller on the callback's execution.
type Dispatcher interface {
	Invoke(fn func())
}

// AsyncDispatcher hands callbacks to a single background worker in
// submission order. The frame loop never waits on application logic; the
// worker survives panicking callbacks.
type AsyncDispatcher struct {
	pool   pond.Pool
	closed *atomic.Bool
}

// NewAsyncDispatcher creates a dispatcher backed by one worker goroutine.
func NewAsyncDispatcher() *AsyncDispatcher {
	return &AsyncDispatcher{
		pool:   pond.NewPool(1),
		closed: atomic.NewBool(false),
	}
}

// Invoke queues fn on the worker. Calls after Close are dropped and logged
// rather than executed on the caller's goroutine.
func (d *AsyncDispatcher) Invoke(fn func()) {
	if fn == nil {
		return
	}
	if d.closed.Load() {
		logger.Warn("flick: dispatch after close dropped")
		return
	}
	if err := d.pool.Go(func() {
		safeCall("dispatched callback", fn)
	}); err != nil {
		logger.Warn("flick: dispatch rejected", "error", err)
	}
}

// Close stops the worker after draining queued callbacks. Safe to call
// more than once.
func (d *AsyncDispatcher) Close() {
	if d.closed.CompareAndSwap(false, true) {
		d.pool.StopAndWait()
	}
}

// SyncDispatcher runs callbacks immediately on the caller's goroutine.
// Use it in tests for deterministic ordering; applications using it accept
// that slow callbacks stall the frame that fired them.
type SyncDispatcher struct{}

// Invoke runs fn now, recovering panics.
func (SyncDispatcher) Invoke(fn func()) {
	safeCall("dispatched callback", fn)
}

var defaultDispatcher struct {
	once sync.Once
	d    *AsyncDispatcher
}

// DefaultDispatcher returns the shared AsyncDispatcher components fall back
// to when their config carries none. Created lazily on first use and never
// closed.
func DefaultDispatcher() Dispatcher {
	defaultDispatcher.once.Do(func() {
		defaultDispatcher.d = NewAsyncDispatcher()
	})
	return defaultDispatcher.d
}
