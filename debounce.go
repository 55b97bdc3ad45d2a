package pacez

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Debouncer delays invoking its callback until the delay has elapsed
// since the most recent Call. Only the last argument survives.
type Debouncer[A any] struct {
	clock   clockz.Clock
	fn      func(A)
	pending *pendingCall // nil when nothing is scheduled
	latest  *A           // nil when no call is buffered
	delay   time.Duration
	mu      sync.Mutex
}

// Debounce creates a debounced wrapper around fn.
//
// Each Call restarts the delay window, so a steady stream of calls
// postpones fn indefinitely. When the window finally elapses, fn runs once
// with the argument of the last call.
//
// Example:
//
//	search := pacez.Debounce(func(q string) {
//		results, _ := index.Query(q)
//		render(results)
//	}, 300*time.Millisecond)
//
//	for key := range keystrokes {
//		search.Call(buffer.String())
//	}
func Debounce[A any](fn func(A), delay time.Duration, opts ...Option) *Debouncer[A] {
	cfg := newConfig(opts)
	return &Debouncer[A]{
		clock: cfg.clock,
		fn:    fn,
		delay: delay,
	}
}

// Call buffers args and restarts the delay window.
func (d *Debouncer[A]) Call(args A) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = &args

	// Reset the window: the previous invocation never runs.
	d.pending.stop()

	p := &pendingCall{}
	p.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(p)
	})
	d.pending = p
}

// fire runs the deferred invocation scheduled as p.
func (d *Debouncer[A]) fire(p *pendingCall) {
	d.mu.Lock()
	if d.pending != p {
		// Canceled, flushed, or superseded after the timer started.
		d.mu.Unlock()
		return
	}
	d.pending = nil
	args := d.latest
	d.latest = nil
	d.mu.Unlock()

	if args != nil {
		d.fn(*args)
	}
}

// Cancel drops the scheduled invocation and the buffered argument.
// fn does not run. Calling Cancel with nothing pending is a no-op.
func (d *Debouncer[A]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending.stop()
	d.pending = nil
	d.latest = nil
}

// Flush runs a scheduled invocation immediately on the calling goroutine.
// With nothing scheduled, Flush is a no-op.
func (d *Debouncer[A]) Flush() {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.pending.stop()
	d.pending = nil
	args := d.latest
	d.latest = nil
	d.mu.Unlock()

	if args != nil {
		d.fn(*args)
	}
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
