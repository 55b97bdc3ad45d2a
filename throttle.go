package pacez

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Throttler invokes its callback at most once per delay window.
//
// The first call of an idle period runs immediately (leading edge). Calls
// arriving during the cooldown are coalesced into a single trailing run
// that fires when the cooldown ends, using the newest argument. New calls
// never push the trailing run further out.
type Throttler[A any] struct {
	clock    clockz.Clock
	fn       func(A)
	pending  *pendingCall // nil when nothing is scheduled
	latest   *A           // nil when no call is buffered
	lastExec time.Time    // zero until fn first runs, and again after Cancel
	delay    time.Duration
	mu       sync.Mutex
}

// Throttle creates a throttled wrapper around fn.
//
// Example:
//
//	progress := pacez.Throttle(func(pct int) {
//		bar.Set(pct)
//	}, 100*time.Millisecond)
//
//	for chunk := range chunks {
//		written += copyChunk(chunk)
//		progress.Call(written * 100 / total)
//	}
//	progress.Flush() // make sure 100% is shown
func Throttle[A any](fn func(A), delay time.Duration, opts ...Option) *Throttler[A] {
	cfg := newConfig(opts)
	return &Throttler[A]{
		clock: cfg.clock,
		fn:    fn,
		delay: delay,
	}
}

// Call runs fn immediately when idle; otherwise buffers args for the
// trailing run at the end of the current cooldown window.
func (t *Throttler[A]) Call(args A) {
	t.mu.Lock()
	now := t.clock.Now()
	t.latest = &args

	// A zero timestamp means "never ran", whatever the clock's epoch.
	if t.lastExec.IsZero() && t.pending == nil {
		t.lastExec = now
		t.latest = nil
		t.mu.Unlock()

		t.fn(args)
		return
	}

	if t.pending == nil {
		remaining := t.delay - now.Sub(t.lastExec)
		if remaining < 0 {
			remaining = 0
		}

		p := &pendingCall{at: now.Add(remaining)}
		p.timer = t.clock.AfterFunc(remaining, func() {
			t.fire(p)
		})
		t.pending = p
	}
	// Otherwise the scheduled run picks up the newest args from latest.
	t.mu.Unlock()
}

// fire runs the trailing invocation scheduled as p.
func (t *Throttler[A]) fire(p *pendingCall) {
	t.mu.Lock()
	if t.pending != p {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	args := t.latest
	t.latest = nil
	if args != nil {
		t.lastExec = p.at
	}
	t.mu.Unlock()

	if args != nil {
		t.fn(*args)
	}
}

// Cancel drops any scheduled invocation, forgets the buffered argument and
// the last execution time. The next Call behaves as a fresh leading call.
func (t *Throttler[A]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending.stop()
	t.pending = nil
	t.lastExec = time.Time{}
	t.latest = nil
}

// Flush stops any scheduled invocation without waiting for it and, if an
// argument is buffered, runs fn with it on the calling goroutine.
func (t *Throttler[A]) Flush() {
	t.mu.Lock()
	t.pending.stop()
	t.pending = nil

	args := t.latest
	if args == nil {
		t.mu.Unlock()
		return
	}
	t.latest = nil
	t.lastExec = t.clock.Now()
	t.mu.Unlock()

	t.fn(*args)
}

// Pending reports whether a trailing invocation is scheduled.
func (t *Throttler[A]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}
