package pacez

import (
	"sync"
)

// recorder collects callback arguments in invocation order.
//
// clockz.FakeClock runs due timers inside Advance, so a recorder can be
// inspected as soon as Advance returns.
type recorder[A any] struct {
	mu    sync.Mutex
	calls []A
}

func newRecorder[A any]() *recorder[A] {
	return &recorder[A]{}
}

func (r *recorder[A]) fn(args A) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
}

func (r *recorder[A]) snapshot() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]A, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder[A]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
