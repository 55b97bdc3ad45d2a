// Package pacez provides debounce and throttle wrappers for callbacks,
// with explicit cancel and flush control and an injectable clock.
//
// A wrapper is created from a callback and a delay. Calls to the wrapper
// are deferred, coalesced, or rate-limited according to its policy:
//
//   - Debounce runs the callback once the wrapper has been quiet for the
//     full delay, using the arguments of the last call.
//   - Throttle runs the first call of an idle period immediately, then
//     coalesces calls during the cooldown into one trailing run that fires
//     exactly when the cooldown ends, using the newest arguments.
//
// Basic Usage:
//
//	save := pacez.Debounce(func(doc Document) {
//		store.Save(doc)
//	}, 500*time.Millisecond)
//
//	save.Call(doc)  // schedules a save
//	save.Call(doc2) // resets the window, doc2 wins
//	save.Flush()    // saves doc2 right now
//
// Callbacks take a single argument; use a struct when more than one value
// needs to travel with the call:
//
//	type resize struct{ W, H int }
//	onResize := pacez.Throttle(func(r resize) { layout(r.W, r.H) }, 16*time.Millisecond)
//
// Testing:
//
// Inject a fake clock to drive timers deterministically:
//
//	clock := clockz.NewFakeClock()
//	d := pacez.Debounce(fn, time.Second, pacez.WithClock(clock))
//	d.Call(1)
//	clock.Advance(time.Second)
//
// Thread Safety:
// Wrappers are safe for concurrent use. The callback is never invoked
// while the wrapper's lock is held, so it may call back into the wrapper.
// With clockz.FakeClock that holds only for callbacks run by Call or
// Flush: Advance fires timers under the fake clock's lock, and a Call
// made from such a callback blocks on that lock. Timer-fired callbacks
// may re-enter freely with clockz.RealClock.
package pacez

// Pacer is the control surface shared by debounced and throttled wrappers.
type Pacer[A any] interface {
	// Call offers a new invocation with the given argument.
	Call(args A)

	// Cancel drops any scheduled invocation and buffered argument.
	Cancel()

	// Flush runs a buffered invocation immediately, if there is one.
	Flush()

	// Pending reports whether a deferred invocation is scheduled.
	Pending() bool
}

var (
	_ Pacer[struct{}] = (*Debouncer[struct{}])(nil)
	_ Pacer[struct{}] = (*Throttler[struct{}])(nil)
)
