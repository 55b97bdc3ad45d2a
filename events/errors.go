package events

import "errors"

// Subscription Errors

// ErrAlreadyUnsubscribed is returned when a subscription handle is used
// a second time, or was never valid.
var ErrAlreadyUnsubscribed = errors.New("listener already unsubscribed")

// ErrListenerNotFound is returned when removing a listener that no longer
// exists, typically because Clear or Destroy removed it first.
var ErrListenerNotFound = errors.New("listener not found")

// Emitter Lifecycle Errors

// ErrEmitterClosed is returned by every operation on an emitter that has
// been closed via Close().
var ErrEmitterClosed = errors.New("emitter is closed")

// ErrAlreadyClosed is returned when calling Close() twice.
var ErrAlreadyClosed = errors.New("emitter already closed")

// Resource Limit Errors

// ErrQueueFull is returned by EmitAsync when the worker pool cannot accept
// more tasks. Listeners queued before the rejection still run.
var ErrQueueFull = errors.New("worker queue is full")

// ErrTooManyListeners is returned when registering a listener would exceed
// maxListenersPerEvent or maxTotalListeners.
var ErrTooManyListeners = errors.New("listener limit exceeded")

// Execution Errors

// ErrListenerPanicked marks an async listener that panicked. The recovered
// value is attached to the wrapped error.
var ErrListenerPanicked = errors.New("listener panicked during execution")
