package events

import (
	"context"
	"crypto/rand"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// Option configures an Emitter during creation.
type Option func(*config)

// config holds internal configuration for emitter creation.
type config struct {
	clock     clockz.Clock // Time abstraction for deterministic testing
	logger    *zap.Logger
	workers   int
	timeout   time.Duration
	queueSize int
}

// WithWorkers sets the number of worker goroutines for EmitAsync.
// Default is 10 workers.
func WithWorkers(count int) Option {
	return func(c *config) {
		c.workers = count
	}
}

// WithTimeout sets the timeout applied to each async listener execution.
// Default is no timeout (0). Synchronous Emit uses the caller's context as is.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithQueueSize sets the worker pool queue size.
// Default is 0, which auto-calculates as workers * 2.
func WithQueueSize(size int) Option {
	return func(c *config) {
		c.queueSize = size
	}
}

// WithClock sets the clock implementation for time operations.
// Default is clockz.RealClock for production use.
// Use clockz.FakeClock for deterministic testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for async listener failures.
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Resource limits enforced during listener registration.
const (
	maxListenersPerEvent = 100
	maxTotalListeners    = 10000
)

// Emitter manages listeners for a single payload type.
//
// Thread Safety:
// All methods are safe for concurrent use. Emission works on a copy of the
// listener list, so listeners may subscribe or unsubscribe while running.
type Emitter[T any] struct {
	clock     clockz.Clock
	listeners map[Key][]listenerEntry[T]
	cfg       config
	entropy   io.Reader // guarded by mu (ulid.Monotonic is not concurrency safe)
	workers   atomic.Pointer[workerPool[T]]
	poolOnce  sync.Once
	mu        sync.RWMutex
	total     int
	closed    bool

	metrics Metrics
}

// listenerEntry pairs a listener with its identifier.
type listenerEntry[T any] struct {
	id       string
	callback Listener[T]
}

// New creates an emitter with the specified options.
//
// Default configuration:
//   - 10 worker goroutines for EmitAsync, started on first use
//   - No async timeout (0)
//   - Auto-calculated queue size (workers * 2)
//
// Example:
//
//	emitter := events.New[User]()
//
//	emitter := events.New[Order](
//	    events.WithWorkers(20),
//	    events.WithTimeout(5*time.Second),
//	    events.WithLogger(logger),
//	)
//	defer emitter.Close()
func New[T any](opts ...Option) *Emitter[T] {
	cfg := config{
		clock:   clockz.RealClock,
		logger:  zap.NewNop(),
		workers: 10,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.workers <= 0 {
		cfg.workers = 1
	}
	if cfg.queueSize == 0 {
		cfg.queueSize = cfg.workers * 2
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return &Emitter[T]{
		clock:     cfg.clock,
		listeners: make(map[Key][]listenerEntry[T]),
		cfg:       cfg,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// On registers a listener for the specified event.
func (e *Emitter[T]) On(event Key, listener Listener[T]) (Subscription, error) {
	return e.add(event, func(string) Listener[T] { return listener })
}

// Once registers a listener that runs at most once. It is removed before
// its first execution, so concurrent emissions cannot run it twice.
func (e *Emitter[T]) Once(event Key, listener Listener[T]) (Subscription, error) {
	return e.add(event, func(id string) Listener[T] {
		var fired atomic.Bool
		return func(ctx context.Context, data T) error {
			if !fired.CompareAndSwap(false, true) {
				return nil
			}
			// Already gone if the caller unsubscribed or cleared the event.
			_ = e.removeListener(event, id)
			return listener(ctx, data)
		}
	})
}

// add registers the listener built by wrap under a fresh id.
func (e *Emitter[T]) add(event Key, wrap func(id string) Listener[T]) (Subscription, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Subscription{}, ErrEmitterClosed
	}

	if len(e.listeners[event]) >= maxListenersPerEvent {
		return Subscription{}, ErrTooManyListeners
	}

	if e.total >= maxTotalListeners {
		return Subscription{}, ErrTooManyListeners
	}

	id := e.generateID()
	e.listeners[event] = append(e.listeners[event], listenerEntry[T]{
		id:       id,
		callback: wrap(id),
	})
	e.total++

	return Subscription{
		id:    id,
		event: event,
		remove: func() error {
			return e.removeListener(event, id)
		},
	}, nil
}

// removeListener removes a listener by id.
func (e *Emitter[T]) removeListener(event Key, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.listeners[event]
	for i, entry := range entries {
		if entry.id != id {
			continue
		}

		// Build a new slice: emissions in flight hold the old one.
		next := make([]listenerEntry[T], 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)

		if len(next) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = next
		}
		e.total--
		return nil
	}
	return ErrListenerNotFound
}

// Off removes the listener behind a subscription handle.
func (e *Emitter[T]) Off(sub *Subscription) error {
	return sub.Unsubscribe()
}

// Clear removes all listeners for the specified event and returns how many
// were removed.
func (e *Emitter[T]) Clear(event Key) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := len(e.listeners[event])
	e.total -= count
	delete(e.listeners, event)
	return count
}

// Destroy removes every listener for every event and returns how many were
// removed. The emitter stays usable.
func (e *Emitter[T]) Destroy() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := e.total
	e.listeners = make(map[Key][]listenerEntry[T])
	e.total = 0
	return count
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter[T]) ListenerCount(event Key) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// snapshot returns the current listeners for event.
func (e *Emitter[T]) snapshot(event Key) ([]listenerEntry[T], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return nil, ErrEmitterClosed
	}

	// Removal builds a new slice and registration only appends, so the
	// entries visible through this header never change.
	return e.listeners[event], nil
}

// Emit runs every listener for event on the calling goroutine, in
// registration order.
//
// Emission stops at the first listener error, which is returned wrapped
// with the event key and listener id. If ctx ends between listeners the
// context error is returned. Listener panics propagate to the caller.
func (e *Emitter[T]) Emit(ctx context.Context, event Key, data T) error {
	listeners, err := e.snapshot(event)
	if err != nil {
		return err
	}

	if len(listeners) == 0 {
		return nil
	}
	atomic.AddInt64(&e.metrics.EventsEmitted, 1)

	for _, listener := range listeners {
		if err := ctx.Err(); err != nil {
			return oops.In("events").With("event", event).Wrapf(err, "emit %s", event)
		}

		if err := listener.callback(ctx, data); err != nil {
			atomic.AddInt64(&e.metrics.ListenersFailed, 1)
			return oops.In("events").
				With("event", event).
				With("listener", listener.id).
				Wrapf(err, "emit %s", event)
		}
		atomic.AddInt64(&e.metrics.ListenersCalled, 1)
	}

	return nil
}

// EmitAsync queues every listener for event on the worker pool and returns
// without waiting for them.
//
// Returns ErrQueueFull as soon as a task cannot be queued; listeners queued
// before that still run. Async failures are counted in Metrics and logged.
func (e *Emitter[T]) EmitAsync(ctx context.Context, event Key, data T) error {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return ErrEmitterClosed
	}

	// Started under the read lock so Close cannot miss a pool in creation.
	e.poolOnce.Do(func() {
		e.workers.Store(newWorkerPool[T](e.cfg, &e.metrics))
	})
	pool := e.workers.Load()
	listeners := e.listeners[event]
	e.mu.RUnlock()

	if len(listeners) == 0 {
		return nil
	}
	atomic.AddInt64(&e.metrics.EventsEmitted, 1)

	for _, listener := range listeners {
		task := listenerTask[T]{
			ctx:      ctx,
			data:     data,
			listener: listener,
			event:    event,
		}

		if err := pool.submit(task); err != nil {
			return err
		}
	}

	return nil
}

// Metrics returns a snapshot of emitter metrics.
func (e *Emitter[T]) Metrics() Metrics {
	e.mu.RLock()
	registered := int64(e.total)
	e.mu.RUnlock()
	pool := e.workers.Load()

	m := Metrics{
		QueueDepth:          atomic.LoadInt64(&e.metrics.QueueDepth),
		EventsEmitted:       atomic.LoadInt64(&e.metrics.EventsEmitted),
		ListenersCalled:     atomic.LoadInt64(&e.metrics.ListenersCalled),
		ListenersFailed:     atomic.LoadInt64(&e.metrics.ListenersFailed),
		TasksRejected:       atomic.LoadInt64(&e.metrics.TasksRejected),
		TasksExpired:        atomic.LoadInt64(&e.metrics.TasksExpired),
		RegisteredListeners: registered,
	}
	if pool != nil {
		m.QueueCapacity = int64(cap(pool.tasks))
	}
	return m
}

// Close shuts the emitter down, waiting for queued async listeners.
func (e *Emitter[T]) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrAlreadyClosed
	}
	e.closed = true
	pool := e.workers.Load()
	e.mu.Unlock()

	if pool != nil {
		pool.close()
	}

	// Anything still counted as queued was never run.
	remaining := atomic.LoadInt64(&e.metrics.QueueDepth)
	if remaining > 0 {
		atomic.AddInt64(&e.metrics.TasksExpired, remaining)
		atomic.StoreInt64(&e.metrics.QueueDepth, 0)
	}

	return nil
}

// generateID creates a time-ordered unique identifier for a listener.
// Caller must hold e.mu.
func (e *Emitter[T]) generateID() string {
	id, err := ulid.New(ulid.Timestamp(e.clock.Now()), e.entropy)
	if err != nil {
		// Monotonic entropy overflowed within one millisecond.
		return ulid.Make().String()
	}
	return id.String()
}
