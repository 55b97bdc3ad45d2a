package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// workerPool runs async listener executions.
//
// The pool:
//   - Executes listeners off the emitting goroutine
//   - Recovers listener panics so one listener cannot crash the process
//   - Applies the configured timeout to each execution
//   - Drains queued tasks on close
type workerPool[T any] struct {
	clock  clockz.Clock
	logger *zap.Logger

	// Channel for receiving listener execution tasks
	tasks chan listenerTask[T]

	// WaitGroup to track worker goroutines for graceful shutdown
	wg sync.WaitGroup

	mu sync.RWMutex

	// Timeout applied to every execution; zero means none
	timeout time.Duration

	closed bool

	metrics *Metrics
}

// listenerTask is a single queued listener execution.
type listenerTask[T any] struct {
	ctx      context.Context
	data     T
	listener listenerEntry[T]
	event    Key
}

// newWorkerPool creates a pool and starts its workers.
func newWorkerPool[T any](cfg config, metrics *Metrics) *workerPool[T] {
	pool := &workerPool[T]{
		clock:   cfg.clock,
		logger:  cfg.logger,
		tasks:   make(chan listenerTask[T], cfg.queueSize),
		timeout: cfg.timeout,
		metrics: metrics,
	}

	for i := 0; i < cfg.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// submit queues a task without blocking.
func (p *workerPool[T]) submit(task listenerTask[T]) error {
	// Held across the send so close() cannot close the channel under us.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrEmitterClosed
	}

	select {
	case p.tasks <- task:
		atomic.AddInt64(&p.metrics.QueueDepth, 1)
		return nil
	default:
		atomic.AddInt64(&p.metrics.TasksRejected, 1)
		return oops.In("events").With("event", task.event).Wrap(ErrQueueFull)
	}
}

// close stops accepting tasks and waits for queued ones to finish.
func (p *workerPool[T]) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}

// worker processes tasks until the channel is closed.
func (p *workerPool[T]) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		atomic.AddInt64(&p.metrics.QueueDepth, -1)

		err := p.execute(task)
		switch {
		case err == nil:
			atomic.AddInt64(&p.metrics.ListenersCalled, 1)
		case !errors.Is(err, ErrListenerPanicked) &&
			(task.ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded)):
			atomic.AddInt64(&p.metrics.TasksExpired, 1)
		default:
			atomic.AddInt64(&p.metrics.ListenersFailed, 1)
			p.logger.Warn("async listener failed",
				zap.String("event", task.event),
				zap.String("listener", task.listener.id),
				zap.Error(err),
			)
		}
	}
}

// execute runs one listener with panic recovery and the pool timeout.
func (p *workerPool[T]) execute(task listenerTask[T]) error {
	ctx := task.ctx

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = p.clock.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var err error
	if perr := oops.Recover(func() {
		err = task.listener.callback(ctx, task.data)
	}); perr != nil {
		return oops.In("events").
			With("event", task.event).
			With("listener", task.listener.id).
			With("panic", perr.Error()).
			Wrap(ErrListenerPanicked)
	}
	return err
}
