// Package events provides a typed publish/subscribe event emitter with
// synchronous and asynchronous emission.
//
// Each Emitter carries a single payload type. Listeners are registered per
// event key and run in registration order.
//
// Basic Usage:
//
//	// Create an emitter for document events
//	emitter := events.New[Document]()
//	defer emitter.Close()
//
//	// Register listeners
//	sub, err := emitter.On("document.saved", func(ctx context.Context, doc Document) error {
//		return index.Update(ctx, doc)
//	})
//	if err != nil {
//		return err
//	}
//	defer sub.Unsubscribe()
//
//	// Synchronous emission: listeners run before Emit returns
//	if err := emitter.Emit(ctx, "document.saved", doc); err != nil {
//		return err
//	}
//
// Asynchronous Emission:
//
//	emitter := events.New[Order](events.WithWorkers(8), events.WithTimeout(5*time.Second))
//
//	// Fire-and-forget: listeners run on the worker pool
//	if err := emitter.EmitAsync(ctx, "order.created", order); err != nil {
//		// ErrQueueFull when the pool is saturated
//	}
//
// The worker pool is started on the first EmitAsync call, so emitters that
// only emit synchronously never start goroutines.
//
// Resource Management:
//
// The emitter enforces limits to prevent memory exhaustion:
//   - Maximum 100 listeners per event
//   - Maximum 10,000 total listeners
//   - Worker queue size limits async execution
package events

import "context"

// Key represents an event identifier used in listener registration and emission.
//
// Define event keys as package constants:
//
//	const (
//		DocumentSaved   events.Key = "document.saved"
//		DocumentDeleted events.Key = "document.deleted"
//	)
type Key = string

// Listener handles a single emission. A non-nil error stops a synchronous
// Emit and is returned to the emitter's caller.
type Listener[T any] func(ctx context.Context, data T) error
