package events

// Metrics is a point-in-time snapshot of emitter activity.
// Counters are maintained with atomic operations.
type Metrics struct {
	// Async queue
	QueueDepth    int64 // Tasks waiting in the worker queue
	QueueCapacity int64 // Worker queue capacity (0 until the pool starts)

	// Throughput counters
	EventsEmitted   int64 // Emit and EmitAsync calls that reached listeners
	ListenersCalled int64 // Listener executions that returned nil
	ListenersFailed int64 // Listener executions that errored or panicked
	TasksRejected   int64 // Async tasks rejected due to a full queue
	TasksExpired    int64 // Async tasks whose context ended before completion

	// Registration
	RegisteredListeners int64
}
