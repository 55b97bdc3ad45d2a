package benchmarks

import (
	"math/rand"
	"time"
)

// TestEvent represents realistic event data for benchmarking
type TestEvent struct {
	ID        int
	Timestamp int64
	Payload   []byte
	Type      string
}

// generateRealisticEvents creates events with a 256-1024 byte payload spread.
func generateRealisticEvents(n int) []TestEvent {
	events := make([]TestEvent, n)
	types := []string{"editor.keystroke", "window.resize", "upload.progress", "search.query"}

	for i := range events {
		events[i] = TestEvent{
			ID:        i,
			Timestamp: time.Now().UnixNano(),
			Type:      types[rand.Intn(len(types))],
			Payload:   make([]byte, 256+rand.Intn(768)),
		}
		for j := range events[i].Payload {
			events[i].Payload[j] = byte(i + j)
		}
	}
	return events
}
