package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/pacez/events"
)

// Simple test to verify benchmark compilation and basic functionality
func TestBenchmarkSetup(t *testing.T) {
	emitter := events.New[TestEvent](events.WithWorkers(5), events.WithQueueSize(10))
	defer emitter.Close()

	_, err := emitter.On("test.event", func(context.Context, TestEvent) error {
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	data := generateRealisticEvents(10)
	if len(data) != 10 {
		t.Errorf("Expected 10 events, got %d", len(data))
	}

	for _, event := range data {
		if err := emitter.Emit(context.Background(), "test.event", event); err != nil {
			t.Fatal(err)
		}
	}
}
