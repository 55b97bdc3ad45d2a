package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

// Test event keys
const (
	TestOrderEvent   Key = "test.order"
	TestOnceEvent    Key = "test.once"
	TestClearEvent1  Key = "test.clear.event1"
	TestClearEvent2  Key = "test.clear.event2"
	TestErrorEvent   Key = "test.error"
	TestLimitEvent   Key = "test.limits.event"
	TestClosedEvent  Key = "test.closed"
	TestUnusedEvent  Key = "test.unused"
	TestReentryEvent Key = "test.reentry"
)

func TestEmitRunsListenersInOrder(t *testing.T) {
	emitter := New[string]()
	defer emitter.Close()

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		_, err := emitter.On(TestOrderEvent, func(_ context.Context, data string) error {
			order = append(order, name+":"+data)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, emitter.Emit(context.Background(), TestOrderEvent, "x"))
	assert.Equal(t, []string{"a:x", "b:x", "c:x"}, order)
}

func TestEmitWithoutListeners(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	assert.NoError(t, emitter.Emit(context.Background(), TestUnusedEvent, 1))
	assert.Zero(t, emitter.Metrics().EventsEmitted)
}

func TestEmitStopsAtFirstError(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	boom := errors.New("boom")
	var calls []string

	_, err := emitter.On(TestErrorEvent, func(context.Context, int) error {
		calls = append(calls, "first")
		return boom
	})
	require.NoError(t, err)
	_, err = emitter.On(TestErrorEvent, func(context.Context, int) error {
		calls = append(calls, "second")
		return nil
	})
	require.NoError(t, err)

	err = emitter.Emit(context.Background(), TestErrorEvent, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"first"}, calls)

	m := emitter.Metrics()
	assert.Equal(t, int64(1), m.ListenersFailed)
	assert.Equal(t, int64(0), m.ListenersCalled)
}

func TestEmitHonorsCanceledContext(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	called := false
	_, err := emitter.On(TestOrderEvent, func(context.Context, int) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = emitter.Emit(ctx, TestOrderEvent, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestEmitPanicPropagates(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	_, err := emitter.On(TestErrorEvent, func(context.Context, int) error {
		panic("listener exploded")
	})
	require.NoError(t, err)

	assert.PanicsWithValue(t, "listener exploded", func() {
		_ = emitter.Emit(context.Background(), TestErrorEvent, 1)
	})
}

func TestOnceRunsOnce(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	var got []int
	_, err := emitter.Once(TestOnceEvent, func(_ context.Context, n int) error {
		got = append(got, n)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, emitter.ListenerCount(TestOnceEvent))

	require.NoError(t, emitter.Emit(context.Background(), TestOnceEvent, 1))
	require.NoError(t, emitter.Emit(context.Background(), TestOnceEvent, 2))

	assert.Equal(t, []int{1}, got)
	assert.Zero(t, emitter.ListenerCount(TestOnceEvent))
	assert.Zero(t, emitter.Metrics().RegisteredListeners)
}

func TestOnceConcurrentEmission(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	var mu sync.Mutex
	count := 0
	_, err := emitter.Once(TestOnceEvent, func(context.Context, int) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = emitter.Emit(context.Background(), TestOnceEvent, n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, count)
}

func TestOnceUnsubscribeBeforeEmit(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	called := false
	sub, err := emitter.Once(TestOnceEvent, func(context.Context, int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, sub.Unsubscribe())

	require.NoError(t, emitter.Emit(context.Background(), TestOnceEvent, 1))
	assert.False(t, called)
}

func TestListenerMayUnsubscribeDuringEmit(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	var calls []string
	var sub Subscription
	var err error
	sub, err = emitter.On(TestReentryEvent, func(context.Context, int) error {
		calls = append(calls, "self-removing")
		return sub.Unsubscribe()
	})
	require.NoError(t, err)
	_, err = emitter.On(TestReentryEvent, func(context.Context, int) error {
		calls = append(calls, "steady")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, emitter.Emit(context.Background(), TestReentryEvent, 1))
	require.NoError(t, emitter.Emit(context.Background(), TestReentryEvent, 2))

	assert.Equal(t, []string{"self-removing", "steady", "steady"}, calls)
}

func TestClear(t *testing.T) {
	emitter := New[int]()
	defer emitter.Close()

	noop := func(context.Context, int) error { return nil }

	sub1, err := emitter.On(TestClearEvent1, noop)
	require.NoError(t, err)
	sub2, err := emitter.On(TestClearEvent1, noop)
	require.NoError(t, err)
	sub3, err := emitter.On(TestClearEvent2, noop)
	require.NoError(t, err)

	assert.Equal(t, 2, emitter.Clear(TestClearEvent1))
	assert.Equal(t, 0, emitter.Clear(TestUnusedEvent))

	assert.ErrorIs(t, sub1.Unsubscribe(), ErrListenerNotFound)
	assert.ErrorIs(t, sub2.Unsubscribe(), ErrListenerNotFound)
	assert.NoError(t, emitter.Off(&sub3))
	assert.Zero(t, emitter.Metrics().RegisteredListeners)
}

func TestDestroy(t *testing.T) {
	emitter := New[string]()
	defer emitter.Close()

	noop := func(context.Context, string) error { return nil }
	for _, event := range []Key{TestClearEvent1, TestClearEvent1, TestClearEvent2} {
		_, err := emitter.On(event, noop)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, emitter.Destroy())
	assert.Zero(t, emitter.ListenerCount(TestClearEvent1))
	assert.Zero(t, emitter.Metrics().RegisteredListeners)

	// Still usable
	_, err := emitter.On(TestClearEvent1, noop)
	assert.NoError(t, err)
}

func TestResourceLimits(t *testing.T) {
	emitter := New[string]()
	defer emitter.Close()

	noop := func(context.Context, string) error { return nil }

	for i := 0; i < maxListenersPerEvent+10; i++ {
		_, err := emitter.On(TestLimitEvent, noop)
		if i < maxListenersPerEvent {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrTooManyListeners)
		}
	}

	// Fill the remaining global budget across other events.
	registered := maxListenersPerEvent
	for event := 0; registered < maxTotalListeners; event++ {
		key := Key(TestLimitEvent + "." + string(rune('a'+event%26)) + string(rune('a'+event/26)))
		for i := 0; i < maxListenersPerEvent && registered < maxTotalListeners; i++ {
			_, err := emitter.On(key, noop)
			require.NoError(t, err)
			registered++
		}
	}

	_, err := emitter.On("test.limits.overflow", noop)
	assert.ErrorIs(t, err, ErrTooManyListeners)
	assert.Equal(t, int64(maxTotalListeners), emitter.Metrics().RegisteredListeners)
}

func TestClosedEmitter(t *testing.T) {
	emitter := New[int]()

	require.NoError(t, emitter.Close())
	assert.ErrorIs(t, emitter.Close(), ErrAlreadyClosed)

	_, err := emitter.On(TestClosedEvent, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, ErrEmitterClosed)
	assert.ErrorIs(t, emitter.Emit(context.Background(), TestClosedEvent, 1), ErrEmitterClosed)
	assert.ErrorIs(t, emitter.EmitAsync(context.Background(), TestClosedEvent, 1), ErrEmitterClosed)
}

func TestListenerIDsAreUniqueAndOrdered(t *testing.T) {
	clock := clockz.NewFakeClock()
	emitter := New[int](WithClock(clock))
	defer emitter.Close()

	noop := func(context.Context, int) error { return nil }
	var prev string
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		sub, err := emitter.On(Key("test.ids."+string(rune('a'+i%5))), noop)
		require.NoError(t, err)

		id := sub.ID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate id %s", id)
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}
