package pacez

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Option configures a wrapper during creation.
type Option func(*config)

// config holds internal configuration for wrapper creation.
type config struct {
	clock clockz.Clock // Time abstraction for deterministic testing
}

// WithClock sets the clock implementation used for scheduling and timestamps.
// Default is clockz.RealClock for production use.
// Use clockz.FakeClock for deterministic testing.
//
// clockz.FakeClock runs due callbacks inside Advance while holding its
// lock, so a callback fired that way must not call back into the wrapper.
// Re-entry from a timer-fired callback is supported with clockz.RealClock.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		clock: clockz.RealClock,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = clockz.RealClock
	}
	return cfg
}

// pendingCall marks a scheduled deferred invocation.
//
// Fire callbacks compare their own marker against the wrapper's current
// marker, so a timer that was stopped too late to prevent its callback
// from starting still cannot run the wrapped function.
//
// at is the instant the timer is due. Fire callbacks read it instead of
// the clock: a fake clock runs callbacks while holding its own lock.
type pendingCall struct {
	timer clockz.Timer
	at    time.Time
}

// stop cancels the underlying timer. Safe on a nil marker.
func (p *pendingCall) stop() {
	if p == nil || p.timer == nil {
		return
	}
	p.timer.Stop()
}
