package console

import (
	"sync"
)

// Owner is a dot path ("api.auth") or a list of segments ({"api", "auth"}).
// A path renders as a single badge; a list renders one badge per segment.
// Both are joined with "." for whitelist matching.
type Owner interface {
	string | []string
}

var (
	defaultOnce   sync.Once
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Default returns the package-level logger, building it from the
// environment on first use. If the environment cannot be read the logger
// falls back to non-production settings.
//
// The environment is read once. After changing NODE_ENV or a whitelist
// variable, install a fresh logger with SetDefault.
func Default() *Logger {
	defaultOnce.Do(func() {
		l, err := New()
		if err != nil {
			l, _ = New(WithConfig(Config{}))
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = l
		}
		defaultMu.Unlock()
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l *Logger) {
	defaultOnce.Do(func() {})
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Log writes with the default logger. See Logger.Log.
func Log[O Owner](owner O, msgs ...any) {
	Default().Log(segments(owner), msgs...)
}

// Warn writes with the default logger. See Logger.Warn.
func Warn[O Owner](owner O, msgs ...any) {
	Default().Warn(segments(owner), msgs...)
}

// Error writes with the default logger. See Logger.Error.
func Error[O Owner](owner O, msgs ...any) {
	Default().Error(segments(owner), msgs...)
}

func segments[O Owner](owner O) []string {
	switch v := any(owner).(type) {
	case string:
		return []string{v}
	case []string:
		return v
	}
	return nil
}
