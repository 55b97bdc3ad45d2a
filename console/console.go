// Package console writes labelled log lines for named owners.
//
// Every line starts with one badge per owner segment, coloured
// deterministically from the segment name:
//
//	console.Log("api.auth", "token refreshed")          // [API.AUTH] token refreshed
//	console.Log([]string{"api", "auth"}, "user", id)    // [API] [AUTH] user 42
//	console.Warn("billing", "retrying charge")
//	console.Error("billing", err)
//
// Log is filtered in production: when NODE_ENV (or APP_ENV) is
// "production", only owners matching the LOG_WHITELIST patterns are
// written. Warn and Error are never filtered.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	labelCacheSize    = 256
	decisionCacheSize = 1024
)

// Option configures a Logger.
type Option func(*options)

type options struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *Config
	color  *bool
}

// WithOutput sets the writers for Log (stdout) and for Warn/Error (stderr).
// Defaults are os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithConfig uses cfg instead of reading the environment.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = &cfg
	}
}

// WithColor forces coloured badges on or off. By default badges are
// coloured only when stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = &enabled
	}
}

// Logger writes owner-labelled lines.
type Logger struct {
	stdout    io.Writer
	stderr    io.Writer
	cfg       Config
	whitelist *Whitelist
	renderer  *lipgloss.Renderer
	labels    *lru.Cache[string, string]
	decisions *lru.Cache[string, bool]
	mu        sync.Mutex // serialises writes so lines never interleave
	color     bool
}

// New creates a Logger. Without WithConfig the configuration is read from
// the environment once, here.
func New(opts ...Option) (*Logger, error) {
	o := options{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Config{}
	if o.cfg != nil {
		cfg = *o.cfg
	} else {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	whitelist, err := NewWhitelist(cfg.Whitelist)
	if err != nil {
		return nil, err
	}

	color := isTerminal(o.stdout)
	if o.color != nil {
		color = *o.color
	}

	renderer := lipgloss.NewRenderer(o.stdout)
	if color {
		renderer.SetColorProfile(termenv.TrueColor)
	}

	// Sizes are positive constants, so New cannot fail.
	labels, _ := lru.New[string, string](labelCacheSize)
	decisions, _ := lru.New[string, bool](decisionCacheSize)

	return &Logger{
		stdout:    o.stdout,
		stderr:    o.stderr,
		cfg:       cfg,
		whitelist: whitelist,
		renderer:  renderer,
		labels:    labels,
		decisions: decisions,
		color:     color,
	}, nil
}

// Config returns the configuration the logger was built with.
func (l *Logger) Config() Config {
	return l.cfg
}

// Enabled reports whether Log would write for owners.
func (l *Logger) Enabled(owners []string) bool {
	if !l.cfg.Production {
		return true
	}
	if l.whitelist.Len() == 0 {
		return false
	}

	path := strings.Join(owners, ".")
	if ok, hit := l.decisions.Get(path); hit {
		return ok
	}
	ok := l.whitelist.Match(path)
	l.decisions.Add(path, ok)
	return ok
}

// Log writes msgs to stdout unless filtered out in production.
func (l *Logger) Log(owners []string, msgs ...any) {
	if !l.Enabled(owners) {
		return
	}
	l.write(l.stdout, owners, msgs)
}

// Warn writes msgs to stderr. Never filtered.
func (l *Logger) Warn(owners []string, msgs ...any) {
	l.write(l.stderr, owners, msgs)
}

// Error writes msgs to stderr. Never filtered.
func (l *Logger) Error(owners []string, msgs ...any) {
	l.write(l.stderr, owners, msgs)
}

func (l *Logger) write(w io.Writer, owners []string, msgs []any) {
	args := make([]any, 0, len(msgs)+1)
	args = append(args, l.Label(owners))
	args = append(args, msgs...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, args...)
}

// Label renders the badges for owners, one per segment, space separated.
func (l *Logger) Label(owners []string) string {
	parts := make([]string, len(owners))
	for i, name := range owners {
		parts[i] = l.badge(name)
	}
	return strings.Join(parts, " ")
}

func (l *Logger) badge(name string) string {
	if s, ok := l.labels.Get(name); ok {
		return s
	}

	text := strings.ToUpper(name)
	var s string
	if l.color {
		c := ColorFor(name)
		s = l.renderer.NewStyle().
			Background(lipgloss.Color(c.Primary)).
			Foreground(lipgloss.Color(c.Text)).
			Bold(true).
			Padding(0, 1).
			Render(text)
	} else {
		s = "[" + text + "]"
	}

	l.labels.Add(name, s)
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
