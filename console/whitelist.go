package console

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Whitelist matches owner paths against dot-separated patterns.
//
// A pattern matches an owner path when it is a prefix of it, segment by
// segment, ignoring case. A "*" segment matches any single segment:
//
//	api.auth     matches api.auth, api.auth.login
//	*.auth       matches api.auth, services.auth.token
//	api.*.error  matches api.auth.error, api.usage.error.retry
type Whitelist struct {
	patterns []pattern
}

// pattern holds the two globs for one whitelist entry: the exact path and
// the path followed by any deeper segments.
type pattern struct {
	source string
	exact  glob.Glob
	deeper glob.Glob
}

// NewWhitelist compiles patterns. Patterns are lower-cased; only whole "*"
// segments act as wildcards, every other character is literal.
func NewWhitelist(patterns []string) (*Whitelist, error) {
	w := &Whitelist{patterns: make([]pattern, 0, len(patterns))}
	for _, raw := range patterns {
		p, err := compilePattern(strings.ToLower(raw))
		if err != nil {
			return nil, err
		}
		w.patterns = append(w.patterns, p)
	}
	return w, nil
}

func compilePattern(src string) (pattern, error) {
	segments := strings.Split(src, ".")
	for i, s := range segments {
		if s != "*" {
			segments[i] = glob.QuoteMeta(s)
		}
	}
	expr := strings.Join(segments, ".")

	exact, err := glob.Compile(expr, '.')
	if err != nil {
		return pattern{}, oops.In("console").With("pattern", src).Wrapf(err, "compile whitelist pattern")
	}
	deeper, err := glob.Compile(expr+".**", '.')
	if err != nil {
		return pattern{}, oops.In("console").With("pattern", src).Wrapf(err, "compile whitelist pattern")
	}
	return pattern{source: src, exact: exact, deeper: deeper}, nil
}

// Match reports whether any pattern matches ownerPath.
func (w *Whitelist) Match(ownerPath string) bool {
	if w == nil {
		return false
	}
	path := strings.ToLower(ownerPath)
	for _, p := range w.patterns {
		if p.exact.Match(path) || p.deeper.Match(path) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.patterns)
}
