package console

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Environment variables read by LoadConfig. The whitelist variables are
// checked in order and the first non-empty one wins, so a single .env file
// can be shared with Next.js and Vite front ends.
const (
	EnvNodeEnv       = "NODE_ENV"
	EnvAppEnv        = "APP_ENV"
	EnvNextWhitelist = "NEXT_PUBLIC_LOG_WHITELIST"
	EnvViteWhitelist = "VITE_LOG_WHITELIST"
	EnvLogWhitelist  = "LOG_WHITELIST"
)

var whitelistVars = []string{EnvNextWhitelist, EnvViteWhitelist, EnvLogWhitelist}

// Config controls which Log calls are written.
type Config struct {
	// Production enables whitelist filtering for Log.
	Production bool

	// Whitelist holds lower-cased owner path patterns. In production an
	// empty whitelist suppresses every Log call.
	Whitelist []string
}

// LoadConfig reads the console configuration from the environment.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	wanted := map[string]bool{EnvNodeEnv: true, EnvAppEnv: true}
	for _, v := range whitelistVars {
		wanted[v] = true
	}

	provider := env.Provider("", ".", func(key string) string {
		if !wanted[key] {
			return "" // skipped
		}
		return key
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, oops.In("console").Wrapf(err, "load environment")
	}

	cfg := Config{
		Production: k.String(EnvNodeEnv) == "production" || k.String(EnvAppEnv) == "production",
	}
	for _, v := range whitelistVars {
		if raw := k.String(v); raw != "" {
			cfg.Whitelist = ParseWhitelist(raw)
			break
		}
	}
	return cfg, nil
}

// ParseWhitelist splits a comma separated pattern list, trimming and
// lower-casing each entry. Empty entries are dropped.
func ParseWhitelist(raw string) []string {
	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
