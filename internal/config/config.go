package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Environment variables read by Load
const (
	// EnvBaseURL overrides the API base URL (e.g. to point at a mirror or a test server)
	EnvBaseURL = "GGWAY_BASE_URL"

	// EnvLogLevel sets the diagnostic log level: debug, info, warn or error
	EnvLogLevel = "GGWAY_LOG_LEVEL"

	// EnvTimeout sets an overall request timeout (e.g. "10s"), 0 disables it
	EnvTimeout = "GGWAY_TIMEOUT"

	// EnvUserAgent overrides the User-Agent request header
	EnvUserAgent = "GGWAY_USER_AGENT"

	// EnvNoColor disables colored output when set to any non-empty value (https://no-color.org)
	EnvNoColor = "NO_COLOR"
)

// DefaultBaseURL is the public GamerPower API
const DefaultBaseURL = "https://www.gamerpower.com/api"

// Config represents the client configuration
type Config struct {
	// BaseURL is the API root that resource paths are appended to
	BaseURL string `env:"GGWAY_BASE_URL"`

	// LogLevel is the minimum level of diagnostic logs written to stderr
	LogLevel string `env:"GGWAY_LOG_LEVEL"`

	// Timeout bounds the whole request, zero means no timeout
	Timeout time.Duration `env:"GGWAY_TIMEOUT"`

	// UserAgent is sent with every request
	UserAgent string `env:"GGWAY_USER_AGENT"`

	// NoColor disables ANSI styling of the output
	NoColor Presence `env:"NO_COLOR"`
}

// Presence is a flag that is set by any non-empty value
type Presence bool

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Presence) UnmarshalText(text []byte) error {
	*p = len(text) > 0
	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		LogLevel:  "warn",
		Timeout:   0, // net/http default: no timeout
		UserAgent: "ggway/dev",
		NoColor:   false,
	}
}

// Load returns the default configuration overridden by the given environment.
//
// The environment is passed in explicitly, use env.ToMap(os.Environ()) for the
// process environment. Variables that are unset or empty keep their defaults.
func Load(environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: %q is not an absolute URL", EnvBaseURL, c.BaseURL)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
		// valid
	default:
		return fmt.Errorf("invalid %s: must be 'debug', 'info', 'warn', or 'error'", EnvLogLevel)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid %s: must not be negative", EnvTimeout)
	}
	return nil
}
