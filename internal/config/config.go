// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - Validation errors wrap ErrInvalidConfig, loading errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/standings/pkg/ranking"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Direction is the ranking direction for requests that do not name one:
	// desc (higher is better) or asc (lower is better).
	Direction string `koanf:"direction"`

	// MaxEntries caps the number of results accepted per leaderboard request.
	MaxEntries int `koanf:"max_entries"`

	// MetricsEnabled toggles Prometheus recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		Direction:      "desc",
		MaxEntries:     100_000,
		MetricsEnabled: true,
	}
}

// RankingDirection parses Direction.
func (c *Config) RankingDirection() (ranking.Direction, error) {
	return ranking.ParseDirection(c.Direction)
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := c.RankingDirection(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MaxEntries < 1 {
		return fmt.Errorf("%w: max_entries must be positive, got %d", ErrInvalidConfig, c.MaxEntries)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
