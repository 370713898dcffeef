package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything spreadd reads from the environment.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Locale   string `env:"LOCALE" envDefault:"en"`

	ReadingsBaseURL string        `env:"READINGS_BASE_URL,required"`
	ReadingsToken   string        `env:"READINGS_TOKEN"`
	ReadingsTimeout time.Duration `env:"READINGS_TIMEOUT" envDefault:"10s"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	LongWait     time.Duration `env:"LONG_WAIT" envDefault:"15s"`
	HardTimeout  time.Duration `env:"HARD_TIMEOUT" envDefault:"30s"`

	HistoryDB string `env:"HISTORY_DB" envDefault:"spreads.db"`
}

// Load parses the environment and validates the poll escalation ladder.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.PollInterval <= 0 {
		return Config{}, fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.LongWait >= c.HardTimeout {
		return Config{}, fmt.Errorf("LONG_WAIT %s must be below HARD_TIMEOUT %s", c.LongWait, c.HardTimeout)
	}
	if _, err := c.SlogLevel(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SlogLevel maps the LOG_LEVEL string to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
}
