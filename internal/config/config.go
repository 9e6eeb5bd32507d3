// Package config loads CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// APIKeyCredential is the keyring entry holding the API key.
const APIKeyCredential = "api-key"

// Config is the CLI configuration.
type Config struct {
	// API
	BaseURL string        `env:"VANISH_URL" envDefault:"https://api.vanish.host"`
	APIKey  string        `env:"VANISH_API_KEY"`
	Timeout time.Duration `env:"VANISH_TIMEOUT" envDefault:"30s"`

	// Polling
	PollTimeout  time.Duration `env:"VANISH_POLL_TIMEOUT" envDefault:"60s"`
	PollInterval time.Duration `env:"VANISH_POLL_INTERVAL" envDefault:"5s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// CredentialGetter reads a stored secret by key.
type CredentialGetter func(key string) (string, error)

// Load reads .env files if present, then parses the environment. An empty
// API key is filled from getCredential when it is non-nil; a missing
// keyring entry is not an error.
func Load(getCredential CredentialGetter, files ...string) (*Config, error) {
	// Missing .env files are fine.
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" && getCredential != nil {
		if key, err := getCredential(APIKeyCredential); err == nil {
			cfg.APIKey = key
		}
	}

	return cfg, nil
}

// Validate checks value ranges the environment parser cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("VANISH_URL must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("VANISH_TIMEOUT must be positive, got %v", c.Timeout))
	}
	if c.PollTimeout < 0 {
		errs = append(errs, fmt.Errorf("VANISH_POLL_TIMEOUT must not be negative, got %v", c.PollTimeout))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("VANISH_POLL_INTERVAL must be positive, got %v", c.PollInterval))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Level maps LogLevel to a slog level. Unknown names mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
