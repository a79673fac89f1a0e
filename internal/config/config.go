// Package config loads parcelctl settings from the environment.
//
// Settings come from PARCELCTL_* environment variables, optionally
// seeded from a .env file in the working directory. Flags on the root
// command override whatever the environment provides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the resolved runtime settings for parcelctl.
type Config struct {
	// ServerURL is the backend base URL including the /api prefix.
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// ConfigDir holds stored credentials. Empty means the default
	// under the user config directory.
	ConfigDir string `env:"CONFIG_DIR"`

	// LogLevel controls slog verbosity: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from a .env file (if present) and the
// environment. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "PARCELCTL_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL must not be empty")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server URL %q must start with http:// or https://", c.ServerURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// CredentialsPath returns the path of the stored credentials file.
func (c *Config) CredentialsPath() (string, error) {
	dir := c.ConfigDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "parcelctl")
	}
	return filepath.Join(dir, "credentials.json"), nil
}
