// Package config loads the checkout runtime configuration from a YAML file
// with sensible defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultCurrency = "USD"

// VerificationConfig toggles the anti-abuse integration.
type VerificationConfig struct {
	Enabled bool   `yaml:"enabled"`
	SiteKey string `yaml:"site_key,omitempty"`
}

// Config models the checkout runtime settings.
type Config struct {
	Environment     string             `yaml:"environment"`
	Currency        string             `yaml:"currency"`
	DefaultQuantity int                `yaml:"default_quantity"`
	Verification    VerificationConfig `yaml:"verification"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Environment:     "development",
		Currency:        defaultCurrency,
		DefaultQuantity: 1,
	}
}

// Load reads the configuration at path. A missing file yields the defaults;
// a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Production reports whether the environment tightens external validation.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) applyDefaults() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.DefaultQuantity < 1 {
		c.DefaultQuantity = 1
	}
}

func (c Config) validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code, got %q", c.Currency)
	}
	if c.Verification.Enabled && strings.TrimSpace(c.Verification.SiteKey) == "" {
		return fmt.Errorf("verification.site_key is required when verification is enabled")
	}
	return nil
}
