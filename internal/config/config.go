// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for insurechat.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.insurechat/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/insurechat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete insurechat configuration.
type Config struct {
	// Server is the backend connection configuration.
	Server ServerConfig `toml:"server"`

	// UI configuration.
	UI UIConfig `toml:"ui"`

	// Locale configuration for money and number formatting.
	Locale LocaleConfig `toml:"locale"`

	// Storage configuration for the durable session store.
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig contains backend connection settings.
type ServerConfig struct {
	// URL is the base URL of the insurance backend.
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// MarkdownResponses renders assistant replies through the markdown
	// renderer instead of plain text.
	MarkdownResponses bool `toml:"markdown_responses"`
}

// LocaleConfig controls money formatting.
type LocaleConfig struct {
	// Language is a BCP 47 tag, e.g. "en-IN".
	Language string `toml:"language"`
	// Currency is an ISO 4217 code, e.g. "INR".
	Currency string `toml:"currency"`
}

// StorageConfig selects the durable session backend.
type StorageConfig struct {
	// Backend is "file" (one file per key) or "sqlite".
	Backend string `toml:"backend"`
	// Path overrides the storage location. Empty means the default under
	// the config directory.
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://localhost:8000",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Theme:             "dark",
			MarkdownResponses: true,
		},
		Locale: LocaleConfig{
			Language: "en-IN",
			Currency: "INR",
		},
		Storage: StorageConfig{
			Backend: "file",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the insurechat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".insurechat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from ~/.insurechat/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation. Missing fields keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to ~/.insurechat/config.toml atomically.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to the given path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o600)
}

// =============================================================================
// OVERRIDES, DEFAULTS AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
//	INSURECHAT_SERVER  — backend base URL
//	INSURECHAT_THEME   — UI theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("INSURECHAT_SERVER"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("INSURECHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// SetDefaults fills zero-valued fields a partial config file left empty.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Locale.Language == "" {
		c.Locale.Language = defaults.Locale.Language
	}
	if c.Locale.Currency == "" {
		c.Locale.Currency = defaults.Locale.Currency
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url %q is not a valid URL", c.Server.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url scheme must be http or https, got %q", u.Scheme)
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 600 {
		return fmt.Errorf("server.timeout_secs must be between 1 and 600, got %d", c.Server.TimeoutSecs)
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme must be dark, light or auto, got %q", c.UI.Theme)
	}

	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be file or sqlite, got %q", c.Storage.Backend)
	}

	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// StoragePath resolves where the durable session store lives. The configured
// path wins; otherwise it is derived from the backend under the config dir.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == "sqlite" {
		return filepath.Join(dir, "session.db"), nil
	}
	return filepath.Join(dir, "session"), nil
}
