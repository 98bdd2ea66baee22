// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, "en-IN", cfg.Locale.Language)
	assert.Equal(t, "INR", cfg.Locale.Currency)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
url = "https://insure.example.com"

[storage]
backend = "sqlite"
`), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://insure.example.com", cfg.Server.URL)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs, "unset fields keep defaults")
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
url = "http://from-file:8000"
`), 0o600))

	t.Setenv("INSURECHAT_SERVER", "http://from-env:9000")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.Server.URL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Server.URL = "" }},
		{"scheme-less url", func(c *Config) { c.Server.URL = "localhost:8000" }},
		{"ftp url", func(c *Config) { c.Server.URL = "ftp://example.com" }},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.URL = "https://insure.example.com"
	cfg.UI.MarkdownResponses = false
	require.NoError(t, cfg.SaveTo(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://insure.example.com", got.Server.URL)
	assert.False(t, got.UI.MarkdownResponses)
}

func TestStoragePathPerBackend(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/tmp/custom-session"
	path, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-session", path, "explicit path wins")

	cfg = Default()
	cfg.Storage.Backend = "sqlite"
	path, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "session.db", filepath.Base(path))
}
