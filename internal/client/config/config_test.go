package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.APIBaseURL)
	assert.Equal(t, "storefront.db", c.DatabasePath)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 10*time.Second, c.RefreshTimeout)
	assert.Zero(t, c.RequestsPerSecond)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://x" }},
		{"no host", func(c *Config) { c.APIBaseURL = "http://" }},
		{"empty db", func(c *Config) { c.DatabasePath = "" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero refresh timeout", func(c *Config) { c.RefreshTimeout = 0 }},
		{"negative rps", func(c *Config) { c.RequestsPerSecond = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json.local",
		"database_path":   "json.db",
		"refresh_timeout": "3s",
		"log_level":       "warn",
	})
	t.Setenv("STOREFRONT_DB", "env.db")
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://json.local", cfg.APIBaseURL)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.RefreshTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_RejectsInvalidResult(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig([]string{"-u", "not a url"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}
