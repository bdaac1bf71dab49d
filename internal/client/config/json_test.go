package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"api_base_url":        "https://shop.example.com/api",
		"database_path":       "/tmp/client.db",
		"request_timeout":     "5s",
		"refresh_timeout":     float64(2 * time.Second),
		"requests_per_second": 2.5,
		"log_level":           "debug",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"log_level": "warn",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-config", full}))

		assert.Equal(t, &Config{
			APIBaseURL:        "https://shop.example.com/api",
			DatabasePath:      "/tmp/client.db",
			RequestTimeout:    5 * time.Second,
			RefreshTimeout:    2 * time.Second,
			RequestsPerSecond: 2.5,
			LogLevel:          "debug",
		}, cfg)
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "http://defaults"}
		require.NoError(t, parseJSON(cfg, nil))
		assert.Equal(t, "http://defaults", cfg.APIBaseURL)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJSON(&Config{}, []string{"-config", bad}))
	})
}
