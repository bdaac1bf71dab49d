package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type envConfig struct {
	APIBaseURL        string        `env:"STOREFRONT_API_URL"`
	DatabasePath      string        `env:"STOREFRONT_DB"`
	RequestTimeout    time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`
	RefreshTimeout    time.Duration `env:"STOREFRONT_REFRESH_TIMEOUT"`
	RequestsPerSecond float64       `env:"STOREFRONT_RPS"`
	LogLevel          string        `env:"STOREFRONT_LOG_LEVEL"`
}

// parseEnv overlays cfg with STOREFRONT_* variables. envFile is loaded first
// when it exists; variables already set in the process win over it.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	ec := envConfig{
		APIBaseURL:        cfg.APIBaseURL,
		DatabasePath:      cfg.DatabasePath,
		RequestTimeout:    cfg.RequestTimeout,
		RefreshTimeout:    cfg.RefreshTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		LogLevel:          cfg.LogLevel,
	}
	if err := envdecode.Decode(&ec); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("decode environment: %w", err)
	}

	cfg.APIBaseURL = ec.APIBaseURL
	cfg.DatabasePath = ec.DatabasePath
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.RefreshTimeout = ec.RefreshTimeout
	cfg.RequestsPerSecond = ec.RequestsPerSecond
	cfg.LogLevel = ec.LogLevel
	return nil
}
