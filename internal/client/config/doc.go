// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables, after loading ./.env when it exists.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   API base URL (default http://localhost:3000)
//	-d string   SQLite database path (default storefront.db)
//	-t int      request timeout in seconds
//	-r float    requests per second, 0 for unlimited
//	-l string   log level
//
// Environment
//
//	STOREFRONT_API_URL, STOREFRONT_DB, STOREFRONT_REQUEST_TIMEOUT,
//	STOREFRONT_REFRESH_TIMEOUT, STOREFRONT_RPS, STOREFRONT_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://shop.example.com/api",
//	  "database_path": "/var/lib/storefront/client.db",
//	  "request_timeout": "30s",
//	  "refresh_timeout": "10s",
//	  "requests_per_second": 5,
//	  "log_level": "debug"
//	}
package config
