package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with PROJECTOR_STORE.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreRemote = "remote"
)

// AppConfig is the process configuration of the CLI and HTTP service.
type AppConfig struct {
	// HTTP server
	Addr            string
	ShutdownTimeout time.Duration

	// Scenario store
	Store  string
	DBPath string

	// Remote scenario store
	RemoteURL     string
	RemoteRetries int
	RemoteTimeout time.Duration

	LogLevel string

	// Error reporting. An empty SentryDSN disables it.
	SentryDSN         string
	SentryEnvironment string
}

// LoadAppConfig reads the process configuration from the environment.
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Addr:            getEnv("PROJECTOR_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("PROJECTOR_SHUTDOWN_TIMEOUT", 10*time.Second),

		Store:  strings.ToLower(getEnv("PROJECTOR_STORE", StoreSQLite)),
		DBPath: getEnv("PROJECTOR_DB_PATH", "data/scenarios.db"),

		RemoteURL:     getEnv("PROJECTOR_REMOTE_URL", ""),
		RemoteRetries: getEnvInt("PROJECTOR_REMOTE_RETRIES", 3),
		RemoteTimeout: getEnvDuration("PROJECTOR_REMOTE_TIMEOUT", 15*time.Second),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *AppConfig) Validate() error {
	var errs []string

	if _, port, err := net.SplitHostPort(c.Addr); err != nil {
		errs = append(errs, fmt.Sprintf("invalid listen address '%s': %v", c.Addr, err))
	} else if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be between 0 and 65535", port))
	}

	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite store")
		}
	case StoreMemory:
	case StoreRemote:
		if c.RemoteURL == "" {
			errs = append(errs, "remote URL is required when using remote store")
		} else if u, err := url.Parse(c.RemoteURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid remote URL '%s': %v", c.RemoteURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid remote URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid store '%s': must be one of [%s %s %s]", c.Store, StoreSQLite, StoreMemory, StoreRemote))
	}

	if c.RemoteRetries < 0 {
		errs = append(errs, "remote retries cannot be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
