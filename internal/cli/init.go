// Package cli holds the start-up plumbing shared by the projector commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/storage"
	"github.com/rpgo/savings-projector/internal/storage/remote"
)

// SetupLogger installs a text slog handler at the given level as the default logger.
func SetupLogger(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupSentry initializes error reporting when a DSN is configured. It reports
// whether events will be sent; without a DSN captured errors are dropped.
func SetupSentry(cfg config.AppConfig, logger *slog.Logger) bool {
	if cfg.SentryDSN == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
	})
	if err != nil {
		logger.Error("Failed to initialize Sentry", "error", err)
		return false
	}
	return true
}

// LoadEnvFile loads .env for local development. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the process configuration from the environment.
func LoadAndValidateConfig() (config.AppConfig, error) {
	cfg := config.LoadAppConfig()
	if err := cfg.Validate(); err != nil {
		return *cfg, err
	}
	return *cfg, nil
}

// Repository is a scenario store that may hold resources.
type Repository interface {
	storage.ScenarioRepository
	Close() error
}

type nopCloser struct {
	storage.ScenarioRepository
}

func (nopCloser) Close() error { return nil }

// OpenRepository opens the scenario store selected by cfg.Store.
func OpenRepository(cfg config.AppConfig, logger *slog.Logger) (Repository, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.DBPath)
			return nil, err
		}
		logger.Debug("using SQLite scenario store", "path", cfg.DBPath)
		return repo, nil
	case config.StoreMemory:
		logger.Debug("using in-memory scenario store")
		return nopCloser{storage.NewMemoryStore()}, nil
	case config.StoreRemote:
		repo, err := remote.New(remote.Options{
			BaseURL:    cfg.RemoteURL,
			MaxRetries: cfg.RemoteRetries,
			HTTPClient: newHTTPClient(cfg.RemoteTimeout),
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("using remote scenario store", "url", cfg.RemoteURL)
		return nopCloser{repo}, nil
	default:
		return nil, fmt.Errorf("unknown scenario store %q", cfg.Store)
	}
}

// GracefulShutdown watches for SIGINT or SIGTERM. On a signal, cleanup runs with a
// context bounded by timeout, then the returned context is cancelled and done closes.
// Calling stop releases the signal handler without running cleanup.
func GracefulShutdown(parent context.Context, logger *slog.Logger, timeout time.Duration, cleanup func(context.Context)) (ctx context.Context, stop context.CancelFunc, done <-chan struct{}) {
	ctx, cancel := context.WithCancel(parent)
	finished := make(chan struct{})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(finished)
		defer cancel()
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
	}()

	return ctx, cancel, finished
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
