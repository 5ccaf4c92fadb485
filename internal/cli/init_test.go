package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/storage/remote"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"trace":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := SetupLogger(&buf, "warn")
	logger.Info("hidden")
	slog.Warn("visible", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=visible k=v")
}

func TestGracefulShutdown_StopReleasesWatcher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var cleaned atomic.Bool

	ctx, stop, done := GracefulShutdown(context.Background(), logger, time.Second, func(context.Context) { cleaned.Store(true) })
	stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher still running after stop")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, cleaned.Load(), "cleanup only runs on a signal")
}

func TestGracefulShutdown_SignalRunsCleanup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var cleaned atomic.Bool

	ctx, stop, done := GracefulShutdown(context.Background(), logger, time.Second, func(c context.Context) {
		_, hasDeadline := c.Deadline()
		cleaned.Store(hasDeadline)
	})
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete")
	}
	assert.True(t, cleaned.Load())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Contains(t, buf.String(), "Shutdown complete")
}

func TestSetupSentry(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	assert.False(t, SetupSentry(config.AppConfig{}, logger))
	assert.Empty(t, buf.String())

	assert.False(t, SetupSentry(config.AppConfig{SentryDSN: "not-a-dsn"}, logger))
	assert.Contains(t, buf.String(), "Failed to initialize Sentry")
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("PROJECTOR_ADDR", ":8080")
	t.Setenv("PROJECTOR_STORE", "memory")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)

	// the returned value is a copy callers may override
	cfg.Addr = ":9999"
	again, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", again.Addr)

	t.Setenv("PROJECTOR_STORE", "remote")
	t.Setenv("PROJECTOR_REMOTE_URL", "")
	_, err = LoadAndValidateConfig()
	assert.Error(t, err)
}

func TestOpenRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, err := OpenRepository(config.AppConfig{Store: config.StoreMemory}, logger)
		require.NoError(t, err)
		defer repo.Close()

		id, err := repo.Save(ctx, &domain.Scenario{Name: "m"})
		require.NoError(t, err)
		sc, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "m", sc.Name)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.AppConfig{Store: config.StoreSQLite, DBPath: filepath.Join(t.TempDir(), "db", "s.db")}
		repo, err := OpenRepository(cfg, logger)
		require.NoError(t, err)
		defer repo.Close()

		refs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("remote", func(t *testing.T) {
		cfg := config.AppConfig{Store: config.StoreRemote, RemoteURL: "http://127.0.0.1:1", RemoteRetries: 0}
		repo, err := OpenRepository(cfg, logger)
		require.NoError(t, err)
		defer repo.Close()

		_, err = repo.Save(ctx, &domain.Scenario{Name: "r"})
		assert.ErrorIs(t, err, remote.ErrReadOnly)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenRepository(config.AppConfig{Store: "redis"}, logger)
		assert.Error(t, err)
	})
}
