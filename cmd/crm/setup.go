package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"crm/internal/config"
	"crm/internal/storage"
	"crm/internal/storage/memory"
	"crm/internal/storage/redis"
	"crm/internal/storage/sqlite"
	"crm/internal/workspace"
)

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.driver != "" {
		cfg.Storage.Driver = flags.driver
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func openBackend(ctx context.Context, cfg config.Storage, logger *slog.Logger) (storage.Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
		defer cancel()
		store, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// openWorkspace wires config, logging and storage. The returned close
// function releases the backend.
func openWorkspace(ctx context.Context, flags *globalFlags) (*workspace.Workspace, config.Config, *slog.Logger, func(), error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, config.Config{}, nil, nil, err
	}
	logger := newLogger(cfg.LogLevel)

	backend, err := openBackend(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, config.Config{}, nil, nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}

	ws := workspace.Open(ctx, backend, workspace.Options{
		Seed:    cfg.Seed,
		Timeout: cfg.Storage.Timeout(),
		Logger:  logger,
	})
	return ws, cfg, logger, closeFn, nil
}
