package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/expense-tracker/internal/config"
)

const (
	connectAttempts = 5
	initialBackoff  = time.Second
	maxBackoff      = 8 * time.Second
	pingTimeout     = 5 * time.Second
)

// OpenPostgres подключается к PostgreSQL, дожидаясь готовности сервера,
// и применяет миграции схемы записей.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := connect(ctx, poolCfg, cfg)
	if err != nil {
		return nil, err
	}

	if err := MigratePostgres(cfg); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// poolConfig переносит лимиты пула из конфигурации; простаивающие соединения
// из DB_MAX_IDLE_CONNS держатся открытыми как MinConns.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	return poolCfg, nil
}

func connect(ctx context.Context, poolCfg *pgxpool.Config, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	logger := slog.With(
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Name),
	)

	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := tryConnect(ctx, poolCfg)
		if err == nil {
			logger.Info("connected to postgres", slog.Int("attempt", attempt), slog.Int("max_conns", int(poolCfg.MaxConns)))
			return pool, nil
		}
		lastErr = err

		if attempt == connectAttempts {
			break
		}

		logger.Warn("postgres is not ready",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", backoff),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff = nextBackoff(backoff)
	}

	return nil, fmt.Errorf("postgres %s:%d unavailable after %d attempts: %w", cfg.Host, cfg.Port, connectAttempts, lastErr)
}

func tryConnect(ctx context.Context, poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func nextBackoff(current time.Duration) time.Duration {
	if next := current * 2; next < maxBackoff {
		return next
	}
	return maxBackoff
}
