package database

import (
	"context"
	"fmt"
	"time"

	"choicefiction/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// retry повторяет attempt до успеха, исчерпания попыток или отмены ctx.
func retry(ctx context.Context, log *zap.Logger, what string, attempts int, delay time.Duration, attempt func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = attempt(ctx); lastErr == nil {
			log.Info("Connected", zap.String("target", what), zap.Int("attempt", i))
			return nil
		}
		log.Warn("Connection failed, retrying...",
			zap.String("target", what),
			zap.Int("attempt", i),
			zap.Int("max_retries", attempts),
			zap.Error(lastErr),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed to connect to %s after %d attempts: %w", what, attempts, lastErr)
}

// ConnectPostgres создает пул pgx и проверяет соединение.
func ConnectPostgres(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var pool *pgxpool.Pool
	err = retry(ctx, log, "postgres", cfg.ConnectRetries, cfg.ConnectDelay, func(ctx context.Context) error {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		p, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(connectCtx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// ConnectRedis создает клиента Redis и проверяет соединение.
func ConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	var client *redis.Client
	err := retry(ctx, log, "redis", cfg.ConnectRetries, cfg.ConnectDelay, func(ctx context.Context) error {
		c := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx).Err(); err != nil {
			_ = c.Close()
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
