package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cvshop/internal/config"
	"github.com/nikolayk812/cvshop/internal/migrations"
	"github.com/nikolayk812/cvshop/internal/port"
	"github.com/nikolayk812/cvshop/internal/repository"
	"github.com/nikolayk812/cvshop/pkg/closer"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// newKeyValueStore opens the configured driver and registers its shutdown with c.
func newKeyValueStore(ctx context.Context, cfg config.StorageConfig, c *closer.Closer, logger *zap.Logger) (port.KeyValueStore, error) {
	logger = logger.With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("carts are kept in memory and lost on restart")
		return repository.NewMemoryKV(), nil

	case config.DriverSQLite:
		kv, err := repository.NewSQLiteKV(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("repository.NewSQLiteKV: %w", err)
		}
		c.AddErr("sqlite", kv.Close)
		logger.Info("cart storage ready", zap.String("path", cfg.SQLitePath))
		return kv, nil

	case config.DriverPostgres:
		if cfg.Migrate {
			applied, err := migrations.Up(cfg.DSN)
			if err != nil {
				return nil, fmt.Errorf("migrations.Up: %w", err)
			}
			logger.Info("postgres migrations checked", zap.Bool("applied", applied))
		}

		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pool.Ping: %w", err)
		}
		c.Add("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		logger.Info("cart storage ready")
		return repository.NewPostgresKV(pool), nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.Timeout,
			WriteTimeout: cfg.Redis.Timeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("client.Ping: %w", err)
		}
		c.AddErr("redis", client.Close)
		logger.Info("cart storage ready", zap.String("addr", cfg.Redis.Addr))
		return repository.NewRedisKV(client), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
