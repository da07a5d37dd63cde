// app собирает инфраструктурные зависимости по конфигурации:
// хранилище выбранного драйвера и необязательный кэш страниц.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/invest-tips/internal/cache"
	"github.com/pribylovaa/invest-tips/internal/config"
	"github.com/pribylovaa/invest-tips/internal/pkg/log"
	"github.com/pribylovaa/invest-tips/internal/storage"
	"github.com/pribylovaa/invest-tips/internal/storage/mongo"
	"github.com/pribylovaa/invest-tips/internal/storage/postgres"
)

// OpenStorage подключает хранилище по cfg.DB.Driver.
// Для postgres при cfg.DB.AutoMigrate сначала применяются миграции.
func OpenStorage(ctx context.Context, cfg config.DBConfig) (storage.Storage, error) {
	const op = "app.OpenStorage"

	lg := log.From(ctx)

	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.Migrate(cfg.URL); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			lg.Info("postgres_migrated")
		}

		st, err := postgres.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lg.Info("postgres_connected")
		return st, nil

	case config.DriverMongo:
		st, err := mongo.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lg.Info("mongo_connected")
		return st, nil

	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, cfg.Driver)
	}
}

// OpenCache подключает Redis-кэш страниц. Пустой URL - кэш выключен (nil, nil).
func OpenCache(ctx context.Context, cfg config.RedisConfig) (cache.PageCache, error) {
	const op = "app.OpenCache"

	if cfg.URL == "" {
		log.From(ctx).Info("page_cache_disabled")
		return nil, nil
	}

	c, err := cache.NewRedisCache(cfg.URL, cfg.Prefix, cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("page_cache_enabled",
		slog.String("prefix", cfg.Prefix),
		slog.Duration("ttl", cfg.TTL),
	)
	return c, nil
}
