package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Nazarious-ucu/news-collector/internal/config"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open builds the store selected by cfg.Backend.
//
//nolint:ireturn
func Open(ctx context.Context, cfg config.Prefs) (Store, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return OpenSQLiteStore(ctx, cfg.Path, cfg.Profile)
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddress(),
			DB:   cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect preference store: %w", err)
		}
		return NewRedisStore(client, cfg.Profile), nil
	default:
		return nil, fmt.Errorf("unknown preference backend %q", cfg.Backend)
	}
}
