package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// RedisClient stores JSON encoded values of type T with a fixed expiration.
type RedisClient[T any] struct {
	client     redis.Cmdable
	log        zerolog.Logger
	prefix     string
	expiration time.Duration
}

func NewRedisClient[T any](
	client redis.Cmdable,
	logger zerolog.Logger,
	prefix string,
	expiration time.Duration,
) *RedisClient[T] {
	logger = logger.With().Str("component", "RedisClient").Str("prefix", prefix).Logger()
	return &RedisClient[T]{client: client, log: logger, prefix: prefix, expiration: expiration}
}

func (c *RedisClient[T]) Set(
	ctx context.Context,
	key string,
	value T,
) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.log.Debug().Ctx(ctx).Str("key", key).Int("bytes", len(data)).Msg("setting cache entry")
	return c.client.Set(ctx, c.prefix+key, data, c.expiration).Err()
}

//nolint:ireturn
func (c *RedisClient[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrMiss
	}
	if err != nil {
		c.log.Warn().Err(err).Ctx(ctx).Str("key", key).Msg("failed to read cache entry")
		return zero, err
	}

	result := new(T)
	if err := json.Unmarshal(data, result); err != nil {
		return zero, err
	}

	return *result, nil
}
