package prefs

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps preferences in one hash per profile, shared by every machine using the same server.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{client: client, key: "prefs:" + profile}
}

func (s *RedisStore) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	res, err := s.client.HMGet(ctx, s.key, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, raw := range res {
		if v, ok := raw.(string); ok {
			values[keys[i]] = v
		}
	}

	return values, nil
}

func (s *RedisStore) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return s.client.HSet(ctx, s.key, pairs).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
