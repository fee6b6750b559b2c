package news

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedCollector serves repeated collections of the same topic from a cache.
type CachedCollector struct {
	inner collector
	cache cacheClient[[]models.NewsItem]
	log   zerolog.Logger
}

func NewCachedCollector(inner collector, cache cacheClient[[]models.NewsItem], logger zerolog.Logger) *CachedCollector {
	logger = logger.With().Str("component", "CachedCollector").Logger()
	return &CachedCollector{inner: inner, cache: cache, log: logger}
}

func (s *CachedCollector) Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error) {
	key := topic + ":" + strconv.Itoa(limit)

	if items, err := s.cache.Get(ctx, key); err == nil {
		s.log.Debug().Ctx(ctx).Str("topic", topic).Msg("cache hit")
		return items, nil
	}

	s.log.Debug().Ctx(ctx).Str("topic", topic).Msg("cache miss")
	items, err := s.inner.Collect(ctx, topic, limit)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.log.Warn().Err(err).Ctx(ctx).Str("topic", topic).Msg("failed to cache news")
		}
	}

	return items, nil
}
