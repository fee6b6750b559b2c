package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

var errUnexpectedResult = errors.New("unexpected result type")

type collector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

// BreakerCollector stops calling the feed after repeated failures.
type BreakerCollector struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped collector
}

func NewBreakerCollector(
	name string,
	wrapped collector,
	interval, timeout time.Duration,
	repeatNumber uint32,
) *BreakerCollector {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= repeatNumber
		},
	}
	return &BreakerCollector{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerCollector) Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Collect(ctx, topic, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	items, ok := result.([]models.NewsItem)
	if !ok {
		return nil, fmt.Errorf("%s unavailable: %w", b.name, errUnexpectedResult)
	}
	return items, nil
}
