package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const handleTimeout = 2 * time.Minute

type welcomer interface {
	Handle(ctx context.Context, sub models.Subscription) models.WelcomeResult
}

// Consumer runs the welcome flow for subscription events.
type Consumer struct {
	welcome welcomer
	log     zerolog.Logger
	m       *metrics.Metrics
}

func NewConsumer(welcome welcomer, logger zerolog.Logger, m *metrics.Metrics) *Consumer {
	logger = logger.With().Str("component", "Consumer").Logger()
	return &Consumer{welcome: welcome, log: logger, m: m}
}

// ReceiveSubscriptionCreated is the rabbitmq handler for SubscriptionCreatedEvent.
func (c *Consumer) ReceiveSubscriptionCreated(d rabbitmq.Delivery) rabbitmq.Action {
	return c.HandleSubscriptionCreated(d.Body)
}

func (c *Consumer) HandleSubscriptionCreated(body []byte) rabbitmq.Action {
	c.log.Debug().Str("payload", string(body)).Msg("received subscription event")

	var evt SubscriptionCreatedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		c.log.Error().Err(err).Str("event", SubscriptionCreatedRoutingKey).Msg("unmarshal error")
		c.m.TechnicalErrors.WithLabelValues("consumer_unmarshal_error", "warning").Inc()
		return rabbitmq.NackDiscard
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result := c.welcome.Handle(ctx, models.Subscription{
		ID:        evt.SubscriptionID,
		Topic:     evt.Topic,
		Email:     evt.Email,
		Frequency: evt.Frequency,
		CreatedAt: evt.CreatedAt,
		IsActive:  true,
	})

	c.log.Info().
		Str("event_id", evt.EventID).
		Int("subscription_id", evt.SubscriptionID).
		Str("action", result.Action).
		Msg("subscription event processed")

	if result.Action == models.WelcomeError {
		return rabbitmq.NackDiscard
	}
	return rabbitmq.Ack
}
