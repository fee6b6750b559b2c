package messaging

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		data []byte,
		routingKeys []string,
		optionFuncs ...func(*rabbitmq.PublishOptions),
	) error
}

type Producer struct {
	pub publisher
	log zerolog.Logger
	m   *metrics.Metrics
}

func NewProducer(pub publisher, logger zerolog.Logger, m *metrics.Metrics) *Producer {
	logger = logger.With().Str("component", "Producer").Logger()
	return &Producer{pub: pub, log: logger, m: m}
}

func (p *Producer) Publish(ctx context.Context, routingKey string, body []byte) error {
	err := p.pub.PublishWithContext(
		ctx,
		body,
		[]string{routingKey},
		rabbitmq.WithPublishOptionsContentType(contentTypeJSON),
		rabbitmq.WithPublishOptionsMandatory,
		rabbitmq.WithPublishOptionsPersistentDelivery,
		rabbitmq.WithPublishOptionsExchange(ExchangeName),
	)
	p.m.RecordRabbitPublish(routingKey, err)
	if err != nil {
		p.log.Error().Err(err).Ctx(ctx).Str("routing_key", routingKey).Msg("failed to publish message")
		return err
	}

	p.log.Debug().Ctx(ctx).Str("routing_key", routingKey).Msg("message published")
	return nil
}

// PublishSubscriptionCreated hands the welcome flow of sub to the consumer.
func (p *Producer) PublishSubscriptionCreated(ctx context.Context, sub models.Subscription) error {
	event := SubscriptionCreatedEvent{
		EventID:        uuid.NewString(),
		Source:         subscriptionCreatedEventSource,
		SubscriptionID: sub.ID,
		Topic:          sub.Topic,
		Email:          sub.Email,
		Frequency:      sub.Frequency,
		CreatedAt:      sub.CreatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal subscription event")
		return err
	}

	return p.Publish(ctx, SubscriptionCreatedRoutingKey, body)
}
