package messaging

import (
	"github.com/rs/zerolog"
	"github.com/wagslane/go-rabbitmq"
)

func NewConn(address string) (*rabbitmq.Conn, error) {
	return rabbitmq.NewConn(address, rabbitmq.WithConnectionOptionsLogging)
}

// NewPublisher declares the exchange and logs returned messages.
func NewPublisher(conn *rabbitmq.Conn, logger zerolog.Logger) (*rabbitmq.Publisher, error) {
	publisher, err := rabbitmq.NewPublisher(
		conn,
		rabbitmq.WithPublisherOptionsExchangeName(ExchangeName),
		rabbitmq.WithPublisherOptionsExchangeDeclare,
		rabbitmq.WithPublisherOptionsExchangeDurable,
		rabbitmq.WithPublisherOptionsLogging,
	)
	if err != nil {
		return nil, err
	}

	publisher.NotifyReturn(func(r rabbitmq.Return) {
		logger.Warn().
			Int("reply_code", int(r.ReplyCode)).
			Str("routing_key", r.RoutingKey).
			Msg("message returned from server")
	})

	return publisher, nil
}

func NewSubscriptionConsumer(conn *rabbitmq.Conn) (*rabbitmq.Consumer, error) {
	return rabbitmq.NewConsumer(
		conn,
		SubscriptionCreatedQueueName,
		rabbitmq.WithConsumerOptionsExchangeName(ExchangeName),
		rabbitmq.WithConsumerOptionsExchangeDeclare,
		rabbitmq.WithConsumerOptionsExchangeDurable,
		rabbitmq.WithConsumerOptionsRoutingKey(SubscriptionCreatedRoutingKey),
		rabbitmq.WithConsumerOptionsQueueDurable,
	)
}
