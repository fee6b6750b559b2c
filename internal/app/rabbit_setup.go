package app

import (
	"github.com/Nazarious-ucu/news-collector/internal/messaging"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/services/welcome"
)

// setupRabbit connects the subscription-created publisher and its consumer.
// On error nothing is left open.
func (a *App) setupRabbit(srvContainer *ServiceContainer, welcomeSvc *welcome.Service, m *metrics.Metrics) error {
	conn, err := messaging.NewConn(a.cfg.RabbitMQ.Address())
	if err != nil {
		return err
	}

	publisher, err := messaging.NewPublisher(conn, a.l)
	if err != nil {
		_ = conn.Close()
		return err
	}

	consumer, err := messaging.NewSubscriptionConsumer(conn)
	if err != nil {
		publisher.Close()
		_ = conn.Close()
		return err
	}

	a.l.Info().Str("host", a.cfg.RabbitMQ.Host).Msg("Connected to RabbitMQ")

	srvContainer.rabbitConn = conn
	srvContainer.publisher = publisher
	srvContainer.rabbitConsumer = consumer
	srvContainer.Consumer = messaging.NewConsumer(welcomeSvc, a.l, m)
	return nil
}
