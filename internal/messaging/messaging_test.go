package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wagslane/go-rabbitmq"

	"github.com/Nazarious-ucu/news-collector/internal/messaging"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishWithContext(
	ctx context.Context,
	data []byte,
	routingKeys []string,
	_ ...func(*rabbitmq.PublishOptions),
) error {
	return m.Called(ctx, data, routingKeys).Error(0)
}

type mockWelcomer struct {
	mock.Mock
}

func (m *mockWelcomer) Handle(ctx context.Context, sub models.Subscription) models.WelcomeResult {
	res, _ := m.Called(ctx, sub).Get(0).(models.WelcomeResult)
	return res
}

func TestProducer_PublishSubscriptionCreated(t *testing.T) {
	sub := models.Subscription{
		ID: 3, Topic: "AI", Email: "a@b.com", Frequency: "weekly",
		CreatedAt: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		m := metrics.NewMetrics("test_producer_ok", nil, "")
		pub := &mockPublisher{}
		var body []byte
		pub.On("PublishWithContext", mock.Anything, mock.Anything, []string{messaging.SubscriptionCreatedRoutingKey}).
			Run(func(args mock.Arguments) { body, _ = args.Get(1).([]byte) }).
			Return(nil).Once()
		t.Cleanup(func() { pub.AssertExpectations(t) })

		err := messaging.NewProducer(pub, zerolog.Nop(), m).PublishSubscriptionCreated(context.Background(), sub)
		require.NoError(t, err)

		var evt messaging.SubscriptionCreatedEvent
		require.NoError(t, json.Unmarshal(body, &evt))
		assert.NotEmpty(t, evt.EventID)
		assert.Equal(t, 3, evt.SubscriptionID)
		assert.Equal(t, "AI", evt.Topic)
		assert.Equal(t, "a@b.com", evt.Email)
		assert.Equal(t, "weekly", evt.Frequency)
		assert.InDelta(t, 1, testutil.ToFloat64(
			m.RabbitPublishTotal.WithLabelValues(messaging.SubscriptionCreatedRoutingKey, "ok")), 0)
	})

	t.Run("PublishError", func(t *testing.T) {
		m := metrics.NewMetrics("test_producer_err", nil, "")
		pub := &mockPublisher{}
		pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("channel closed")).Once()

		err := messaging.NewProducer(pub, zerolog.Nop(), m).PublishSubscriptionCreated(context.Background(), sub)
		require.Error(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(
			m.RabbitPublishTotal.WithLabelValues(messaging.SubscriptionCreatedRoutingKey, "error")), 0)
	})
}

func TestConsumer_HandleSubscriptionCreated(t *testing.T) {
	body, err := json.Marshal(messaging.SubscriptionCreatedEvent{
		EventID: "e1", SubscriptionID: 9, Topic: "Go", Email: "g@o.dev", Frequency: "daily",
	})
	require.NoError(t, err)

	matchSub := mock.MatchedBy(func(s models.Subscription) bool {
		return s.ID == 9 && s.Topic == "Go" && s.Email == "g@o.dev" && s.Frequency == "daily"
	})

	tests := []struct {
		name   string
		body   []byte
		result *models.WelcomeResult
		want   rabbitmq.Action
	}{
		{"Sent", body, &models.WelcomeResult{Action: models.WelcomeSent}, rabbitmq.Ack},
		{"WaitForSchedule", body, &models.WelcomeResult{Action: models.WelcomeWaitForSchedule}, rabbitmq.Ack},
		{"WelcomeError", body, &models.WelcomeResult{Action: models.WelcomeError}, rabbitmq.NackDiscard},
		{"MalformedBody", []byte("{"), nil, rabbitmq.NackDiscard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &mockWelcomer{}
			if tc.result != nil {
				w.On("Handle", mock.Anything, matchSub).Return(*tc.result).Once()
			}
			t.Cleanup(func() { w.AssertExpectations(t) })

			c := messaging.NewConsumer(w, zerolog.Nop(), metrics.NewMetrics("test_consumer", nil, ""))
			assert.Equal(t, tc.want, c.HandleSubscriptionCreated(tc.body))
		})
	}
}
