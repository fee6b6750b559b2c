package subscriptions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
	"github.com/Nazarious-ucu/news-collector/internal/services/subscriptions"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, data models.UserSubData) (models.Subscription, error) {
	args := m.Called(ctx, data)
	sub, _ := args.Get(0).(models.Subscription)
	return sub, args.Error(1)
}

func (m *mockRepo) ListActive(ctx context.Context, email string) ([]models.Subscription, error) {
	args := m.Called(ctx, email)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

func (m *mockRepo) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockWelcomer struct {
	mock.Mock
}

func (m *mockWelcomer) Handle(ctx context.Context, sub models.Subscription) models.WelcomeResult {
	res, _ := m.Called(ctx, sub).Get(0).(models.WelcomeResult)
	return res
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishSubscriptionCreated(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func TestService_Subscribe(t *testing.T) {
	data := models.UserSubData{Topic: "AI", Email: "a@b.com", Frequency: "weekly"}
	sub := models.Subscription{ID: 1, Topic: "AI", Email: "a@b.com", Frequency: "weekly", IsActive: true}
	sent := models.WelcomeResult{Action: models.WelcomeSent, NewsCount: 2}

	t.Run("InlineWelcome", func(t *testing.T) {
		repo, w := &mockRepo{}, &mockWelcomer{}
		repo.On("Create", mock.Anything, data).Return(sub, nil).Once()
		w.On("Handle", mock.Anything, sub).Return(sent).Once()
		t.Cleanup(func() {
			repo.AssertExpectations(t)
			w.AssertExpectations(t)
		})

		m := metrics.NewMetrics("test_subscribe_inline", nil, "")
		got, res, err := subscriptions.NewService(repo, w, nil, zerolog.Nop(), m).Subscribe(context.Background(), data)

		require.NoError(t, err)
		assert.Equal(t, sub, got)
		assert.Equal(t, sent, res)
		assert.InDelta(t, 1, testutil.ToFloat64(m.SubscriptionsCreated.WithLabelValues("weekly")), 0)
	})

	t.Run("Queued", func(t *testing.T) {
		repo, w, p := &mockRepo{}, &mockWelcomer{}, &mockPublisher{}
		repo.On("Create", mock.Anything, data).Return(sub, nil).Once()
		p.On("PublishSubscriptionCreated", mock.Anything, sub).Return(nil).Once()
		t.Cleanup(func() {
			p.AssertExpectations(t)
			w.AssertNumberOfCalls(t, "Handle", 0)
		})

		m := metrics.NewMetrics("test_subscribe_queued", nil, "")
		_, res, err := subscriptions.NewService(repo, w, p, zerolog.Nop(), m).Subscribe(context.Background(), data)

		require.NoError(t, err)
		assert.Equal(t, models.WelcomeQueued, res.Action)
	})

	t.Run("PublishFailsFallsBackInline", func(t *testing.T) {
		repo, w, p := &mockRepo{}, &mockWelcomer{}, &mockPublisher{}
		repo.On("Create", mock.Anything, data).Return(sub, nil).Once()
		p.On("PublishSubscriptionCreated", mock.Anything, sub).Return(errors.New("closed")).Once()
		w.On("Handle", mock.Anything, sub).Return(sent).Once()
		t.Cleanup(func() {
			p.AssertExpectations(t)
			w.AssertExpectations(t)
		})

		m := metrics.NewMetrics("test_subscribe_fallback", nil, "")
		_, res, err := subscriptions.NewService(repo, w, p, zerolog.Nop(), m).Subscribe(context.Background(), data)

		require.NoError(t, err)
		assert.Equal(t, sent, res)
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		repo, w := &mockRepo{}, &mockWelcomer{}
		repo.On("Create", mock.Anything, data).Return(models.Subscription{}, models.ErrSubscriptionExists).Once()
		t.Cleanup(func() { w.AssertNumberOfCalls(t, "Handle", 0) })

		m := metrics.NewMetrics("test_subscribe_exists", nil, "")
		_, _, err := subscriptions.NewService(repo, w, nil, zerolog.Nop(), m).Subscribe(context.Background(), data)

		require.ErrorIs(t, err, models.ErrSubscriptionExists)
	})
}

func TestService_CancelAndStatus(t *testing.T) {
	ctx := context.Background()
	recent := time.Now().Add(-time.Hour)

	repo := &mockRepo{}
	repo.On("Deactivate", mock.Anything, 4).Return(nil).Once()
	repo.On("Deactivate", mock.Anything, 5).Return(models.ErrSubscriptionNotFound).Once()
	repo.On("ListActive", mock.Anything, "").Return([]models.Subscription{
		{ID: 1, Topic: "AI", Email: "a@b.com", Frequency: "daily"},
		{ID: 2, Topic: "Go", Email: "g@o.dev", Frequency: "weekly", LastSent: &recent},
	}, nil).Once()
	t.Cleanup(func() { repo.AssertExpectations(t) })

	m := metrics.NewMetrics("test_cancel_status", nil, "")
	svc := subscriptions.NewService(repo, &mockWelcomer{}, nil, zerolog.Nop(), m)

	require.NoError(t, svc.Cancel(ctx, 4))
	require.ErrorIs(t, svc.Cancel(ctx, 5), models.ErrSubscriptionNotFound)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SubscriptionsCanceled), 0)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].ShouldSendNow)
	assert.False(t, status[1].ShouldSendNow)
}
