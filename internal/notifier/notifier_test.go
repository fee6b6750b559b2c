package notifier_test

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
	"github.com/Nazarious-ucu/news-collector/internal/notifier"
)

type mockSubs struct {
	mock.Mock
}

func (m *mockSubs) ListActive(ctx context.Context, email string) ([]models.Subscription, error) {
	args := m.Called(ctx, email)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

func (m *mockSubs) UpdateLastSent(ctx context.Context, id int, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockNews struct {
	mock.Mock
}

func (m *mockNews) SaveItems(ctx context.Context, items []models.NewsItem) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error) {
	args := m.Called(ctx, topic, limit)
	items, _ := args.Get(0).([]models.NewsItem)
	return items, args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendNewsletter(to, topic string, items []models.NewsItem) error {
	return m.Called(to, topic, items).Error(0)
}

type fixture struct {
	subs      *mockSubs
	news      *mockNews
	collector *mockCollector
	sender    *mockSender
	m         *metrics.Metrics
	n         *notifier.Notifier
}

func newFixture(t *testing.T, ns string) *fixture {
	t.Helper()
	f := &fixture{
		subs:      &mockSubs{},
		news:      &mockNews{},
		collector: &mockCollector{},
		sender:    &mockSender{},
		m:         metrics.NewMetrics(ns, nil, ""),
	}
	f.n = notifier.New(f.subs, f.news, f.collector, f.sender, zerolog.Nop(), "@every 1h", f.m)
	t.Cleanup(func() {
		f.subs.AssertExpectations(t)
		f.news.AssertExpectations(t)
		f.collector.AssertExpectations(t)
		f.sender.AssertExpectations(t)
	})
	return f
}

func TestSendOne(t *testing.T) {
	sub := models.Subscription{ID: 1, Topic: "AI", Email: "a@b.com", Frequency: "daily"}
	items := []models.NewsItem{{Title: "t", URL: "u", Topic: "AI"}}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, "test_sendone_ok")
		f.collector.On("Collect", mock.Anything, "AI", 10).Return(items, nil).Once()
		f.news.On("SaveItems", mock.Anything, items).Return(1, nil).Once()
		f.sender.On("SendNewsletter", "a@b.com", "AI", items).Return(nil).Once()
		f.subs.On("UpdateLastSent", mock.Anything, 1, mock.Anything).Return(nil).Once()

		assert.Equal(t, notifier.OutcomeSent, f.n.SendOne(context.Background(), sub, 10))
		assert.InDelta(t, 1, testutil.ToFloat64(f.m.NewslettersSent.WithLabelValues("scheduled", "ok")), 0)
	})

	t.Run("NoNews", func(t *testing.T) {
		f := newFixture(t, "test_sendone_empty")
		f.collector.On("Collect", mock.Anything, "AI", 10).Return([]models.NewsItem{}, nil).Once()

		assert.Equal(t, notifier.OutcomeNoNews, f.n.SendOne(context.Background(), sub, 10))
	})

	t.Run("SendFailureKeepsLastSent", func(t *testing.T) {
		f := newFixture(t, "test_sendone_fail")
		f.collector.On("Collect", mock.Anything, "AI", 10).Return(items, nil).Once()
		f.news.On("SaveItems", mock.Anything, items).Return(1, nil).Once()
		f.sender.On("SendNewsletter", "a@b.com", "AI", items).Return(errors.New("smtp down")).Once()

		assert.Equal(t, notifier.OutcomeFailed, f.n.SendOne(context.Background(), sub, 10))
		f.subs.AssertNotCalled(t, "UpdateLastSent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CollectError", func(t *testing.T) {
		f := newFixture(t, "test_sendone_collect")
		f.collector.On("Collect", mock.Anything, "AI", 10).Return(nil, errors.New("breaker open")).Once()

		assert.Equal(t, notifier.OutcomeFailed, f.n.SendOne(context.Background(), sub, 10))
	})
}

func TestCheckAndSend_OnlyDueSubscriptions(t *testing.T) {
	f := newFixture(t, "test_check")
	recent := time.Now().Add(-2 * time.Hour)
	old := time.Now().Add(-200 * time.Hour)
	items := []models.NewsItem{{Title: "t", URL: "u"}}

	f.subs.On("ListActive", mock.Anything, "").Return([]models.Subscription{
		{ID: 1, Topic: "AI", Email: "a@b.com", Frequency: "daily"},
		{ID: 2, Topic: "Go", Email: "g@o.dev", Frequency: "daily", LastSent: &recent},
		{ID: 3, Topic: "Rust", Email: "r@s.rs", Frequency: "weekly", LastSent: &old},
	}, nil).Once()
	f.collector.On("Collect", mock.Anything, "AI", 10).Return(items, nil).Once()
	f.collector.On("Collect", mock.Anything, "Rust", 10).Return([]models.NewsItem{}, nil).Once()
	f.news.On("SaveItems", mock.Anything, items).Return(1, nil).Once()
	f.sender.On("SendNewsletter", "a@b.com", "AI", items).Return(nil).Once()
	f.subs.On("UpdateLastSent", mock.Anything, 1, mock.Anything).Return(nil).Once()

	res := f.n.CheckAndSend(context.Background())

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Due)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.NoNews)
	assert.Equal(t, 0, res.Failed)
}

func TestSendAll_IgnoresSchedule(t *testing.T) {
	f := newFixture(t, "test_sendall")
	recent := time.Now().Add(-time.Minute)
	items := []models.NewsItem{{Title: "t", URL: "u"}}

	f.subs.On("ListActive", mock.Anything, "").Return([]models.Subscription{
		{ID: 2, Topic: "Go", Email: "g@o.dev", Frequency: "daily", LastSent: &recent},
	}, nil).Once()
	f.collector.On("Collect", mock.Anything, "Go", 5).Return(items, nil).Once()
	f.news.On("SaveItems", mock.Anything, items).Return(0, nil).Once()
	f.sender.On("SendNewsletter", "g@o.dev", "Go", items).Return(errors.New("refused")).Once()

	res := f.n.SendAll(context.Background())

	assert.Equal(t, notifier.RunResult{Total: 1, Due: 1, Failed: 1, Elapsed: res.Elapsed}, res)
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, "test_startstop")
	require.NoError(t, f.n.Start(context.Background()))
	f.n.Stop()

	bad := notifier.New(f.subs, f.news, f.collector, f.sender, zerolog.Nop(), "not a spec", f.m)
	require.Error(t, bad.Start(context.Background()))
}
