package welcome_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
	"github.com/Nazarious-ucu/news-collector/internal/services/welcome"
)

type mockNews struct {
	mock.Mock
}

func (m *mockNews) RecentByTopic(ctx context.Context, topic string, since time.Time, limit int) ([]models.NewsItem, error) {
	args := m.Called(ctx, topic, since, limit)
	items, _ := args.Get(0).([]models.NewsItem)
	return items, args.Error(1)
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

func (m *mockSender) SendWelcome(to, topic string, items []models.NewsItem) error {
	return m.Called(to, topic, items).Error(0)
}

type mockSubs struct {
	mock.Mock
}

func (m *mockSubs) UpdateLastSent(ctx context.Context, id int, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func TestService_Handle(t *testing.T) {
	sub := models.Subscription{ID: 7, Topic: "AI", Email: "a@b.com", Frequency: "daily"}
	items := []models.NewsItem{{Title: "one", URL: "u1", Topic: "AI"}, {Title: "two", URL: "u2", Topic: "AI"}}

	tests := []struct {
		name       string
		setup      func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs)
		wantAction string
		wantCount  int
	}{
		{
			name: "RecentNewsExists",
			setup: func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs) {
				n.On("RecentByTopic", mock.Anything, "AI", mock.Anything, 5).Return(items, nil)
				s.On("SendWelcome", "a@b.com", "AI", items).Return(nil)
				r.On("UpdateLastSent", mock.Anything, 7, mock.Anything).Return(nil)
			},
			wantAction: models.WelcomeSent,
			wantCount:  2,
		},
		{
			name: "CollectsWhenNoRecentNews",
			setup: func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs) {
				n.On("RecentByTopic", mock.Anything, "AI", mock.Anything, 5).Return([]models.NewsItem{}, nil)
				c.On("Collect", mock.Anything, "AI", 5).Return(items, nil)
				n.On("SaveItems", mock.Anything, items).Return(2, nil)
				s.On("SendWelcome", "a@b.com", "AI", items).Return(nil)
				r.On("UpdateLastSent", mock.Anything, 7, mock.Anything).Return(nil)
			},
			wantAction: models.WelcomeCollectedSent,
			wantCount:  2,
		},
		{
			name: "NothingCollected",
			setup: func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs) {
				n.On("RecentByTopic", mock.Anything, "AI", mock.Anything, 5).Return([]models.NewsItem{}, nil)
				c.On("Collect", mock.Anything, "AI", 5).Return([]models.NewsItem{}, nil)
			},
			wantAction: models.WelcomeWaitForSchedule,
		},
		{
			name: "SendFails",
			setup: func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs) {
				n.On("RecentByTopic", mock.Anything, "AI", mock.Anything, 5).Return(items, nil)
				s.On("SendWelcome", "a@b.com", "AI", items).Return(errors.New("smtp down"))
			},
			wantAction: models.WelcomeError,
		},
		{
			name: "CollectFails",
			setup: func(n *mockNews, c *mockCollector, s *mockSender, r *mockSubs) {
				n.On("RecentByTopic", mock.Anything, "AI", mock.Anything, 5).Return([]models.NewsItem{}, nil)
				c.On("Collect", mock.Anything, "AI", 5).Return(nil, errors.New("breaker open"))
			},
			wantAction: models.WelcomeError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, c, s, r := &mockNews{}, &mockCollector{}, &mockSender{}, &mockSubs{}
			tc.setup(n, c, s, r)
			t.Cleanup(func() {
				n.AssertExpectations(t)
				c.AssertExpectations(t)
				s.AssertExpectations(t)
				r.AssertExpectations(t)
			})

			svc := welcome.NewService(n, c, s, r, zerolog.Nop(), metrics.NewMetrics("test_welcome", nil, ""))
			res := svc.Handle(context.Background(), sub)

			assert.Equal(t, tc.wantAction, res.Action)
			assert.Equal(t, tc.wantCount, res.NewsCount)
			assert.NotEmpty(t, res.Message)
		})
	}
}
