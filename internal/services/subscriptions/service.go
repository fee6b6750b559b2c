package subscriptions

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, data models.UserSubData) (models.Subscription, error)
	ListActive(ctx context.Context, email string) ([]models.Subscription, error)
	Deactivate(ctx context.Context, id int) error
}

type welcomer interface {
	Handle(ctx context.Context, sub models.Subscription) models.WelcomeResult
}

type eventPublisher interface {
	PublishSubscriptionCreated(ctx context.Context, sub models.Subscription) error
}

type Service struct {
	repo      SubscriptionRepository
	welcome   welcomer
	publisher eventPublisher
	log       zerolog.Logger
	m         *metrics.Metrics
	now       func() time.Time
}

// NewService accepts a nil publisher, in which case the welcome flow runs inline.
func NewService(
	repo SubscriptionRepository,
	welcome welcomer,
	publisher eventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	logger = logger.With().Str("component", "SubscriptionService").Logger()
	return &Service{repo: repo, welcome: welcome, publisher: publisher, log: logger, m: m, now: time.Now}
}

// Subscribe stores the subscription and starts the welcome flow.
func (s *Service) Subscribe(
	ctx context.Context,
	data models.UserSubData,
) (models.Subscription, models.WelcomeResult, error) {
	sub, err := s.repo.Create(ctx, data)
	if err != nil {
		return models.Subscription{}, models.WelcomeResult{}, err
	}
	s.m.SubscriptionsCreated.WithLabelValues(sub.Frequency).Inc()

	if s.publisher != nil {
		err := s.publisher.PublishSubscriptionCreated(ctx, sub)
		if err == nil {
			return sub, models.WelcomeResult{
				Action:  models.WelcomeQueued,
				Message: "歡迎email已排入佇列",
			}, nil
		}
		s.log.Warn().Err(err).Ctx(ctx).Int("subscription_id", sub.ID).
			Msg("failed to queue welcome flow, running inline")
	}

	return sub, s.welcome.Handle(ctx, sub), nil
}

func (s *Service) List(ctx context.Context, email string) ([]models.Subscription, error) {
	return s.repo.ListActive(ctx, email)
}

func (s *Service) Cancel(ctx context.Context, id int) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.m.SubscriptionsCanceled.Inc()
	return nil
}

// Status lists every active subscription with whether a newsletter is due now.
func (s *Service) Status(ctx context.Context) ([]models.SubscriptionStatus, error) {
	subs, err := s.repo.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.SubscriptionStatus, 0, len(subs))
	for _, sub := range subs {
		out = append(out, models.SubscriptionStatus{
			ID:            sub.ID,
			Email:         sub.Email,
			Topic:         sub.Topic,
			Frequency:     sub.Frequency,
			LastSent:      sub.LastSent,
			ShouldSendNow: sub.ShouldSend(now),
			CreatedAt:     sub.CreatedAt,
		})
	}
	return out, nil
}
