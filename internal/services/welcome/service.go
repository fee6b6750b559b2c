package welcome

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	recentWindow = 7 * 24 * time.Hour
	welcomeLimit = 5
)

type newsRepository interface {
	RecentByTopic(ctx context.Context, topic string, since time.Time, limit int) ([]models.NewsItem, error)
	SaveItems(ctx context.Context, items []models.NewsItem) (int, error)
}

type collector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type welcomeSender interface {
	SendWelcome(to, topic string, items []models.NewsItem) error
}

type subscriptionRepository interface {
	UpdateLastSent(ctx context.Context, id int, at time.Time) error
}

// Service sends the first newsletter to a new subscriber.
type Service struct {
	news      newsRepository
	collector collector
	sender    welcomeSender
	subs      subscriptionRepository
	log       zerolog.Logger
	m         *metrics.Metrics
	now       func() time.Time
}

func NewService(
	news newsRepository,
	c collector,
	sender welcomeSender,
	subs subscriptionRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	logger = logger.With().Str("component", "WelcomeService").Logger()
	return &Service{news: news, collector: c, sender: sender, subs: subs, log: logger, m: m, now: time.Now}
}

// Handle uses news stored during the last week when there is some and collects fresh news otherwise.
func (s *Service) Handle(ctx context.Context, sub models.Subscription) models.WelcomeResult {
	result, err := s.handle(ctx, sub)
	if err != nil {
		s.log.Error().Err(err).Ctx(ctx).
			Int("subscription_id", sub.ID).
			Str("topic", sub.Topic).
			Msg("welcome flow failed")
		s.m.TechnicalErrors.WithLabelValues("welcome_error", "warning").Inc()
		return models.WelcomeResult{Action: models.WelcomeError, Message: "處理失敗: " + err.Error()}
	}

	s.log.Info().Ctx(ctx).
		Int("subscription_id", sub.ID).
		Str("action", result.Action).
		Int("news_count", result.NewsCount).
		Msg("welcome flow finished")
	return result
}

func (s *Service) handle(ctx context.Context, sub models.Subscription) (models.WelcomeResult, error) {
	recent, err := s.news.RecentByTopic(ctx, sub.Topic, s.now().Add(-recentWindow), welcomeLimit)
	if err != nil {
		return models.WelcomeResult{}, err
	}

	if len(recent) > 0 {
		if err := s.send(ctx, sub, recent); err != nil {
			return models.WelcomeResult{}, err
		}
		return models.WelcomeResult{
			Action:    models.WelcomeSent,
			NewsCount: len(recent),
			Message:   "立即發送歡迎email，包含現有新聞",
		}, nil
	}

	collected, err := s.collector.Collect(ctx, sub.Topic, welcomeLimit)
	if err != nil {
		return models.WelcomeResult{}, err
	}
	if len(collected) == 0 {
		return models.WelcomeResult{
			Action:  models.WelcomeWaitForSchedule,
			Message: "沒有收集到新聞，將在下次排程時再試",
		}, nil
	}

	if _, err := s.news.SaveItems(ctx, collected); err != nil {
		return models.WelcomeResult{}, err
	}
	if err := s.send(ctx, sub, collected); err != nil {
		return models.WelcomeResult{}, err
	}

	return models.WelcomeResult{
		Action:    models.WelcomeCollectedSent,
		NewsCount: len(collected),
		Message:   "收集新聞並發送歡迎email",
	}, nil
}

func (s *Service) send(ctx context.Context, sub models.Subscription, items []models.NewsItem) error {
	err := s.sender.SendWelcome(sub.Email, sub.Topic, items)
	s.m.RecordNewsletter("welcome", err)
	if err != nil {
		return err
	}
	return s.subs.UpdateLastSent(ctx, sub.ID, s.now())
}
