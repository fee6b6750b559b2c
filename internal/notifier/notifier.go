package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	timeoutDuration = 5 * time.Minute

	jobNewsletterCheck = "newsletter_check"
	jobSendAll         = "send_newsletters"

	scheduledLimit = 10
	manualLimit    = 5
)

type subscriptionRepository interface {
	ListActive(ctx context.Context, email string) ([]models.Subscription, error)
	UpdateLastSent(ctx context.Context, id int, at time.Time) error
}

type newsRepository interface {
	SaveItems(ctx context.Context, items []models.NewsItem) (int, error)
}

type collector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type newsletterSender interface {
	SendNewsletter(to, topic string, items []models.NewsItem) error
}

// Outcome of one SendOne call.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeNoNews
	OutcomeFailed
)

// RunResult summarizes a batch of newsletter sends.
type RunResult struct {
	Total   int           `json:"total_subscriptions"`
	Due     int           `json:"due"`
	Sent    int           `json:"sent"`
	NoNews  int           `json:"no_news"`
	Failed  int           `json:"failed"`
	Elapsed time.Duration `json:"-"`
}

// Notifier periodically sends newsletters to subscriptions that are due.
type Notifier struct {
	subs      subscriptionRepository
	news      newsRepository
	collector collector
	sender    newsletterSender
	logger    zerolog.Logger
	cron      *cron.Cron
	cancel    context.CancelFunc
	m         *metrics.Metrics
	spec      string
	now       func() time.Time
}

func New(
	subs subscriptionRepository,
	news newsRepository,
	c collector,
	sender newsletterSender,
	logger zerolog.Logger,
	spec string,
	m *metrics.Metrics,
) *Notifier {
	logger = logger.With().Str("component", "Notifier").Logger()
	return &Notifier{
		subs:      subs,
		news:      news,
		collector: c,
		sender:    sender,
		logger:    logger,
		cron:      cron.New(),
		m:         m,
		spec:      spec,
		now:       time.Now,
	}
}

// Start schedules the newsletter check.
func (n *Notifier) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	job := func() { n.m.CronJob(jobNewsletterCheck, func() { n.CheckAndSend(ctx) }) }
	if _, err := n.cron.AddFunc(n.spec, job); err != nil {
		n.logger.Error().Err(err).Str("spec", n.spec).Msg("failed to schedule newsletter check")
		n.m.TechnicalErrors.WithLabelValues("cron_schedule_error", "critical").Inc()
		cancel()
		return err
	}

	n.cron.Start()
	n.logger.Info().Str("spec", n.spec).Msg("Newsletter notifier started")
	return nil
}

// Stop cancels the scheduled job and waits for a running check to finish.
func (n *Notifier) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	stopCtx := n.cron.Stop()
	<-stopCtx.Done()
	n.logger.Info().Msg("All cron jobs finished, notifier stopped")
}

// CheckAndSend sends a newsletter to every active subscription whose frequency interval has passed.
func (n *Notifier) CheckAndSend(ctx context.Context) RunResult {
	now := n.now()
	return n.run(ctx, jobNewsletterCheck, scheduledLimit, func(sub models.Subscription) bool {
		return sub.ShouldSend(now)
	})
}

// SendAll sends a newsletter to every active subscription regardless of schedule.
func (n *Notifier) SendAll(ctx context.Context) RunResult {
	return n.run(ctx, jobSendAll, manualLimit, func(models.Subscription) bool { return true })
}

func (n *Notifier) run(
	ctx context.Context,
	job string,
	limit int,
	due func(models.Subscription) bool,
) RunResult {
	start := time.Now()
	n.logger.Debug().Str("job", job).Msg("starting run")

	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	subs, err := n.subs.ListActive(ctx, "")
	if err != nil {
		n.logger.Error().Err(err).Str("job", job).Msg("error fetching active subscriptions")
		n.m.TechnicalErrors.WithLabelValues("fetch_active_subs", "critical").Inc()
		return RunResult{}
	}

	result := RunResult{Total: len(subs)}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, sub := range subs {
		if !due(sub) {
			continue
		}
		result.Due++

		wg.Add(1)
		go func(s models.Subscription) {
			defer wg.Done()
			outcome := n.SendOne(ctx, s, limit)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case OutcomeSent:
				result.Sent++
			case OutcomeNoNews:
				result.NoNews++
			case OutcomeFailed:
				result.Failed++
			}
		}(sub)
	}

	wg.Wait()

	result.Elapsed = time.Since(start)
	n.logger.Info().
		Str("job", job).
		Int("total", result.Total).
		Int("due", result.Due).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Dur("duration", result.Elapsed).
		Msg("completed run")
	return result
}

// SendOne collects news for the subscription's topic, stores it, mails it and updates last_sent.
func (n *Notifier) SendOne(ctx context.Context, sub models.Subscription, limit int) Outcome {
	log := n.logger.With().Int("subscription_id", sub.ID).Str("topic", sub.Topic).Logger()

	items, err := n.collector.Collect(ctx, sub.Topic, limit)
	if err != nil {
		log.Error().Err(err).Msg("news collection error")
		n.m.TechnicalErrors.WithLabelValues("news_collect_error", "warning").Inc()
		return OutcomeFailed
	}
	if len(items) == 0 {
		log.Info().Msg("no news found, skipping")
		return OutcomeNoNews
	}

	if _, err := n.news.SaveItems(ctx, items); err != nil {
		log.Warn().Err(err).Msg("failed to save collected news")
	}

	err = n.sender.SendNewsletter(sub.Email, sub.Topic, items)
	n.m.RecordNewsletter("scheduled", err)
	if err != nil {
		log.Error().Err(err).Str("email", sub.Email).Msg("email send error")
		return OutcomeFailed
	}

	if err := n.subs.UpdateLastSent(ctx, sub.ID, n.now()); err != nil {
		log.Error().Err(err).Msg("failed to update last_sent")
		n.m.TechnicalErrors.WithLabelValues("db_update_error", "critical").Inc()
		return OutcomeFailed
	}

	log.Info().Int("news_count", len(items)).Msg("newsletter sent")
	return OutcomeSent
}
