package newsletter

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
	"github.com/Nazarious-ucu/news-collector/internal/notifier"
)

const (
	timeoutDuration = 2 * time.Minute

	defaultTopic  = "AI 人工智慧"
	testNewsLimit = 3
)

type newsletterSender interface {
	SendNewsletter(to, topic string, items []models.NewsItem) error
}

type newsRepository interface {
	SaveItems(ctx context.Context, items []models.NewsItem) (int, error)
	List(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type collector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type runner interface {
	CheckAndSend(ctx context.Context) notifier.RunResult
	SendAll(ctx context.Context) notifier.RunResult
}

type Handler struct {
	sender    newsletterSender
	news      newsRepository
	collector collector
	runner    runner
	log       zerolog.Logger
	m         *metrics.Metrics
	now       func() time.Time
}

func NewHandler(
	sender newsletterSender,
	news newsRepository,
	c collector,
	r runner,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Handler {
	logger = logger.With().Str("component", "NewsletterHandler").Logger()
	return &Handler{sender: sender, news: news, collector: c, runner: r, log: logger, m: m, now: time.Now}
}

type TestEmailRequest struct {
	Email string `json:"email"`
	Topic string `json:"topic"`
}

type TestEmailResponse struct {
	Message   string `json:"message"`
	Topic     string `json:"topic"`
	NewsCount int    `json:"news_count"`
}

type SendAllResponse struct {
	Message            string `json:"message"`
	TotalSubscriptions int    `json:"total_subscriptions"`
	Sent               int    `json:"sent"`
	Failed             int    `json:"failed"`
}

type SchedulerResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TestEmail
// @Summary Send a test newsletter
// @Description Sends a newsletter for the topic using stored news, collecting some first when none exist.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body TestEmailRequest true "Recipient and topic"
// @Success 200 {object} TestEmailResponse
// @Failure 400
// @Failure 500
// @Router /test-email [post]
func (h *Handler) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請提供收件人email"})
		return
	}
	if req.Topic == "" {
		req.Topic = defaultTopic
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	items, err := h.news.List(ctx, req.Topic, testNewsLimit)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("failed to load stored news")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email測試失敗: " + err.Error()})
		return
	}
	if len(items) == 0 {
		items, err = h.collector.Collect(ctx, req.Topic, testNewsLimit)
		if err != nil {
			h.log.Error().Err(err).Str("topic", req.Topic).Msg("news collection failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email測試失敗: " + err.Error()})
			return
		}
		if _, err := h.news.SaveItems(ctx, items); err != nil {
			h.log.Warn().Err(err).Str("topic", req.Topic).Msg("failed to save collected news")
		}
	}

	err = h.sender.SendNewsletter(req.Email, req.Topic, items)
	h.m.RecordNewsletter("test", err)
	if err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("test newsletter failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email發送失敗，請檢查SMTP設定"})
		return
	}

	c.JSON(http.StatusOK, TestEmailResponse{
		Message:   "測試email已發送至 " + req.Email,
		Topic:     req.Topic,
		NewsCount: len(items),
	})
}

// SendAll
// @Summary Send newsletters to every active subscription
// @Tags newsletter
// @Produce json
// @Success 200 {object} SendAllResponse
// @Router /send-newsletters [post]
func (h *Handler) SendAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	res := h.runner.SendAll(ctx)
	if res.Total == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "沒有活躍的訂閱"})
		return
	}

	c.JSON(http.StatusOK, SendAllResponse{
		Message:            "電子報發送完成",
		TotalSubscriptions: res.Total,
		Sent:               res.Sent,
		Failed:             res.Failed,
	})
}

// RunScheduler
// @Summary Run one scheduler check now
// @Tags newsletter
// @Produce json
// @Success 200 {object} SchedulerResponse
// @Router /test-scheduler [post]
func (h *Handler) RunScheduler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	res := h.runner.CheckAndSend(ctx)
	h.log.Info().Int("due", res.Due).Int("sent", res.Sent).Int("failed", res.Failed).
		Msg("manual scheduler check finished")

	c.JSON(http.StatusOK, SchedulerResponse{
		Message:   "排程檢查已完成",
		Timestamp: h.now().UTC(),
	})
}
