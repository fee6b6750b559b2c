package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	timeoutDuration = 30 * time.Second

	DefaultTopic        = "AI 人工智慧"
	defaultCollectLimit = 5
	defaultListLimit    = 10
)

type collector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type newsRepository interface {
	SaveItems(ctx context.Context, items []models.NewsItem) (int, error)
	List(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type Handler struct {
	collector collector
	repo      newsRepository
	log       zerolog.Logger
}

func NewHandler(c collector, repo newsRepository, logger zerolog.Logger) *Handler {
	logger = logger.With().Str("component", "NewsHandler").Logger()
	return &Handler{collector: c, repo: repo, log: logger}
}

type CollectRequest struct {
	Topic string `json:"topic"`
	Limit int    `json:"limit"`
}

type CollectResponse struct {
	Message   string            `json:"message"`
	Topic     string            `json:"topic"`
	Collected int               `json:"collected"`
	Saved     int               `json:"saved"`
	NewsItems []models.NewsItem `json:"news_items"`
}

type ListResponse struct {
	Count     int               `json:"count"`
	NewsItems []models.NewsItem `json:"news_items"`
}

// Collect
// @Summary Collect news for a topic
// @Description Fetches news for the topic from the feed and stores the new items.
// @Tags news
// @Accept json
// @Produce json
// @Param request body CollectRequest false "Topic and limit"
// @Success 200 {object} CollectResponse
// @Failure 400
// @Failure 500
// @Router /test-news-collection [post]
func (h *Handler) Collect(c *gin.Context) {
	var req CollectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Warn().Err(err).Msg("failed to bind collect body")
			c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤"})
			return
		}
	}
	if req.Topic == "" {
		req.Topic = DefaultTopic
	}
	if req.Limit <= 0 {
		req.Limit = defaultCollectLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	items, err := h.collector.Collect(ctx, req.Topic, req.Limit)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("news collection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "新聞收集測試失敗: " + err.Error()})
		return
	}

	if len(items) == 0 {
		c.JSON(http.StatusOK, CollectResponse{
			Message:   "未收集到新聞",
			Topic:     req.Topic,
			NewsItems: []models.NewsItem{},
		})
		return
	}

	saved, err := h.repo.SaveItems(ctx, items)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("failed to save collected news")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "新聞收集測試失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, CollectResponse{
		Message:   fmt.Sprintf("成功收集 %d 則新聞，儲存 %d 則", len(items), saved),
		Topic:     req.Topic,
		Collected: len(items),
		Saved:     saved,
		NewsItems: items,
	})
}

// List
// @Summary List stored news
// @Tags news
// @Produce json
// @Param topic query string false "Topic filter"
// @Param limit query int false "Maximum number of items" default(10)
// @Success 200 {object} ListResponse
// @Failure 500
// @Router /news [get]
func (h *Handler) List(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "無效的limit參數"})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	items, err := h.repo.List(ctx, c.Query("topic"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list news")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "取得新聞失敗: " + err.Error()})
		return
	}
	if items == nil {
		items = []models.NewsItem{}
	}

	c.JSON(http.StatusOK, ListResponse{Count: len(items), NewsItems: items})
}
