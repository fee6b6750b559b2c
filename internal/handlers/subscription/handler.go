package subscription

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const timeoutDuration = 10 * time.Second

type subscriber interface {
	Subscribe(ctx context.Context, data models.UserSubData) (models.Subscription, models.WelcomeResult, error)
	List(ctx context.Context, email string) ([]models.Subscription, error)
	Cancel(ctx context.Context, id int) error
	Status(ctx context.Context) ([]models.SubscriptionStatus, error)
}

type Handler struct {
	Service subscriber
	log     zerolog.Logger
}

func NewHandler(svc subscriber, logger zerolog.Logger) *Handler {
	logger = logger.With().Str("component", "SubscriptionHandler").Logger()
	return &Handler{Service: svc, log: logger}
}

type CreateResponse struct {
	Message       string               `json:"message"`
	Subscription  models.Subscription  `json:"subscription"`
	WelcomeAction models.WelcomeResult `json:"welcome_action"`
}

type ListResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

type StatusResponse struct {
	TotalSubscriptions int                         `json:"total_subscriptions"`
	Subscriptions      []models.SubscriptionStatus `json:"subscriptions"`
}

// Create
// @Summary Create a subscription
// @Description Subscribes an email to a news topic and starts the welcome flow.
// @Tags subscription
// @Accept json
// @Produce json
// @Param subscription body models.UserSubData true "Subscription"
// @Success 201 {object} CreateResponse
// @Failure 400
// @Failure 409
// @Failure 500
// @Router /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	var data models.UserSubData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.log.Warn().Err(err).Msg("failed to bind subscription body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "請求格式錯誤"})
		return
	}
	if field := data.MissingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要欄位: " + field})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	sub, welcome, err := h.Service.Subscribe(ctx, data)
	if err != nil {
		if errors.Is(err, models.ErrSubscriptionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "此主題訂閱已存在"})
			return
		}
		h.log.Error().Err(err).Str("topic", data.Topic).Msg("failed to create subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "建立訂閱失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CreateResponse{
		Message:       "訂閱建立成功",
		Subscription:  sub,
		WelcomeAction: welcome,
	})
}

// List
// @Summary List active subscriptions
// @Tags subscription
// @Produce json
// @Param email query string false "Only subscriptions of this email"
// @Success 200 {object} ListResponse
// @Failure 500
// @Router /subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	subs, err := h.Service.List(ctx, c.Query("email"))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list subscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "取得訂閱失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Subscriptions: subs})
}

// Cancel
// @Summary Cancel a subscription
// @Tags subscription
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /subscriptions/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的訂閱ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.Service.Cancel(ctx, id); err != nil {
		if errors.Is(err, models.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "訂閱不存在"})
			return
		}
		h.log.Error().Err(err).Int("subscription_id", id).Msg("failed to cancel subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "取消訂閱失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "訂閱已取消"})
}

// Status
// @Summary Delivery status of active subscriptions
// @Tags subscription
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500
// @Router /subscription-status [get]
func (h *Handler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	status, err := h.Service.Status(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build subscription status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "檢查訂閱狀態失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{TotalSubscriptions: len(status), Subscriptions: status})
}
