package subscription_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/news-collector/internal/handlers/subscription"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Subscribe(
	ctx context.Context,
	data models.UserSubData,
) (models.Subscription, models.WelcomeResult, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(models.Subscription), args.Get(1).(models.WelcomeResult), args.Error(2)
}

func (m *mockService) List(ctx context.Context, email string) ([]models.Subscription, error) {
	args := m.Called(ctx, email)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

func (m *mockService) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) Status(ctx context.Context) ([]models.SubscriptionStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).([]models.SubscriptionStatus)
	return status, args.Error(1)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &mockService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	h := subscription.NewHandler(svc, zerolog.Nop())
	r := gin.New()
	api := r.Group("/api")
	api.POST("/subscriptions", h.Create)
	api.GET("/subscriptions", h.List)
	api.DELETE("/subscriptions/:id", h.Cancel)
	api.GET("/subscription-status", h.Status)
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_Validation(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantBody string
	}{
		{"BadJSON", `{"topic":`, `{"error":"請求格式錯誤"}`},
		{"MissingTopic", `{"email":"a@b.com","frequency":"daily"}`, `{"error":"缺少必要欄位: topic"}`},
		{"MissingEmail", `{"topic":"AI","frequency":"daily"}`, `{"error":"缺少必要欄位: email"}`},
		{"MissingFrequency", `{"topic":"AI","email":"a@b.com"}`, `{"error":"缺少必要欄位: frequency"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := setupRouter(t)

			w := do(r, http.MethodPost, "/api/subscriptions", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestCreate(t *testing.T) {
	data := models.UserSubData{Topic: "AI", Email: "a@b.com", Frequency: "daily"}
	body := `{"topic":"AI","email":"a@b.com","frequency":"daily"}`

	t.Run("Created", func(t *testing.T) {
		r, svc := setupRouter(t)
		sub := models.Subscription{ID: 1, Topic: "AI", Email: "a@b.com", Frequency: "daily", IsActive: true}
		welcome := models.WelcomeResult{Action: models.WelcomeSent, NewsCount: 3, Message: "ok"}
		svc.On("Subscribe", mock.Anything, data).Return(sub, welcome, nil).Once()

		w := do(r, http.MethodPost, "/api/subscriptions", body)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp subscription.CreateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "訂閱建立成功", resp.Message)
		assert.Equal(t, 1, resp.Subscription.ID)
		assert.Equal(t, welcome, resp.WelcomeAction)
	})

	t.Run("Exists", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.On("Subscribe", mock.Anything, data).
			Return(models.Subscription{}, models.WelcomeResult{}, models.ErrSubscriptionExists).Once()

		w := do(r, http.MethodPost, "/api/subscriptions", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"此主題訂閱已存在"}`, w.Body.String())
	})

	t.Run("ServiceError", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.On("Subscribe", mock.Anything, data).
			Return(models.Subscription{}, models.WelcomeResult{}, errors.New("disk full")).Once()

		w := do(r, http.MethodPost, "/api/subscriptions", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"建立訂閱失敗: disk full"}`, w.Body.String())
	})
}

func TestList(t *testing.T) {
	r, svc := setupRouter(t)
	svc.On("List", mock.Anything, "a@b.com").
		Return([]models.Subscription{{ID: 2, Topic: "Go", Email: "a@b.com"}}, nil).Once()

	w := do(r, http.MethodGet, "/api/subscriptions?email=a@b.com", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp subscription.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, "Go", resp.Subscriptions[0].Topic)
}

func TestCancel(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		id       int
		err      error
		wantCode int
		wantBody string
	}{
		{"Canceled", "/api/subscriptions/3", 3, nil, http.StatusOK, `{"message":"訂閱已取消"}`},
		{"NotFound", "/api/subscriptions/9", 9, models.ErrSubscriptionNotFound, http.StatusNotFound,
			`{"error":"訂閱不存在"}`},
		{"BadID", "/api/subscriptions/abc", 0, nil, http.StatusBadRequest, `{"error":"無效的訂閱ID"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := setupRouter(t)
			if tc.id != 0 {
				svc.On("Cancel", mock.Anything, tc.id).Return(tc.err).Once()
			}

			w := do(r, http.MethodDelete, tc.path, "")

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestStatus(t *testing.T) {
	r, svc := setupRouter(t)
	svc.On("Status", mock.Anything).Return([]models.SubscriptionStatus{
		{ID: 1, Topic: "AI", ShouldSendNow: true, CreatedAt: time.Now()},
		{ID: 2, Topic: "Go", ShouldSendNow: false, CreatedAt: time.Now()},
	}, nil).Once()

	w := do(r, http.MethodGet, "/api/subscription-status", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp subscription.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalSubscriptions)
	assert.True(t, resp.Subscriptions[0].ShouldSendNow)
}
