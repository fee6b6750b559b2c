package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"

	_ "github.com/Nazarious-ucu/news-collector/docs"
	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/emailer"
	"github.com/Nazarious-ucu/news-collector/internal/handlers/health"
	newsHandler "github.com/Nazarious-ucu/news-collector/internal/handlers/news"
	"github.com/Nazarious-ucu/news-collector/internal/handlers/newsletter"
	"github.com/Nazarious-ucu/news-collector/internal/handlers/subscription"
	"github.com/Nazarious-ucu/news-collector/internal/logger"
	"github.com/Nazarious-ucu/news-collector/internal/messaging"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
	"github.com/Nazarious-ucu/news-collector/internal/notifier"
	"github.com/Nazarious-ucu/news-collector/internal/repository/cache"
	"github.com/Nazarious-ucu/news-collector/internal/repository/sqlite"
	"github.com/Nazarious-ucu/news-collector/internal/services/email"
	"github.com/Nazarious-ucu/news-collector/internal/services/news"
	"github.com/Nazarious-ucu/news-collector/internal/services/subscriptions"
	"github.com/Nazarious-ucu/news-collector/internal/services/welcome"
	"github.com/Nazarious-ucu/news-collector/migrations"
)

const (
	timeoutDuration = 5 * time.Second

	feedBreakerName = "GoogleNews"
	newsCachePrefix = "news:"
)

type subscriptionPublisher interface {
	PublishSubscriptionCreated(ctx context.Context, sub models.Subscription) error
}

type newsCollector interface {
	Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error)
}

type ServiceContainer struct {
	SubscriptionService *subscriptions.Service
	Notificator         *notifier.Notifier
	Consumer            *messaging.Consumer

	Router *gin.Engine
	Srv    *http.Server
	Db     *sql.DB

	redisClient    *redis.Client
	rabbitConn     *rabbitmq.Conn
	publisher      *rabbitmq.Publisher
	rabbitConsumer *rabbitmq.Consumer
	fileLogger     *zap.Logger
}

type App struct {
	cfg config.Config
	l   zerolog.Logger
}

func New(cfg config.Config, logger zerolog.Logger) *App {
	logger = logger.With().Str("service", "news-collector").Logger()
	return &App{cfg: cfg, l: logger}
}

// Start builds the services, serves HTTP and blocks until ctx is done.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init(ctx)
	if err != nil {
		return err
	}

	if err := srvContainer.Notificator.Start(ctx); err != nil {
		a.l.Error().Err(err).Msg("notifier not started")
	} else {
		a.l.Info().Str("spec", a.cfg.Notifier.Spec).Msg("Notifier started")
	}

	if srvContainer.rabbitConsumer != nil {
		go func() {
			if err := srvContainer.rabbitConsumer.Run(srvContainer.Consumer.ReceiveSubscriptionCreated); err != nil {
				a.l.Error().Err(err).Msg("subscription consumer stopped")
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("http_addr", a.cfg.ServerAddress()).Msg("HTTP server listening")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server error")
			_ = a.Stop(srvContainer)
			return err
		}
	}

	return a.Stop(srvContainer)
}

// Init opens storage and builds every service without starting anything.
func (a *App) Init(ctx context.Context) (ServiceContainer, error) {
	a.l.Info().Str("db", a.cfg.DB.Source).Str("email_mode", a.cfg.Email.Mode).
		Bool("redis", a.cfg.Redis.Enabled).Bool("rabbitmq", a.cfg.RabbitMQ.Enabled).
		Msg("Initializing application")

	dbCtx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()
	db, err := sqlite.CreateSqliteDb(dbCtx, a.cfg.DB.Dialect, a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.InitSqliteDb(db, a.cfg.DB.Dialect, migrations.Server, migrations.ServerDir); err != nil {
		_ = db.Close()
		return ServiceContainer{}, fmt.Errorf("migrate database: %w", err)
	}

	m := metrics.NewMetrics("news_collector", db, a.cfg.DB.Source)

	subRepo := sqlite.NewSubscriptionRepository(db, a.l, m)
	newsRepo := sqlite.NewNewsRepository(db, a.l, m)

	fileLogger, err := logger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Warn().Err(err).Msg("HTTP traffic log disabled")
		fileLogger = zap.NewNop()
	}
	httpLogClient := &http.Client{Transport: logger.NewRoundTripper(fileLogger)}

	srvContainer := ServiceContainer{Db: db, fileLogger: fileLogger}

	feed := news.NewBreakerCollector(feedBreakerName,
		news.NewFeedCollector(a.cfg.News.FeedURL, httpLogClient, a.l, m),
		a.cfg.Breaker.Interval(), a.cfg.Breaker.Timeout(), a.cfg.Breaker.RepeatNumber,
	)
	var collector newsCollector = feed
	if a.cfg.Redis.Enabled {
		srvContainer.redisClient = redis.NewClient(&redis.Options{Addr: a.cfg.Redis.Address(), DB: a.cfg.Redis.DB})
		newsCache := cache.NewMetricsDecorator[[]models.NewsItem](
			cache.NewRedisClient[[]models.NewsItem](srvContainer.redisClient, a.l, newsCachePrefix, a.cfg.Redis.TTL()),
			m,
		)
		collector = news.NewCachedCollector(feed, newsCache, a.l)
		a.l.Info().Str("addr", a.cfg.Redis.Address()).Msg("News cache enabled")
	}

	sender, err := emailer.New(a.cfg.Email, a.l, m)
	if err != nil {
		_ = db.Close()
		return ServiceContainer{}, err
	}
	emailSvc, err := email.NewService(sender)
	if err != nil {
		_ = db.Close()
		return ServiceContainer{}, err
	}

	welcomeSvc := welcome.NewService(newsRepo, collector, emailSvc, subRepo, a.l, m)

	var publisher subscriptionPublisher
	if a.cfg.RabbitMQ.Enabled {
		if err := a.setupRabbit(&srvContainer, welcomeSvc, m); err != nil {
			a.l.Error().Err(err).Msg("RabbitMQ unavailable, welcome flow runs inline")
		} else {
			publisher = messaging.NewProducer(srvContainer.publisher, a.l, m)
		}
	}

	srvContainer.SubscriptionService = subscriptions.NewService(subRepo, welcomeSvc, publisher, a.l, m)
	srvContainer.Notificator = notifier.New(subRepo, newsRepo, collector, emailSvc, a.l, a.cfg.Notifier.Spec, m)

	router := gin.New()
	router.Use(gin.Recovery(), m.HTTPMiddleware())
	srvContainer.Router = router
	srvContainer.Srv = &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	subHandler := subscription.NewHandler(srvContainer.SubscriptionService, a.l)
	nHandler := newsHandler.NewHandler(collector, newsRepo, a.l)
	nlHandler := newsletter.NewHandler(emailSvc, newsRepo, collector, srvContainer.Notificator, a.l, m)
	registerRoutes(router, subHandler, nHandler, nlHandler, m)

	return srvContainer, nil
}

func registerRoutes(
	router *gin.Engine,
	subHandler *subscription.Handler,
	nHandler *newsHandler.Handler,
	nlHandler *newsletter.Handler,
	m *metrics.Metrics,
) {
	api := router.Group("/api")
	{
		api.GET("/health", health.Check)

		api.POST("/subscriptions", subHandler.Create)
		api.GET("/subscriptions", subHandler.List)
		api.DELETE("/subscriptions/:id", subHandler.Cancel)
		api.GET("/subscription-status", subHandler.Status)

		api.POST("/test-news-collection", nHandler.Collect)
		api.GET("/news", nHandler.List)

		api.POST("/test-email", nlHandler.TestEmail)
		api.POST("/send-newsletters", nlHandler.SendAll)
		api.POST("/test-scheduler", nlHandler.RunScheduler)
	}
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))
}

func (a *App) Stop(srvContainer ServiceContainer) error {
	a.l.Info().Msg("Stopping application")

	srvContainer.Notificator.Stop()
	a.l.Info().Msg("Notifier stopped")

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()
	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if srvContainer.rabbitConsumer != nil {
		srvContainer.rabbitConsumer.Close()
	}
	if srvContainer.publisher != nil {
		srvContainer.publisher.Close()
	}
	if srvContainer.rabbitConn != nil {
		if err := srvContainer.rabbitConn.Close(); err != nil {
			a.l.Error().Err(err).Msg("RabbitMQ close error")
		}
	}

	if srvContainer.redisClient != nil {
		if err := srvContainer.redisClient.Close(); err != nil {
			a.l.Error().Err(err).Msg("Redis close error")
		}
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.l.Error().Err(err).Msg("Database close error")
	} else {
		a.l.Info().Msg("Database closed")
	}

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.l.Debug().Err(err).Msg("failed to sync HTTP traffic log")
	}

	a.l.Info().Msg("Application shutdown complete")
	return nil
}
