package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"PORT" default:"8000"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Db struct {
	Dialect string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source  string `envconfig:"DB_NAME" default:"news_collector.db"`
}

type Email struct {
	Mode      string `envconfig:"EMAIL_MODE" default:"mock"`
	Host      string `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	Port      string `envconfig:"SMTP_PORT" default:"587"`
	User      string `envconfig:"SENDER_EMAIL"`
	Password  string `envconfig:"SENDER_PASSWORD"`
	From      string `envconfig:"SENDER_FROM"`
	OutboxDir string `envconfig:"EMAIL_OUTBOX_DIR" default:"logs"`
}

type Redis struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"10"`
}

type RabbitMQ struct {
	Enabled bool   `envconfig:"RABBITMQ_ENABLED" default:"false"`
	Host    string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port    string `envconfig:"RABBITMQ_PORT" default:"5672"`
	User    string `envconfig:"RABBITMQ_USER" default:"guest"`
	Pass    string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Notifier struct {
	Spec string `envconfig:"NOTIFIER_SPEC" default:"@every 1h"`
}

type News struct {
	FeedURL string `envconfig:"NEWS_FEED_URL" default:"https://news.google.com/rss/search?q=%s&hl=zh-TW&gl=TW&ceid=TW:zh-Hant"`
	Limit   int    `envconfig:"NEWS_COLLECT_LIMIT" default:"10"`
}

type Config struct {
	Server   Server
	DB       Db
	Email    Email
	Redis    Redis
	RabbitMQ RabbitMQ
	Breaker  Breaker
	Notifier Notifier
	News     News

	LogsPath     string `envconfig:"LOGS_PATH" default:"logs/news-collector.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"logs/http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (r *Redis) Address() string {
	return r.Host + ":" + r.Port
}

func (r *Redis) TTL() time.Duration {
	return time.Duration(r.LiveTime) * time.Minute
}

func (r *RabbitMQ) Address() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", r.User, r.Pass, r.Host, r.Port)
}

func (b *Breaker) Interval() time.Duration {
	return time.Duration(b.TimeInterval) * time.Second
}

func (b *Breaker) Timeout() time.Duration {
	return time.Duration(b.TimeTimeOut) * time.Second
}
