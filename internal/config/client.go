package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const DefaultSubscribeURL = "https://news-collector-deiu.onrender.com/api/subscriptions"

type Prefs struct {
	Backend string `envconfig:"PREFS_BACKEND" default:"sqlite"`
	Path    string `envconfig:"PREFS_PATH" default:"prefs.db"`
	Profile string `envconfig:"PREFS_PROFILE" default:"default"`

	RedisHost string `envconfig:"PREFS_REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"PREFS_REDIS_PORT" default:"6379"`
	RedisDB   int    `envconfig:"PREFS_REDIS_DB" default:"0"`
}

// ClientConfig configures the panel and the background listener.
type ClientConfig struct {
	SubscribeURL string `envconfig:"SUBSCRIBE_URL"`
	// HTTPTimeout of zero keeps the transport default.
	HTTPTimeout int `envconfig:"SUBSCRIBE_TIMEOUT" default:"0"`

	Prefs Prefs

	LogsPath         string `envconfig:"CLIENT_LOGS_PATH" default:"logs/panel.log"`
	HTTPLogsPath     string `envconfig:"CLIENT_HTTP_LOGS_PATH" default:"logs/panel-http.log"`
	ListenerLogsPath string `envconfig:"LISTENER_LOGS_PATH" default:"logs/listener.log"`
}

func NewClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SubscribeURL == "" {
		cfg.SubscribeURL = DefaultSubscribeURL
	}
	return &cfg, nil
}

func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (p *Prefs) RedisAddress() string {
	return p.RedisHost + ":" + p.RedisPort
}
