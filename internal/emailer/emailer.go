package emailer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
)

const ModeReal = "real"

// Sender delivers one message.
type Sender interface {
	Send(to, subject, additionalHeaders, body string) error
}

// New returns the SMTP sender when cfg.Mode is "real" and the outbox sender otherwise.
//
//nolint:ireturn
func New(cfg config.Email, logger zerolog.Logger, m *metrics.Metrics) (Sender, error) {
	if cfg.Mode == ModeReal {
		if cfg.User == "" || cfg.Password == "" {
			return nil, fmt.Errorf("EMAIL_MODE=%s requires SENDER_EMAIL and SENDER_PASSWORD", ModeReal)
		}
		return NewSMTPService(cfg, logger, m), nil
	}
	return NewMockEmailer(cfg.OutboxDir, logger), nil
}
