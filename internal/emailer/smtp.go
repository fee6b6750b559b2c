package emailer

import (
	"net/smtp"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
)

// SMTPService wraps smtp.SendMail with structured logging and metrics.
type SMTPService struct {
	user     string
	host     string
	port     string
	password string
	From     string
	logger   zerolog.Logger
	m        *metrics.Metrics
}

func NewSMTPService(cfg config.Email, logger zerolog.Logger, m *metrics.Metrics) *SMTPService {
	logger = logger.With().Str("component", "SMTPService").Logger()
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPService{
		user:     cfg.User,
		host:     cfg.Host,
		port:     cfg.Port,
		password: cfg.Password,
		From:     from,
		logger:   logger,
		m:        m,
	}
}

func (e *SMTPService) Send(to, subject, additionalHeaders, body string) error {
	start := time.Now()
	e.logger.Debug().
		Str("to", to).
		Str("subject", subject).
		Msg("sending email")

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	msg := "From: " + e.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		additionalHeaders + "\r\n\r\n" +
		body
	addr := e.host + ":" + e.port

	err := smtp.SendMail(addr, auth, e.user, []string{to}, []byte(msg))
	duration := time.Since(start)

	if err != nil {
		e.logger.Error().
			Err(err).
			Str("to", to).
			Str("subject", subject).
			Dur("duration", duration).
			Msg("email send failed")
		e.m.TechnicalErrors.WithLabelValues("smtp_send_error", "critical").Inc()
		return err
	}

	e.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Dur("duration", duration).
		Msg("email sent successfully")
	return nil
}
