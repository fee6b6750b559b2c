package emailer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	outboxDirMode  = 0o755
	outboxFileMode = 0o644
)

// SentEmail is one message written to the outbox.
type SentEmail struct {
	To      string
	Subject string
	SentAt  time.Time
	Path    string
}

// MockEmailer writes every message body into an outbox directory instead of sending it.
type MockEmailer struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time

	mu   sync.Mutex
	sent []SentEmail
}

func NewMockEmailer(dir string, logger zerolog.Logger) *MockEmailer {
	logger = logger.With().Str("component", "MockEmailer").Logger()
	return &MockEmailer{dir: dir, logger: logger, now: time.Now}
}

func (e *MockEmailer) Send(to, subject, _, body string) error {
	if err := os.MkdirAll(e.dir, outboxDirMode); err != nil {
		return fmt.Errorf("create outbox: %w", err)
	}

	sentAt := e.now()
	name := fmt.Sprintf("sent_email_%s_%s.html", sentAt.Format("20060102_150405"), uuid.NewString())
	path := filepath.Join(e.dir, name)

	if err := os.WriteFile(path, []byte(body), outboxFileMode); err != nil {
		e.logger.Error().Err(err).Str("to", to).Msg("failed to write email to outbox")
		return err
	}

	e.mu.Lock()
	e.sent = append(e.sent, SentEmail{To: to, Subject: subject, SentAt: sentAt, Path: path})
	e.mu.Unlock()

	e.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("path", path).
		Msg("email written to outbox")
	return nil
}

// Sent returns the messages written so far.
func (e *MockEmailer) Sent() []SentEmail {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]SentEmail(nil), e.sent...)
}
