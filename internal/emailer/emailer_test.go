package emailer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/news-collector/internal/config"
	"github.com/Nazarious-ucu/news-collector/internal/emailer"
	"github.com/Nazarious-ucu/news-collector/internal/metrics"
)

func TestMockEmailer_WritesOutbox(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outbox")
	e := emailer.NewMockEmailer(dir, zerolog.Nop())

	require.NoError(t, e.Send("a@b.com", "hello", "", "<p>one</p>"))
	require.NoError(t, e.Send("a@b.com", "hello again", "", "<p>two</p>"))

	sent := e.Sent()
	require.Len(t, sent, 2)
	assert.NotEqual(t, sent[0].Path, sent[1].Path)

	for i, want := range []string{"<p>one</p>", "<p>two</p>"} {
		assert.True(t, strings.HasPrefix(filepath.Base(sent[i].Path), "sent_email_"))
		body, err := os.ReadFile(sent[i].Path)
		require.NoError(t, err)
		assert.Equal(t, want, string(body))
	}
}

func TestNew_SelectsByMode(t *testing.T) {
	m := metrics.NewMetrics("test_emailer", nil, "")

	s, err := emailer.New(config.Email{Mode: "mock", OutboxDir: t.TempDir()}, zerolog.Nop(), m)
	require.NoError(t, err)
	assert.IsType(t, &emailer.MockEmailer{}, s)

	s, err = emailer.New(config.Email{Mode: "real", User: "u", Password: "p", Host: "smtp", Port: "587"},
		zerolog.Nop(), m)
	require.NoError(t, err)
	assert.IsType(t, &emailer.SMTPService{}, s)

	_, err = emailer.New(config.Email{Mode: "real"}, zerolog.Nop(), m)
	require.Error(t, err)
}
