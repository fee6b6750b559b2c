package listener

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

// Listener reacts to lifecycle and runtime messages of the extension host.
type Listener struct {
	log zerolog.Logger
}

func NewListener(logger zerolog.Logger) *Listener {
	logger = logger.With().Str("component", "BackgroundListener").Logger()
	return &Listener{log: logger}
}

// OnInstalled records that the extension was installed or updated.
func (l *Listener) OnInstalled(ctx context.Context, reason string) {
	l.log.Info().Ctx(ctx).Str("reason", reason).Msg("News Collector Extension installed")
}

// OnMessage logs subscribe messages with their payload. Other actions are ignored and nothing is sent back.
func (l *Listener) OnMessage(ctx context.Context, msg models.RuntimeMessage) {
	if msg.Action != models.ActionSubscribe {
		return
	}

	data := msg.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	l.log.Info().Ctx(ctx).RawJSON("data", data).Msg("New subscription")
}
