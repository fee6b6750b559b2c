package listener

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	EventInstalled = "installed"
	EventMessage   = "message"

	// maxFrameSize bounds a single inbound frame.
	maxFrameSize = 64 << 20
)

var ErrFrameTooLarge = errors.New("native message exceeds size limit")

// Envelope is one native-messaging frame delivered to the host.
type Envelope struct {
	Event   string                 `json:"event"`
	Reason  string                 `json:"reason,omitempty"`
	Message *models.RuntimeMessage `json:"message,omitempty"`
}

// ReadFrame reads one length-prefixed JSON frame. It returns io.EOF at a clean end of input.
func ReadFrame(r io.Reader) ([]byte, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read frame header: %w", err)
		}
		return nil, err
	}
	if size > maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return buf, nil
}

// Serve dispatches frames from r until EOF or ctx is done.
// Frames that are not valid JSON are logged and skipped.
func (l *Listener) Serve(ctx context.Context, r io.Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := ReadFrame(r)
		if errors.Is(err, io.EOF) {
			l.log.Debug().Msg("host input closed")
			return nil
		}
		if err != nil {
			return err
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			l.log.Warn().Err(err).Int("bytes", len(frame)).Msg("skipping malformed frame")
			continue
		}

		l.dispatch(ctx, env)
	}
}

func (l *Listener) dispatch(ctx context.Context, env Envelope) {
	switch env.Event {
	case EventInstalled:
		l.OnInstalled(ctx, env.Reason)
	case EventMessage:
		if env.Message != nil {
			l.OnMessage(ctx, *env.Message)
		}
	}
}
