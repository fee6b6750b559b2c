package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

// ErrUnexpectedStatus is returned when the API answers outside the 2xx range.
var ErrUnexpectedStatus = errors.New("subscription request failed")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts subscription requests to the remote API.
type Client struct {
	url    string
	client HTTPClient
	log    zerolog.Logger
}

func NewClient(url string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "SubscribeClient").Logger()
	return &Client{url: url, client: httpClient, log: logger}
}

// Subscribe sends one POST with the request as JSON. The response body is ignored.
func (c *Client) Subscribe(ctx context.Context, req models.SubscriptionRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post subscription: %w", err)
	}
	defer func(body io.ReadCloser) {
		_, _ = io.Copy(io.Discard, body)
		if err := body.Close(); err != nil {
			c.log.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %s", ErrUnexpectedStatus, resp.Status)
	}

	return nil
}
