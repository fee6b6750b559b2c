package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	SourceGoogleNews = "Google News"
	summaryLimit     = 500
)

// FeedCollector reads a topic search feed. feedURL holds one %s for the escaped topic.
type FeedCollector struct {
	feedURL string
	parser  *gofeed.Parser
	log     zerolog.Logger
	m       *metrics.Metrics
	now     func() time.Time
}

func NewFeedCollector(
	feedURL string,
	httpClient *http.Client,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *FeedCollector {
	parser := gofeed.NewParser()
	parser.Client = httpClient
	logger = logger.With().Str("component", "FeedCollector").Logger()
	return &FeedCollector{feedURL: feedURL, parser: parser, log: logger, m: m, now: time.Now}
}

// Collect returns up to limit items for topic.
func (c *FeedCollector) Collect(ctx context.Context, topic string, limit int) ([]models.NewsItem, error) {
	start := time.Now()
	feedURL := c.feedURL
	if strings.Contains(feedURL, "%s") {
		feedURL = fmt.Sprintf(c.feedURL, url.QueryEscape(topic))
	}

	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		c.log.Error().Err(err).Ctx(ctx).Str("topic", topic).Msg("failed to fetch news feed")
		c.m.TechnicalErrors.WithLabelValues("feed_fetch_error", "warning").Inc()
		return nil, fmt.Errorf("fetch feed for %q: %w", topic, err)
	}

	items := make([]models.NewsItem, 0, min(limit, len(feed.Items)))
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		published := c.now().UTC()
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		}
		items = append(items, models.NewsItem{
			Title:       entry.Title,
			Summary:     truncate(entry.Description, summaryLimit),
			URL:         entry.Link,
			Source:      SourceGoogleNews,
			Topic:       topic,
			PublishedAt: &published,
		})
	}

	c.m.NewsCollected.WithLabelValues(SourceGoogleNews).Add(float64(len(items)))
	c.log.Info().Ctx(ctx).
		Str("topic", topic).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("news collected")

	return items, nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
