package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type NewsRepository struct {
	DB  *sql.DB
	log zerolog.Logger
	m   *metrics.Metrics
	now func() time.Time
}

func NewNewsRepository(db *sql.DB, logger zerolog.Logger, m *metrics.Metrics) *NewsRepository {
	logger = logger.With().Str("component", "NewsRepository").Logger()
	return &NewsRepository{DB: db, log: logger, m: m, now: time.Now}
}

// SaveItems stores items that are not yet known by (url, topic) and reports how many were new.
func (r *NewsRepository) SaveItems(ctx context.Context, items []models.NewsItem) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := formatTime(r.now())
	saved := 0
	for _, item := range items {
		var published any
		if item.PublishedAt != nil {
			published = formatTime(*item.PublishedAt)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO news_items (title, summary, url, source, topic, published_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.Title, item.Summary, item.URL, item.Source, item.Topic, published, createdAt,
		)
		if err != nil {
			r.log.Error().Err(err).Ctx(ctx).Str("url", item.URL).Msg("failed to save news item")
			r.m.TechnicalErrors.WithLabelValues("db_insert_error", "warning").Inc()
			continue
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to commit news items")
		r.m.TechnicalErrors.WithLabelValues("db_tx_error", "critical").Inc()
		return 0, err
	}

	r.log.Info().Ctx(ctx).Int("received", len(items)).Int("saved", saved).Msg("news items saved")
	return saved, nil
}

// List returns the newest items first, for one topic when topic is not empty.
func (r *NewsRepository) List(ctx context.Context, topic string, limit int) ([]models.NewsItem, error) {
	query := `SELECT id, title, summary, url, source, topic, published_at, created_at FROM news_items`
	var args []any
	if topic != "" {
		query += ` WHERE topic = ?`
		args = append(args, topic)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	return r.query(ctx, query, args...)
}

// RecentByTopic returns items of topic created at or after since.
func (r *NewsRepository) RecentByTopic(
	ctx context.Context, topic string, since time.Time, limit int,
) ([]models.NewsItem, error) {
	return r.query(ctx,
		`SELECT id, title, summary, url, source, topic, published_at, created_at
		 FROM news_items WHERE topic = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		topic, formatTime(since), limit,
	)
}

func (r *NewsRepository) query(ctx context.Context, query string, args ...any) ([]models.NewsItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query news items")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows after query")
		}
	}(rows)

	items := []models.NewsItem{}
	for rows.Next() {
		var (
			item                 models.NewsItem
			summary, source      sql.NullString
			published, createdAt sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.Title, &summary, &item.URL, &source,
			&item.Topic, &published, &createdAt); err != nil {
			r.m.TechnicalErrors.WithLabelValues("db_scan_error", "critical").Inc()
			return nil, err
		}
		item.Summary = summary.String
		item.Source = source.String
		if published.Valid {
			t := published.Time
			item.PublishedAt = &t
		}
		if createdAt.Valid {
			t := createdAt.Time
			item.CreatedAt = &t
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
