package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/metrics"
	"github.com/Nazarious-ucu/news-collector/internal/models"
)

// SubscriptionRepository handles CRUD operations on subscriptions with structured logging and metrics.
type SubscriptionRepository struct {
	DB  *sql.DB
	log zerolog.Logger
	m   *metrics.Metrics
	now func() time.Time
}

func NewSubscriptionRepository(db *sql.DB, logger zerolog.Logger, m *metrics.Metrics) *SubscriptionRepository {
	logger = logger.With().Str("component", "SubscriptionRepository").Logger()
	return &SubscriptionRepository{DB: db, log: logger, m: m, now: time.Now}
}

// Create inserts a new active subscription, returns models.ErrSubscriptionExists for a known (topic, email) pair.
func (r *SubscriptionRepository) Create(ctx context.Context, data models.UserSubData) (models.Subscription, error) {
	start := time.Now()

	var cnt int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE topic = ? AND email = ?`,
		data.Topic, data.Email,
	).Scan(&cnt)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query subscription count")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return models.Subscription{}, err
	}
	if cnt > 0 {
		r.log.Warn().Ctx(ctx).
			Str("email", data.Email).
			Str("topic", data.Topic).
			Msg("subscription already exists, abort create")
		r.m.BusinessErrors.WithLabelValues("subscription_exists", "warning").Inc()
		return models.Subscription{}, models.ErrSubscriptionExists
	}

	createdAt := r.now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO subscriptions (topic, email, frequency, created_at, is_active, last_sent)
		 VALUES (?, ?, ?, ?, 1, NULL)`,
		data.Topic, data.Email, data.Frequency, formatTime(createdAt),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to insert subscription")
		r.m.TechnicalErrors.WithLabelValues("db_insert_error", "critical").Inc()
		return models.Subscription{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_rows_error", "critical").Inc()
		return models.Subscription{}, err
	}

	r.log.Info().Ctx(ctx).
		Int64("subscription_id", id).
		Str("email", data.Email).
		Str("topic", data.Topic).
		Dur("duration", time.Since(start)).
		Msg("subscription created successfully")

	return models.Subscription{
		ID:        int(id),
		Topic:     data.Topic,
		Email:     data.Email,
		Frequency: data.Frequency,
		CreatedAt: createdAt,
		IsActive:  true,
	}, nil
}

// ListActive returns active subscriptions, restricted to one email when email is not empty.
func (r *SubscriptionRepository) ListActive(ctx context.Context, email string) ([]models.Subscription, error) {
	query := `SELECT id, topic, email, frequency, created_at, is_active, last_sent
		FROM subscriptions WHERE is_active = 1`
	var args []any
	if email != "" {
		query += ` AND email = ?`
		args = append(args, email)
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query active subscriptions")
		r.m.TechnicalErrors.WithLabelValues("db_query_error", "critical").Inc()
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to close rows after query")
		}
	}(rows)

	subs := []models.Subscription{}
	for rows.Next() {
		var sub models.Subscription
		var lastSent sql.NullTime

		if err := rows.Scan(&sub.ID, &sub.Topic, &sub.Email, &sub.Frequency,
			&sub.CreatedAt, &sub.IsActive, &lastSent); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan subscription row")
			r.m.TechnicalErrors.WithLabelValues("db_scan_error", "critical").Inc()
			return nil, err
		}
		if lastSent.Valid {
			t := lastSent.Time
			sub.LastSent = &t
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_rows_error", "critical").Inc()
		return nil, err
	}

	r.log.Debug().Ctx(ctx).Str("email", email).Int("count", len(subs)).Msg("retrieved active subscriptions")
	return subs, nil
}

// Deactivate soft-deletes a subscription. It returns models.ErrSubscriptionNotFound for unknown ids.
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE subscriptions SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int("subscription_id", id).Msg("failed to deactivate subscription")
		r.m.TechnicalErrors.WithLabelValues("db_update_error", "critical").Inc()
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		r.m.TechnicalErrors.WithLabelValues("db_rows_error", "critical").Inc()
		return err
	}
	if count == 0 {
		r.m.BusinessErrors.WithLabelValues("subscription_not_found", "warning").Inc()
		return models.ErrSubscriptionNotFound
	}

	r.log.Info().Ctx(ctx).Int("subscription_id", id).Msg("subscription deactivated")
	return nil
}

// UpdateLastSent sets the last_sent timestamp for a subscription.
func (r *SubscriptionRepository) UpdateLastSent(ctx context.Context, id int, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE subscriptions SET last_sent = ? WHERE id = ?`, formatTime(at), id,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Int("subscription_id", id).Msg("failed to update last_sent timestamp")
		r.m.TechnicalErrors.WithLabelValues("db_update_error", "critical").Inc()
		return err
	}

	r.log.Debug().Ctx(ctx).Int("subscription_id", id).Msg("last_sent timestamp updated")
	return nil
}
