package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Nazarious-ucu/news-collector/internal/repository/sqlite"
	"github.com/Nazarious-ucu/news-collector/migrations"
)

const dialect = "sqlite"

// SQLiteStore keeps preferences in a local database file.
type SQLiteStore struct {
	db      *sql.DB
	profile string
}

// OpenSQLiteStore opens (and migrates) the store at path.
func OpenSQLiteStore(ctx context.Context, path, profile string) (*SQLiteStore, error) {
	db, err := sqlite.CreateSqliteDb(ctx, dialect, path)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}

	if err := sqlite.InitSqliteDb(db, dialect, migrations.Prefs, migrations.PrefsDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate preference store: %w", err)
	}

	return &SQLiteStore{db: db, profile: profile}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	args := make([]any, 0, len(keys)+1)
	args = append(args, s.profile)
	for _, k := range keys {
		args = append(args, k)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE profile = ? AND key IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}

	return values, rows.Err()
}

func (s *SQLiteStore) Set(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	for k, v := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (profile, key, value, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			s.profile, k, v, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
