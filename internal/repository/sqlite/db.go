package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

// CreateSqliteDb opens the database file (creating it if needed) and pings it.
func CreateSqliteDb(ctx context.Context, dialect, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?mode=rwc&_pragma=busy_timeout(5000)"
	db, err := sql.Open(dialect, connectionString)
	if err != nil {
		return nil, err
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// InitSqliteDb applies the goose migrations found in dir of fsys.
func InitSqliteDb(db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.Up(db, dir)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
