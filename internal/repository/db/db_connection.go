package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"nevochat/internal/config"
	"nevochat/internal/repository/db/migrations"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates a SQLite DB file, applies pending migrations and sizes
// the connection pool.
func InitDB(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", cfg.Path, err)
	}

	// Fail fast if the DB cannot be reached
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// dsn builds a modernc DSN. Pragmas go into the DSN rather than a one-off Exec
// so that every pooled connection gets them.
func dsn(cfg config.DB) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMS))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + cfg.Path + "?" + q.Encode()
}

// Migrate applies every embedded migration not yet recorded in the goose
// version table.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
