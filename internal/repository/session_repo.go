package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nevochat/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ Sessions = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `INSERT INTO sessions (session_token, user_id, username, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`
	selectSessionSQL = `SELECT session_token, user_id, username, created_at, expires_at FROM sessions WHERE session_token = ?`
	deleteSessionSQL = `DELETE FROM sessions WHERE username = ?`
)

func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	var expires sql.NullInt64
	if s.ExpiresAt != nil {
		expires = sql.NullInt64{Int64: s.ExpiresAt.UnixMilli(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertSessionSQL, s.TokenHash, s.UserID, s.Username, s.CreatedAt.UnixMilli(), expires)
	if err != nil {
		return fmt.Errorf("insert session for %q: %w", s.Username, err)
	}
	return nil
}

// GetByTokenHash returns (nil, nil) when no session has that digest.
func (r *SessionSQLite) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var (
		s         models.Session
		createdMs int64
		expires   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, tokenHash).
		Scan(&s.TokenHash, &s.UserID, &s.Username, &createdMs, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	s.CreatedAt = time.UnixMilli(createdMs).UTC()
	if expires.Valid {
		t := time.UnixMilli(expires.Int64).UTC()
		s.ExpiresAt = &t
	}
	return &s, nil
}

// DeleteByUsername removes every session of username and reports how many went.
func (r *SessionSQLite) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteSessionSQL, username)
	if err != nil {
		return 0, fmt.Errorf("delete sessions of %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for %q: %w", username, err)
	}
	return n, nil
}
