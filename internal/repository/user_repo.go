package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nevochat/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (user_id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, user_id, username, password_hash, created_at FROM users WHERE username = ?`
)

// Create inserts a new user. Uniqueness of the username is left to the UNIQUE
// constraint so concurrent registrations cannot both succeed.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL, u.UserID, u.Username, u.PasswordHash, u.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		u         models.User
		createdMs int64
	)
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.UserID, &u.Username, &u.PasswordHash, &createdMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = time.UnixMilli(createdMs).UTC()
	return &u, nil
}
