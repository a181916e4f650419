package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"nevochat/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateUsername is returned by Users.Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

type Messages interface {
	Append(ctx context.Context, m models.Message) (int64, error)
	ListAll(ctx context.Context) ([]models.Message, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Repository struct {
	Users    Users
	Sessions Sessions
	Messages Messages
	DB       Pinger
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Sessions: NewSessionSQLite(db),
		Messages: NewMessageSQLite(db),
		DB:       db,
	}
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint. The
// message check covers drivers and test doubles that don't expose a code.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
