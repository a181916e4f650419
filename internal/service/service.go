package service

import (
	"context"
	"time"

	"nevochat/internal/models"
	"nevochat/internal/repository"
)

// CredentialStore registers users and verifies their passwords.
type CredentialStore interface {
	Register(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) (string, error)
}

// SessionManager issues, resolves and revokes opaque session tokens.
type SessionManager interface {
	CreateSession(ctx context.Context, userID, username string) (string, error)
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
	RevokeSessions(ctx context.Context, username string) (int64, error)
}

// MessageLog is the append-only, totally ordered chat history.
type MessageLog interface {
	Append(ctx context.Context, username, content string) (string, error)
	ListAll(ctx context.Context) ([]models.Message, error)
}

// Health reports whether the backing store is reachable.
type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	CredentialStore
	SessionManager
	MessageLog
	Health
}

// Options carries the tunables the services need from configuration.
type Options struct {
	BcryptCost       int
	SessionTTL       time.Duration
	MaxMessageLength int
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		CredentialStore: NewCredentialService(repos.Users, opts.BcryptCost),
		SessionManager:  NewSessionService(repos.Sessions, opts.SessionTTL),
		MessageLog:      NewMessageLogService(repos.Messages, opts.MaxMessageLength),
		Health:          NewHealthService(repos.DB),
	}
}

type HealthService struct {
	db repository.Pinger
}

func NewHealthService(db repository.Pinger) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
