package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"nevochat/internal/models"
	"nevochat/internal/repository"
)

const tokenBytes = 32

type SessionService struct {
	sessions repository.Sessions
	ttl      time.Duration // 0: sessions never expire
	now      func() time.Time
}

func NewSessionService(sessions repository.Sessions, ttl time.Duration) *SessionService {
	return &SessionService{sessions: sessions, ttl: ttl, now: time.Now}
}

// CreateSession stores a new session and returns the raw token. Only the
// token's digest is persisted.
func (s *SessionService) CreateSession(ctx context.Context, userID, username string) (string, error) {
	if userID == "" || username == "" {
		return "", fmt.Errorf("%w: session needs a user id and username", ErrInvalidInput)
	}
	token, err := newToken()
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	session := models.Session{
		TokenHash: hashToken(token),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		session.ExpiresAt = &exp
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession returns (nil, nil) for empty, unknown, revoked or expired
// tokens; an error only when the store fails.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.sessions.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// RevokeSessions deletes every session of username.
func (s *SessionService) RevokeSessions(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}
	return s.sessions.DeleteByUsername(ctx, username)
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
