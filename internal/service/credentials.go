package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"nevochat/internal/models"
	"nevochat/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 64
	maxPasswordBytes  = 72 // bcrypt input limit
)

// CredentialService handles registration and password verification.
type CredentialService struct {
	users repository.Users
	cost  int
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialService(users repository.Users, cost int) *CredentialService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialService{users: users, cost: cost, now: time.Now}
}

// Register hashes password and creates a new user.
func (s *CredentialService) Register(ctx context.Context, username, password string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, models.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return ErrUsernameTaken
	}
	return err
}

// Verify returns the user id when password matches. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials after a bcrypt comparison.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return u.UserID, nil
}

// dummy is compared against for unknown usernames so that lookups of missing
// and existing users cost the same.
func (s *CredentialService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("nevochat-placeholder"), s.cost)
		if err != nil {
			h, _ = bcrypt.GenerateFromPassword([]byte("nevochat-placeholder"), bcrypt.DefaultCost)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return fmt.Errorf("%w: username longer than %d characters", ErrInvalidInput, maxUsernameLength)
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
