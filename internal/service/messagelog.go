package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"nevochat/internal/models"
	"nevochat/internal/repository"

	"github.com/google/uuid"
)

const defaultMaxMessageLength = 4096

type MessageLogService struct {
	messages  repository.Messages
	maxLength int
	now       func() time.Time
}

func NewMessageLogService(messages repository.Messages, maxLength int) *MessageLogService {
	if maxLength <= 0 {
		maxLength = defaultMaxMessageLength
	}
	return &MessageLogService{messages: messages, maxLength: maxLength, now: time.Now}
}

// Append validates and persists a message, returning its id. A nil error
// means the message is durably in the log.
func (s *MessageLogService) Append(ctx context.Context, username, content string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: sender is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(content); n > s.maxLength {
		return "", fmt.Errorf("%w: message has %d characters, limit is %d", ErrInvalidInput, n, s.maxLength)
	}

	id := uuid.NewString()
	if _, err := s.messages.Append(ctx, models.Message{
		MessageID: id,
		Username:  username,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return "", err
	}
	return id, nil
}

// ListAll returns a snapshot of the whole log, oldest first.
func (s *MessageLogService) ListAll(ctx context.Context) ([]models.Message, error) {
	return s.messages.ListAll(ctx)
}
