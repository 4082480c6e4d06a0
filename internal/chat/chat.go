package chat

import (
	"context"
	"errors"
	"strings"

	"copdcare/internal/account"
	"copdcare/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxMessageLen = 1000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is longer than 1000 characters")
)

const Guidelines = `Community Chat Guidelines
  - Be respectful to others.
  - Keep discussions related to COPD and health experiences.
  - Avoid spamming or sharing personal data.
  - Support each other and engage in positive discussions.`

type Room struct {
	st     *store.Store
	logger *zap.Logger
}

func NewRoom(st *store.Store, logger *zap.Logger) *Room {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Room{st: st, logger: logger}
}

// Send posts text as the session's user. sender is the display name; it
// falls back to the part of the email before '@'.
func (r *Room) Send(ctx context.Context, s account.Session, sender, text string) (*store.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len([]rune(text)) > maxMessageLen {
		return nil, ErrMessageTooLong
	}
	if sender == "" {
		sender, _, _ = strings.Cut(s.Email, "@")
	}

	msg, err := r.st.AddMessage(ctx, uuid.NewString(), s.UserID, sender, text)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("chat message sent", zap.String("id", msg.ID))
	return msg, nil
}

func (r *Room) List(ctx context.Context, limit int) ([]store.Message, error) {
	return r.st.ListMessages(ctx, limit)
}
