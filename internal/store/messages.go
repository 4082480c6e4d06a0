package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) AddMessage(ctx context.Context, id, userID, sender, text string) (*Message, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, user_id, sender, text, created_at) VALUES (?, ?, ?, ?, ?)",
		id, userID, sender, text, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &Message{ID: id, UserID: userID, Sender: sender, Text: text, CreatedAt: now}, nil
}

// ListMessages returns the newest limit messages, oldest first.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, sender, text, created_at FROM (
			SELECT id, user_id, sender, text, created_at, rowid AS seq
			FROM messages ORDER BY created_at DESC, seq DESC LIMIT ?
		 ) ORDER BY created_at, seq`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) SavePushToken(ctx context.Context, userID, token string, granted bool) (*PushToken, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO push_tokens (user_id, token, granted, created_at) VALUES (?, ?, ?, ?)",
		userID, token, granted, now,
	)
	if err != nil {
		return nil, fmt.Errorf("save push token: %w", err)
	}
	return &PushToken{UserID: userID, Token: token, Granted: granted, CreatedAt: now}, nil
}

func (s *Store) GetPushToken(ctx context.Context, userID string) (*PushToken, error) {
	var p PushToken
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, token, granted, created_at FROM push_tokens WHERE user_id = ?", userID,
	).Scan(&p.UserID, &p.Token, &p.Granted, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
