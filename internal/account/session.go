package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const sessionKey = "session"

// Session identifies the signed-in user. It is passed explicitly to
// operations that act on behalf of a user.
type Session struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signed_in_at"`
}

type SlotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func SaveSession(ctx context.Context, kv SlotStore, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return kv.Set(ctx, sessionKey, string(data))
}

// CurrentSession returns ErrNotSignedIn when nobody is signed in.
func CurrentSession(ctx context.Context, kv SlotStore) (Session, error) {
	raw, ok, err := kv.Get(ctx, sessionKey)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNotSignedIn
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func ClearSession(ctx context.Context, kv SlotStore) error {
	return kv.Delete(ctx, sessionKey)
}
