// Package notify keeps per-user push registrations. Delivery is local: a test
// notification is written to the log and returned to the caller.
package notify

import (
	"context"
	"errors"
	"time"

	"copdcare/internal/account"
	"copdcare/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPermissionDenied = errors.New("notification permission was denied")
	ErrNotRegistered    = errors.New("no push token registered, run 'copdcare notify register' first")
)

type Notification struct {
	Token  string
	Title  string
	Body   string
	SentAt time.Time
}

type Registrar struct {
	st     *store.Store
	logger *zap.Logger
}

func NewRegistrar(st *store.Store, logger *zap.Logger) *Registrar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registrar{st: st, logger: logger}
}

// Register records the user's permission answer and, when granted, issues a
// push token. A denial is remembered so Token keeps failing until the user
// registers again.
func (r *Registrar) Register(ctx context.Context, s account.Session, granted bool) (string, error) {
	token := ""
	if granted {
		token = "copdcare-push-" + uuid.NewString()
	}
	if _, err := r.st.SavePushToken(ctx, s.UserID, token, granted); err != nil {
		return "", err
	}
	if !granted {
		r.logger.Info("push permission denied", zap.String("user_id", s.UserID))
		return "", ErrPermissionDenied
	}
	r.logger.Info("push token registered", zap.String("user_id", s.UserID))
	return token, nil
}

func (r *Registrar) Token(ctx context.Context, s account.Session) (string, error) {
	p, err := r.st.GetPushToken(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotRegistered
		}
		return "", err
	}
	if !p.Granted {
		return "", ErrPermissionDenied
	}
	return p.Token, nil
}

func (r *Registrar) SendTest(ctx context.Context, s account.Session) (*Notification, error) {
	token, err := r.Token(ctx, s)
	if err != nil {
		return nil, err
	}
	n := &Notification{
		Token:  token,
		Title:  "COPD Care",
		Body:   "Time to log today's symptoms.",
		SentAt: time.Now(),
	}
	r.logger.Info("test notification sent", zap.String("token", token), zap.String("body", n.Body))
	return n, nil
}
