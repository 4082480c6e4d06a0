package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"copdcare/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	resetTTL       = time.Hour
)

// Messages are shown to the user as-is.
var (
	ErrInvalidEmail       = errors.New("The email address is badly formatted.")
	ErrWeakPassword       = errors.New("Password should be at least 6 characters.")
	ErrEmailInUse         = errors.New("The email address is already in use by another account.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrInvalidResetToken  = errors.New("The password reset link is invalid or has expired.")
	ErrNotSignedIn        = errors.New("You are not signed in. Run 'copdcare auth login' first.")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	st     *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{st: st, logger: logger, now: time.Now}
}

// SignUp creates an account and returns its user id.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.st.CreateUser(ctx, uuid.NewString(), email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	s.logger.Info("account created", zap.String("user_id", u.ID))
	return u.ID, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	u, err := s.st.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("user_id", u.ID))
		return Session{}, ErrInvalidCredentials
	}
	return Session{UserID: u.ID, Email: u.Email, SignedInAt: s.now().UTC()}, nil
}

// SendPasswordReset issues a one-hour reset token. There is no mail
// transport, so the token is returned to the caller to hand to the user.
// Unknown addresses are not reported, to avoid leaking which emails exist.
func (s *Service) SendPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if !emailRe.MatchString(email) {
		return "", ErrInvalidEmail
	}
	u, err := s.st.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("reset requested for unknown email")
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	if err := s.st.CreatePasswordReset(ctx, token, u.ID, s.now().Add(resetTTL)); err != nil {
		return "", err
	}
	s.logger.Info("password reset issued", zap.String("user_id", u.ID))
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	r, err := s.st.TakePasswordReset(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if s.now().After(r.ExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.st.UpdatePassword(ctx, r.UserID, string(hash))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
