package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password; the two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials and manages the session ids the HTTP
// layer carries in a cookie. The core services never see credentials,
// only the resolved identity.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SessionTTL is the lifetime granted to new sessions.
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// Login checks the credentials and starts a session on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Create(ctx, sessionID, user.ID, s.sessionTTL); err != nil {
		return domain.User{}, "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, sessionID, nil
}

// Logout discards the session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve maps a session id back to its user. It returns ErrNotFound for
// unknown or expired sessions.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (domain.User, error) {
	if sessionID == "" {
		return domain.User{}, domain.ErrNotFound
	}
	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.Get(ctx, userID)
}
