package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/helpdesk-labs/ticket-api/internal/auth"
	"github.com/helpdesk-labs/ticket-api/internal/config"
	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

const msgInvalidCredentials = "invalid credentials"

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   auth.NewPasswordHasher(cfg.BcryptCost),
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
	}
}

// Login authenticates a user by username and password. Unknown usernames and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Hasher exposes the password hasher used for stored credentials.
func (s *AuthService) Hasher() *auth.PasswordHasher {
	return s.hasher
}
