package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpdesk-labs/ticket-api/internal/config"
	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/persistence"
	"github.com/helpdesk-labs/ticket-api/internal/repository/memory"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := memory.NewUserRepository()
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 720, BcryptCost: bcrypt.MinCost}, users)
	if _, err := persistence.SeedUsers(context.Background(), users, svc.Hasher(), persistence.DefaultSeedAccounts(), zap.NewNop()); err != nil {
		t.Fatalf("SeedUsers() error: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	result, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	principal, ok := svc.TokenManager().Verify(result.Token)
	if !ok {
		t.Fatal("Verify(login token) = false")
	}
	if principal.Username != "admin" || principal.Role != domain.RoleAdmin || principal.UserID != result.User.ID {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	tests := []struct {
		name     string
		username string
		password string
		code     string
	}{
		{"wrong password", "user", "nope", apperrors.CodeUnauthorized},
		{"unknown user", "ghost", "user123", apperrors.CodeUnauthorized},
		{"missing username", "", "user123", apperrors.CodeValidation},
		{"missing password", "user", "", apperrors.CodeValidation},
	}
	for _, tt := range tests {
		_, err := svc.Login(context.Background(), tt.username, tt.password)
		if !apperrors.Is(err, tt.code) {
			t.Fatalf("%s: Login() error = %v, want %s", tt.name, err, tt.code)
		}
		if tt.code == apperrors.CodeUnauthorized && apperrors.ToDomainError(err).Message != "invalid credentials" {
			t.Fatalf("%s: message = %q", tt.name, apperrors.ToDomainError(err).Message)
		}
	}
}
