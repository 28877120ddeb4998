package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "0b5c7c7e-4d55-4b0e-9a0e-8f4f3c4f9a11", Username: "alice", Role: domain.RoleAdmin}
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 0)
	token, expiresAt, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if ttl := time.Until(expiresAt); ttl < 11*time.Hour || ttl > 12*time.Hour {
		t.Fatalf("expiresAt in %v, want ~12h", ttl)
	}

	principal, ok := tm.Verify(token)
	if !ok {
		t.Fatal("Verify() = false, want true")
	}
	want := domain.Principal{UserID: testUser().ID, Username: "alice", Role: domain.RoleAdmin}
	if principal != want {
		t.Fatalf("Verify() = %+v, want %+v", principal, want)
	}
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret", time.Hour)
	valid, _, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Username: "alice",
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString(none) error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", mustToken(t, NewTokenManager("other", time.Hour))},
		{"expired", expiredToken},
		{"alg none", unsigned},
		{"tampered", valid[:strings.LastIndex(valid, ".")] + ".AAAA"},
	}
	for _, tt := range tests {
		if _, ok := issuer.Verify(tt.token); ok {
			t.Fatalf("%s: Verify() = true, want false", tt.name)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	token, _, err := tm.GenerateToken(&domain.User{ID: "id", Username: "eve", Role: "superuser"})
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if _, ok := tm.Verify(token); ok {
		t.Fatal("Verify() = true for unknown role")
	}
}

func mustToken(t *testing.T, tm *TokenManager) string {
	t.Helper()
	token, _, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	return token
}
