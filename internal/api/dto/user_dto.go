package dto

import (
	"time"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// MeResponse wraps the caller's identity.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// NewUserResponse maps a stored user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// PrincipalResponse maps a verified principal.
func PrincipalResponse(p domain.Principal) UserResponse {
	return UserResponse{ID: p.UserID, Username: p.Username, Role: p.Role}
}
