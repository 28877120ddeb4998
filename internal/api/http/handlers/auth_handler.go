package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticket-api/internal/api/dto"
	"github.com/helpdesk-labs/ticket-api/internal/auth"
	"github.com/helpdesk-labs/ticket-api/internal/service"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// AuthHandler serves login and identity endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}
	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	})
}

// Me GET /api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return c.JSON(dto.MeResponse{User: dto.PrincipalResponse(principal)})
}
