package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// RequireAuth rejects requests without a verified principal.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin rejects unauthenticated callers with 401 and non-admins with 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("forbidden")
		}
		return c.Next()
	}
}
