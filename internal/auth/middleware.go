package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
)

const principalKey = "auth_principal"

// Authenticate reads a bearer token and, when it verifies, stores the
// principal for downstream handlers. It never rejects a request; routes
// decide whether a principal is required.
func Authenticate(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			if principal, ok := tokens.Verify(token); ok {
				c.Locals(principalKey, principal)
			}
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
