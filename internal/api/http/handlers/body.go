package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// parseJSON decodes the request body regardless of Content-Type. An empty
// body decodes as {}.
func parseJSON(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return apperrors.NewValidationError("invalid JSON body", map[string]any{"reason": err.Error()})
	}
	return nil
}
