package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticket-api/internal/api/dto"
	"github.com/helpdesk-labs/ticket-api/internal/auth"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
	"github.com/helpdesk-labs/ticket-api/internal/service"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /api/tickets?status=&q=.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	var query dto.TicketListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	tickets, err := h.service.List(c.UserContext(), repository.TicketFilter{Status: query.Status, Query: query.Query})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponses(tickets))
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	var req dto.CreateTicketRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.Create(c.UserContext(), principal, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	var req dto.UpdateTicketRequest
	if err := parseJSON(c, &req); err != nil {
		return err
	}
	ticket, err := h.service.Update(c.UserContext(), principal, c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Delete DELETE /api/tickets/:id. Missing ids also answer 204.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthorized")
	}
	if err := h.service.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
