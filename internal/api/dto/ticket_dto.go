package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TicketListQuery captures the list filters.
type TicketListQuery struct {
	Status string `query:"status"`
	Query  string `query:"q"`
}

// UpdateTicketRequest is a partial update. A key that is absent from the
// body leaves the field untouched; "assignee": null is a present key that
// clears the assignee.
type UpdateTicketRequest struct {
	Title       domain.Optional[string]
	Description domain.Optional[string]
	Status      domain.Optional[string]
	Assignee    domain.Optional[*string]
}

var jsonNull = []byte("null")

// UnmarshalJSON records which keys the body carried.
func (r *UpdateTicketRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if r.Title, err = optionalString(raw, "title"); err != nil {
		return err
	}
	if r.Description, err = optionalString(raw, "description"); err != nil {
		return err
	}
	if r.Status, err = optionalString(raw, "status"); err != nil {
		return err
	}
	value, ok := raw["assignee"]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(value), jsonNull) {
		r.Assignee = domain.Some[*string](nil)
		return nil
	}
	var assignee string
	if err := json.Unmarshal(value, &assignee); err != nil {
		return fmt.Errorf("assignee: %w", err)
	}
	r.Assignee = domain.Some(&assignee)
	return nil
}

// optionalString treats an explicit null like an absent key.
func optionalString(raw map[string]json.RawMessage, key string) (domain.Optional[string], error) {
	value, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), jsonNull) {
		return domain.None[string](), nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return domain.None[string](), fmt.Errorf("%s: %w", key, err)
	}
	return domain.Some(s), nil
}

// Patch converts the request into a domain patch.
func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	return domain.TicketPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Assignee:    r.Assignee,
	}
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Assignee    *string      `json:"assignee"`
	CreatedBy   domain.Owner `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Assignee:    t.Assignee,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTicketResponses maps a list, never returning nil.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
