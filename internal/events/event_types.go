package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket.created"
	EventTicketUpdated EventType = "ticket.updated"
	EventTicketDeleted EventType = "ticket.deleted"
)

// TicketEventTypes lists every ticket event.
var TicketEventTypes = []EventType{EventTicketCreated, EventTicketUpdated, EventTicketDeleted}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  string    `json:"ticket_id"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}
