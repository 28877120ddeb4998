package repository

import (
	"context"
	"errors"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// TicketFilter narrows ticket listings. Empty fields do not filter. Status
// matches exactly; Query is a literal case-insensitive substring.
type TicketFilter struct {
	Status string
	Query  string
}

// UserRepository defines persistence access for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// TicketRepository encapsulates ticket persistence. Update overwrites the
// mutable columns without any version check.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}
