// Package memory provides in-process repositories. They back the service
// when no database is configured and serve as fakes in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
)

// UserRepository is a map-backed repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// TicketRepository is a map-backed repository.TicketRepository.
type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketRepository returns an empty repository.
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]domain.Ticket)}
}

var _ repository.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.ID]; exists {
		return repository.ErrConflict
	}
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *TicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	ticket = cloneTicket(ticket)
	return &ticket, nil
}

// Update overwrites the mutable fields; id, creator and createdAt are kept
// from the stored row.
func (r *TicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneTicket(*ticket)
	stored.Title = next.Title
	stored.Description = next.Description
	stored.Status = next.Status
	stored.Assignee = next.Assignee
	stored.UpdatedAt = next.UpdatedAt
	r.tickets[ticket.ID] = stored
	return nil
}

func (r *TicketRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tickets[id]
	delete(r.tickets, id)
	return ok, nil
}

func (r *TicketRepository) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	query := strings.ToLower(filter.Query)

	r.mu.RLock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(ticket.Title), query) &&
			!strings.Contains(strings.ToLower(ticket.Description), query) {
			continue
		}
		result = append(result, cloneTicket(ticket))
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return result, nil
}

// Put stores ticket as-is, bypassing Create. Tests use it to load rows such
// as tickets without a recorded creator.
func (r *TicketRepository) Put(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = cloneTicket(ticket)
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	if t.Assignee != nil {
		assignee := *t.Assignee
		t.Assignee = &assignee
	}
	return t
}
