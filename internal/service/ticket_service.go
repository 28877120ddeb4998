package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/events"
	"github.com/helpdesk-labs/ticket-api/internal/policy"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// TicketListCache stores list results keyed by generation and filter. An
// invalidation bumps the generation, so entries written for an older
// generation are never read.
type TicketListCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, filter repository.TicketFilter) ([]domain.Ticket, bool, error)
	Set(ctx context.Context, gen int64, filter repository.TicketFilter, list []domain.Ticket) error
}

// TicketService coordinates ticket workflows.
//
// Updates are a plain read, decide, write sequence with no locking or version
// check: two concurrent updates of one ticket both succeed and the later write
// wins.
type TicketService struct {
	tickets    repository.TicketRepository
	cache      TicketListCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	lists      singleflight.Group
}

// TicketDependencies bundles collaborators for the ticket service. Cache,
// Dispatcher, Logger, Clock and NewID are optional.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      TicketListCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
	NewID      func() string
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	s := &TicketService{
		tickets:    deps.TicketRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
		newID:      deps.NewID,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// List returns tickets matching filter, most recently updated first.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if s.cache == nil {
		return s.load(ctx, filter)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("ticket list cache generation read failed", zap.Error(err))
		return s.load(ctx, filter)
	}
	list, hit, err := s.cache.Get(ctx, gen, filter)
	if err != nil {
		s.logger.Warn("ticket list cache read failed", zap.Error(err))
	} else if hit {
		return list, nil
	}

	// Callers that read a newer generation never join a load started before
	// the invalidation.
	key := fmt.Sprintf("%d|%q|%q", gen, filter.Status, filter.Query)
	v, err, _ := s.lists.Do(key, func() (interface{}, error) {
		list, err := s.load(ctx, filter)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, gen, filter, list); err != nil {
			s.logger.Warn("ticket list cache write failed", zap.Error(err))
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Ticket), nil
}

func (s *TicketService) load(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	list, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if list == nil {
		list = []domain.Ticket{}
	}
	return list, nil
}

// Create opens a ticket owned by caller. Title and description are stored as
// sent; status and assignee are always server-assigned.
func (s *TicketService) Create(ctx context.Context, caller domain.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", map[string]any{"field": "title"})
	}

	now := s.now()
	ticket := &domain.Ticket{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusOpen,
		Assignee:    nil,
		CreatedBy:   domain.OwnedBy(caller.Username),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.EventTicketCreated, ticket.ID, caller)
	return ticket, nil
}

// Update applies patch to ticket id if the authorization policy allows it.
func (s *TicketService) Update(ctx context.Context, caller domain.Principal, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	existing, err := s.tickets.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	next, err := policy.ApplyTicketUpdate(caller, existing, patch, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tickets.Update(ctx, &next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.EventTicketUpdated, next.ID, caller)
	return &next, nil
}

// Delete removes ticket id. Only admins may delete; deleting an id that does
// not exist succeeds.
func (s *TicketService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	if err := policy.AuthorizeDelete(caller); err != nil {
		return err
	}
	removed, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !removed {
		s.logger.Debug("delete matched no ticket", zap.String("ticket_id", id))
		return nil
	}
	s.publishEvent(ctx, events.EventTicketDeleted, id, caller)
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, eventType events.EventType, ticketID string, caller domain.Principal) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Actor:     caller.Username,
		Timestamp: s.now(),
	})
}
