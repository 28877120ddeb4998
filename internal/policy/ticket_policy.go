// Package policy decides whether a caller may mutate a ticket and what the
// ticket looks like afterwards.
package policy

import (
	"strings"
	"time"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	apperrors "github.com/helpdesk-labs/ticket-api/pkg/util/errorutil"
)

// Denial messages returned with Forbidden errors.
const (
	MsgNotOwner        = "not allowed to modify this ticket"
	MsgAssigneeAdmin   = "only admins may change the assignee"
	MsgStatusCloseOnly = "users may only close tickets"
	MsgDeleteAdminOnly = "only admins may delete tickets"
	MsgTitleEmpty      = "title must not be empty"
)

// ApplyTicketUpdate merges patch into existing on behalf of caller. It
// returns NotFound when existing is nil, Forbidden when the caller may not
// make the change, and the merged ticket otherwise. existing is not modified.
//
// Admins may change every field on every ticket. Other callers may only touch
// tickets they created or tickets without a recorded creator; on those they
// may edit title and description and set status to exactly "closed", and may
// not send an assignee at all.
func ApplyTicketUpdate(caller domain.Principal, existing *domain.Ticket, patch domain.TicketPatch, now time.Time) (domain.Ticket, error) {
	if existing == nil {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", nil)
	}

	if !caller.IsAdmin() {
		if !existing.CreatedBy.IsOwnerOrUnset(caller.Username) {
			return domain.Ticket{}, apperrors.NewForbidden(MsgNotOwner)
		}
		if patch.Assignee.Present() {
			return domain.Ticket{}, apperrors.NewForbidden(MsgAssigneeAdmin)
		}
		if status, ok := patch.Status.Get(); ok && status != domain.StatusClosed {
			return domain.Ticket{}, apperrors.NewForbidden(MsgStatusCloseOnly)
		}
	}

	next := *existing
	if title, ok := patch.Title.Get(); ok {
		if strings.TrimSpace(title) == "" {
			return domain.Ticket{}, apperrors.NewValidationError(MsgTitleEmpty, map[string]any{"field": "title"})
		}
		next.Title = title
	}
	if description, ok := patch.Description.Get(); ok {
		next.Description = description
	}
	if status, ok := patch.Status.Get(); ok {
		next.Status = status
	}
	if assignee, ok := patch.Assignee.Get(); ok {
		next.Assignee = copyString(assignee)
	}

	next.UpdatedAt = now
	if next.UpdatedAt.Before(existing.UpdatedAt) {
		next.UpdatedAt = existing.UpdatedAt
	}
	return next, nil
}

// AuthorizeDelete reports whether caller may delete tickets.
func AuthorizeDelete(caller domain.Principal) error {
	if !caller.IsAdmin() {
		return apperrors.NewForbidden(MsgDeleteAdminOnly)
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
