package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticket-api/internal/events"
)

// ListInvalidator drops cached ticket lists.
type ListInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// StartCacheInvalidation subscribes cache invalidation to every ticket event.
// Failures are logged; cached lists then expire by TTL.
func StartCacheInvalidation(dispatcher events.Dispatcher, cache ListInvalidator, logger *zap.Logger) {
	if dispatcher == nil || cache == nil {
		return
	}
	handler := func(ctx context.Context, event events.Event) error {
		if err := cache.InvalidateAll(ctx); err != nil {
			logger.Warn("ticket list cache invalidation failed",
				zap.String("event", string(event.Type)),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
			return err
		}
		return nil
	}
	for _, eventType := range events.TicketEventTypes {
		dispatcher.Subscribe(eventType, handler)
	}
}
