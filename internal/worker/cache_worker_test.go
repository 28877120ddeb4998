package worker

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticket-api/internal/events"
)

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) InvalidateAll(context.Context) error {
	c.calls++
	return c.err
}

func TestStartCacheInvalidation(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()
	inv := &countingInvalidator{}
	StartCacheInvalidation(d, inv, zap.NewNop())

	for _, eventType := range events.TicketEventTypes {
		if err := d.Publish(context.Background(), events.Event{Type: eventType, TicketID: "t"}); err != nil {
			t.Fatalf("Publish(%s) error: %v", eventType, err)
		}
	}
	if inv.calls != len(events.TicketEventTypes) {
		t.Fatalf("InvalidateAll calls = %d, want %d", inv.calls, len(events.TicketEventTypes))
	}
}

func TestStartCacheInvalidationReportsFailure(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()
	inv := &countingInvalidator{err: errors.New("redis down")}
	StartCacheInvalidation(d, inv, zap.NewNop())

	if err := d.Publish(context.Background(), events.Event{Type: events.EventTicketDeleted}); err == nil {
		t.Fatal("Publish() error = nil, want invalidation failure")
	}
}

func TestStartCacheInvalidationNilCache(t *testing.T) {
	t.Parallel()

	d := events.NewInMemoryDispatcher()
	StartCacheInvalidation(d, nil, zap.NewNop())
	if err := d.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
}
