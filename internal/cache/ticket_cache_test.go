package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
)

func newTestCache(t *testing.T) (*TicketListCache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTicketListCache(rdb, time.Minute), srv, rdb
}

func TestKeyIsUnambiguous(t *testing.T) {
	t.Parallel()

	a := Key(0, repository.TicketFilter{Status: "a|q=", Query: "b"})
	b := Key(0, repository.TicketFilter{Status: "a", Query: "|q=b"})
	if a == b {
		t.Fatalf("Key() collides for different filters: %q", a)
	}
	if Key(0, repository.TicketFilter{Query: " printer"}) == Key(0, repository.TicketFilter{Query: "printer"}) {
		t.Fatal("Key() dropped whitespace that the search matches literally")
	}
	if Key(1, repository.TicketFilter{}) == Key(2, repository.TicketFilter{}) {
		t.Fatal("Key() ignores the generation")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _ := newTestCache(t)
	filter := repository.TicketFilter{Status: "open", Query: "printer"}

	if _, hit, err := c.Get(ctx, 0, filter); err != nil || hit {
		t.Fatalf("Get(empty) = hit %v, err %v; want miss", hit, err)
	}

	at := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	alex := "Alex"
	list := []domain.Ticket{
		{ID: "1", Title: "Printer broken", Status: "open", Assignee: &alex, CreatedBy: domain.OwnedBy("user"), CreatedAt: at, UpdatedAt: at},
		{ID: "2", Title: "Legacy", Status: "open", CreatedBy: domain.Unowned(), CreatedAt: at, UpdatedAt: at},
	}
	if err := c.Set(ctx, 0, filter, list); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, hit, err := c.Get(ctx, 0, filter)
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v; want hit", hit, err)
	}
	if len(got) != 2 {
		t.Fatalf("Get() returned %d tickets", len(got))
	}
	if got[0].Assignee == nil || *got[0].Assignee != "Alex" {
		t.Fatalf("assignee = %v, want Alex", got[0].Assignee)
	}
	if owner, ok := got[0].CreatedBy.Username(); !ok || owner != "user" {
		t.Fatalf("createdBy = %q, %v", owner, ok)
	}
	if got[1].Assignee != nil || !got[1].CreatedBy.IsUnset() {
		t.Fatalf("null fields did not survive: %+v", got[1])
	}
	if !got[0].UpdatedAt.Equal(at) {
		t.Fatalf("updatedAt = %v, want %v", got[0].UpdatedAt, at)
	}

	if _, hit, _ := c.Get(ctx, 0, repository.TicketFilter{Status: "closed"}); hit {
		t.Fatal("Get() hit for a different filter")
	}
}

func TestInvalidateAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, srv, rdb := newTestCache(t)

	gen, err := c.Generation(ctx)
	if err != nil || gen != 0 {
		t.Fatalf("Generation() = %d, %v; want 0", gen, err)
	}
	for _, status := range []string{"", "open", "closed"} {
		if err := c.Set(ctx, gen, repository.TicketFilter{Status: status}, []domain.Ticket{}); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}
	if err := rdb.Set(ctx, "session:abc", "keep", 0).Err(); err != nil {
		t.Fatalf("seed unrelated key: %v", err)
	}

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll() error: %v", err)
	}

	for _, key := range srv.Keys() {
		if strings.HasPrefix(key, keyListPrefix) {
			t.Fatalf("list key %q survived invalidation", key)
		}
	}
	if v, err := srv.Get("session:abc"); err != nil || v != "keep" {
		t.Fatalf("unrelated key = %q, %v; want kept", v, err)
	}

	next, err := c.Generation(ctx)
	if err != nil || next != gen+1 {
		t.Fatalf("Generation() after invalidate = %d, %v; want %d", next, err, gen+1)
	}

	// A load that started before the invalidation writes under the old generation.
	if err := c.Set(ctx, gen, repository.TicketFilter{}, []domain.Ticket{{ID: "stale"}}); err != nil {
		t.Fatalf("Set(stale) error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, next, repository.TicketFilter{}); hit {
		t.Fatal("stale write is visible at the new generation")
	}
}

func TestCacheErrorsWhenRedisDown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, srv, _ := newTestCache(t)
	srv.Close()

	if _, _, err := c.Get(ctx, 0, repository.TicketFilter{}); err == nil {
		t.Fatal("Get() error = nil with redis down")
	}
	if _, err := c.Generation(ctx); err == nil {
		t.Fatal("Generation() error = nil with redis down")
	}
}
