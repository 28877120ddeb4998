package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
)

func TestTicketRepositoryList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTicketRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{ID: "1", Title: "Printer broken", Description: "", Status: "open", UpdatedAt: base.Add(1 * time.Minute)},
		{ID: "2", Title: "VPN", Description: "printer driver missing", Status: "open", UpdatedAt: base.Add(3 * time.Minute)},
		{ID: "3", Title: "PRINTER jam", Status: "closed", UpdatedAt: base.Add(2 * time.Minute)},
		{ID: "4", Title: "Laptop", Description: "battery", Status: "open", UpdatedAt: base.Add(4 * time.Minute)},
		{ID: "5", Title: "100% disk", Status: "open", UpdatedAt: base},
	}
	for i := range tickets {
		if err := repo.Create(ctx, &tickets[i]); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter repository.TicketFilter
		want   []string
	}{
		{"all by updatedAt desc", repository.TicketFilter{}, []string{"4", "2", "3", "1", "5"}},
		{"status", repository.TicketFilter{Status: "closed"}, []string{"3"}},
		{"query case-insensitive on title or description", repository.TicketFilter{Query: "printer"}, []string{"2", "3", "1"}},
		{"status and query", repository.TicketFilter{Status: "open", Query: "Printer"}, []string{"2", "1"}},
		{"percent is literal", repository.TicketFilter{Query: "%"}, []string{"5"}},
		{"no match", repository.TicketFilter{Query: "toner"}, []string{}},
		{"query leading space is literal", repository.TicketFilter{Query: " driver"}, []string{"2"}},
		{"query trailing space is not trimmed", repository.TicketFilter{Query: " broken "}, []string{}},
		{"status is not trimmed", repository.TicketFilter{Status: " open"}, []string{}},
	}
	for _, tt := range tests {
		got, err := repo.List(ctx, tt.filter)
		if err != nil {
			t.Fatalf("%s: List() error: %v", tt.name, err)
		}
		ids := make([]string, 0, len(got))
		for _, ticket := range got {
			ids = append(ids, ticket.ID)
		}
		if len(ids) != len(tt.want) {
			t.Fatalf("%s: List() = %v, want %v", tt.name, ids, tt.want)
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Fatalf("%s: List() = %v, want %v", tt.name, ids, tt.want)
			}
		}
	}
}

func TestTicketRepositoryUpdateKeepsImmutableFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTicketRepository()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	original := domain.Ticket{ID: "1", Title: "a", Status: "open", CreatedBy: domain.OwnedBy("alice"), CreatedAt: created, UpdatedAt: created}
	if err := repo.Create(ctx, &original); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	changed := original
	changed.Title = "b"
	changed.CreatedAt = created.Add(time.Hour)
	changed.CreatedBy = domain.OwnedBy("mallory")
	changed.UpdatedAt = created.Add(time.Minute)
	if err := repo.Update(ctx, &changed); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Title != "b" || !got.UpdatedAt.Equal(changed.UpdatedAt) {
		t.Fatalf("GetByID() = %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, created)
	}
	if owner, _ := got.CreatedBy.Username(); owner != "alice" {
		t.Fatalf("createdBy = %q, want alice", owner)
	}

	missing := domain.Ticket{ID: "nope"}
	if err := repo.Update(ctx, &missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTicketRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTicketRepository()
	assignee := "Sam"
	if err := repo.Create(ctx, &domain.Ticket{ID: "1", Title: "a", Assignee: &assignee}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	assignee = "changed"

	got, _ := repo.GetByID(ctx, "1")
	*got.Assignee = "mutated"
	again, _ := repo.GetByID(ctx, "1")
	if *again.Assignee != "Sam" {
		t.Fatalf("assignee = %q, want Sam", *again.Assignee)
	}
}

func TestTicketRepositoryDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTicketRepository()
	repo.Put(domain.Ticket{ID: "1", Title: "a"})

	removed, err := repo.Delete(ctx, "1")
	if err != nil || !removed {
		t.Fatalf("Delete(existing) = %v, %v", removed, err)
	}
	removed, err = repo.Delete(ctx, "1")
	if err != nil || removed {
		t.Fatalf("Delete(missing) = %v, %v", removed, err)
	}
}

func TestUserRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()
	if err := repo.Create(ctx, &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{ID: "u2", Username: "alice", Role: domain.RoleAdmin}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("Create(duplicate) error = %v, want ErrConflict", err)
	}

	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil || user.ID != "u1" {
		t.Fatalf("GetByUsername() = %+v, %v", user, err)
	}
	if _, err := repo.GetByUsername(ctx, "bob"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByUsername(missing) error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1"); err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}
}
