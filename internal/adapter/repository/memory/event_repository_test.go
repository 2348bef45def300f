package memory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

var noLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func testEvent(id string) domain.Event {
	return domain.Event{
		ID:        id,
		Title:     "Event " + id,
		Category:  domain.CategoryOps,
		Severity:  domain.SeverityLow,
		CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Metrics:   domain.Metrics{Score: 50, Confidence: 0.5, Impact: 10},
		Tags:      []string{"fixture"},
	}
}

func TestEventRepositoryListPreservesCreationOrder(t *testing.T) {
	repo := NewEventRepository(noLog)
	ctx := context.Background()

	for _, id := range []string{"e3", "e1", "e2"} {
		if err := repo.Create(ctx, testEvent(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	events, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"e3", "e1", "e2"}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, id := range want {
		if events[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, events[i].ID)
		}
	}
}

func TestEventRepositoryGet(t *testing.T) {
	repo := NewEventRepository(noLog)
	ctx := context.Background()
	repo.Init([]domain.Event{testEvent("e1")})

	t.Run("found", func(t *testing.T) {
		got, err := repo.Get(ctx, "e1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != "e1" {
			t.Fatalf("expected e1, got %s", got.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := repo.Get(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEventRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves the stored creation time", func(t *testing.T) {
		repo := NewEventRepository(noLog)
		original := testEvent("e1")
		repo.Init([]domain.Event{original})

		patched := testEvent("e1")
		patched.Title = "Renamed"
		patched.CreatedAt = original.CreatedAt.Add(48 * time.Hour)

		if err := repo.Update(ctx, patched); err != nil {
			t.Fatalf("update: %v", err)
		}

		stored, err := repo.Get(ctx, "e1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Title != "Renamed" {
			t.Errorf("expected renamed title, got %q", stored.Title)
		}
		if !stored.CreatedAt.Equal(original.CreatedAt) {
			t.Errorf("creation time changed: %v", stored.CreatedAt)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := NewEventRepository(noLog)
		if err := repo.Update(ctx, testEvent("ghost")); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEventRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(noLog)
	repo.Init([]domain.Event{testEvent("e1"), testEvent("e2"), testEvent("e3")})

	if err := repo.Delete(ctx, "e2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "e2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	events, _ := repo.List(ctx)
	if len(events) != 2 || events[0].ID != "e1" || events[1].ID != "e3" {
		t.Fatalf("unexpected remaining events: %+v", events)
	}
}

func TestEventRepositoryIsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(noLog)

	original := testEvent("e1")
	if err := repo.Create(ctx, original); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the caller's copy after the fact must not leak in.
	original.Tags[0] = "mutated"

	got, _ := repo.Get(ctx, "e1")
	if got.Tags[0] != "fixture" {
		t.Fatal("stored event shares tag backing array with the caller")
	}

	// Nor must mutating a returned copy affect the store.
	got.Tags[0] = "mutated"
	again, _ := repo.Get(ctx, "e1")
	if again.Tags[0] != "fixture" {
		t.Fatal("returned event shares tag backing array with the store")
	}
}

func TestEventRepositoryReset(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(noLog)
	repo.Init([]domain.Event{testEvent("e1"), testEvent("e2")})

	repo.Reset()

	events, _ := repo.List(ctx)
	if len(events) != 0 {
		t.Fatalf("expected empty store, got %d events", len(events))
	}
}
