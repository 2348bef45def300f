// Package memory provides the in-process repository implementations used
// for demos and tests. All of them keep creation-order iteration, which
// the insight tie-breaks depend on.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// EventRepository is a mutex-guarded in-memory domain.EventRepository.
type EventRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]domain.Event
	logger *slog.Logger
}

func NewEventRepository(logger *slog.Logger) *EventRepository {
	return &EventRepository{
		events: make(map[string]domain.Event),
		logger: logger.With("component", "memory_event_repository"),
	}
}

// Init loads a dataset, replacing whatever was stored. Used for the seed
// bootstrap and per-test fixtures.
func (r *EventRepository) Init(events []domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = r.order[:0]
	r.events = make(map[string]domain.Event, len(events))
	for _, e := range events {
		r.order = append(r.order, e.ID)
		r.events[e.ID] = e.Clone()
	}
	r.logger.Debug("event store initialized", "count", len(events))
}

// Reset empties the store.
func (r *EventRepository) Reset() {
	r.Init(nil)
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.events[id].Clone())
	}
	return out, nil
}

func (r *EventRepository) Get(ctx context.Context, id string) (domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return domain.Event{}, domain.ErrNotFound
	}
	return e.Clone(), nil
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; !exists {
		r.order = append(r.order, event.ID)
	}
	r.events[event.ID] = event.Clone()
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[event.ID]
	if !ok {
		return domain.ErrNotFound
	}

	updated := event.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.events[event.ID] = updated
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
