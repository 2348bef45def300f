package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/query"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/rbac"
)

// EventService owns the event read pipeline (validate -> filter -> sort ->
// paginate) and the permission-gated mutations. It caches nothing between
// calls; every read goes back to the repository.
type EventService struct {
	events domain.EventRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewEventService creates an EventService. now is the clock every
// time-relative filter is evaluated against; pass time.Now in production
// and a fixed clock in tests.
func NewEventService(events domain.EventRepository, logger *slog.Logger, now func() time.Time) *EventService {
	return &EventService{
		events: events,
		logger: logger,
		now:    now,
	}
}

// ListResult is one page of the filtered, sorted collection.
type ListResult struct {
	Items []domain.Event `json:"items"`
	Meta  query.PageMeta `json:"meta"`
}

// List validates rawParams, then filters, sorts and paginates the stored
// events. The page size is clamped to the maximum once more at this call
// site even though the validator already rejects larger values.
func (s *EventService) List(ctx context.Context, caller *domain.User, rawParams url.Values) (ListResult, error) {
	if err := rbac.Require(caller, rbac.EventsRead); err != nil {
		return ListResult{}, err
	}

	q, err := query.Parse(rawParams)
	if err != nil {
		return ListResult{}, err
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	filtered := query.Filter(events, q, now)
	sorted := query.Sort(filtered, q.SortBy, q.SortDir)

	pageSize := q.PageSize
	if pageSize > query.MaxPageSize {
		pageSize = query.MaxPageSize
	}
	items, meta := query.Paginate(sorted, q.Page, pageSize)

	return ListResult{Items: items, Meta: meta}, nil
}

// Export returns the full filtered and sorted collection without
// pagination, for CSV serialization downstream.
func (s *EventService) Export(ctx context.Context, caller *domain.User, rawParams url.Values) ([]domain.Event, error) {
	if err := rbac.Require(caller, rbac.EventsRead); err != nil {
		return nil, err
	}

	q, err := query.Parse(rawParams)
	if err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	filtered := query.Filter(events, q, s.now())
	return query.Sort(filtered, q.SortBy, q.SortDir), nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, caller *domain.User, id string) (domain.Event, error) {
	if err := rbac.Require(caller, rbac.EventsRead); err != nil {
		return domain.Event{}, err
	}
	return s.events.Get(ctx, id)
}

// Create validates the input, assigns identity and creation time, and
// persists the event. Nothing is written on a validation or permission
// failure.
func (s *EventService) Create(ctx context.Context, caller *domain.User, input EventInput) (domain.Event, error) {
	if err := rbac.Require(caller, rbac.EventsCreate); err != nil {
		return domain.Event{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:          "evt_" + uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Severity:    input.Severity,
		CreatedAt:   s.now().UTC(),
		Location:    input.Location,
		Metrics:     input.Metrics,
		Tags:        dedupeTags(input.Tags),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "category", event.Category, "severity", event.Severity)
	return event, nil
}

// Update applies a partial update to an existing event. The merge only
// touches whitelisted fields; id and createdAt always survive unchanged.
// Updates are last-write-wins.
func (s *EventService) Update(ctx context.Context, caller *domain.User, id string, patch EventPatch) (domain.Event, error) {
	if err := rbac.Require(caller, rbac.EventsUpdate); err != nil {
		return domain.Event{}, err
	}
	if err := patch.Validate(); err != nil {
		return domain.Event{}, err
	}

	existing, err := s.events.Get(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	updated := patch.apply(existing)
	if err := s.events.Update(ctx, updated); err != nil {
		return domain.Event{}, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated", "event_id", id)
	return updated, nil
}

// Delete removes an event by id.
func (s *EventService) Delete(ctx context.Context, caller *domain.User, id string) error {
	if err := rbac.Require(caller, rbac.EventsDelete); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}
