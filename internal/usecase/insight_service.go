package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/insight"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/query"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/rbac"
)

// InsightService computes analyzer reports over the filtered event set.
// It honors the same query parameters as the list pipeline, minus
// pagination, so a dashboard and its event table always describe the same
// slice of data.
type InsightService struct {
	events domain.EventRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewInsightService(events domain.EventRepository, logger *slog.Logger, now func() time.Time) *InsightService {
	return &InsightService{
		events: events,
		logger: logger,
		now:    now,
	}
}

// Compute filters the collection by rawParams and derives the breakdowns,
// the trend, and the narrative from the result.
func (s *InsightService) Compute(ctx context.Context, caller *domain.User, rawParams url.Values) (insight.Report, error) {
	if err := rbac.Require(caller, rbac.EventsRead); err != nil {
		return insight.Report{}, err
	}

	q, err := query.Parse(rawParams)
	if err != nil {
		return insight.Report{}, err
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return insight.Report{}, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	filtered := query.Filter(events, q, now)
	return insight.Compute(filtered, now), nil
}
