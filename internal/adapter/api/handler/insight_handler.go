package handler

import (
	"log/slog"
	"net/http"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// InsightHandler serves the dashboard analytics.
type InsightHandler struct {
	insights *usecase.InsightService
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewInsightHandler(insights *usecase.InsightService, logger *slog.Logger, m *metrics.Metrics) *InsightHandler {
	return &InsightHandler{
		insights: insights,
		logger:   logger,
		metrics:  m,
	}
}

// Compute handles GET /api/insights. It honors the list filter parameters
// so the report always describes the same slice the caller is looking at.
func (h *InsightHandler) Compute(w http.ResponseWriter, r *http.Request) {
	report, err := h.insights.Compute(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.InsightReports.Inc()
	respondData(w, http.StatusOK, report)
}
