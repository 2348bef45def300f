package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/export"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// ExportHandler streams the filtered, sorted collection as CSV.
type ExportHandler struct {
	events *usecase.EventService
	logger *slog.Logger
	now    func() time.Time
}

func NewExportHandler(events *usecase.EventService, logger *slog.Logger, now func() time.Time) *ExportHandler {
	return &ExportHandler{
		events: events,
		logger: logger,
		now:    now,
	}
}

// Export handles GET /api/events/export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.Export(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if err := export.WriteCSV(w, events); err != nil {
		// Headers are gone at this point; logging is all that is left.
		h.logger.Error("failed to stream csv export", "error", err)
	}
}
