package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// EventHandler serves the /api/events collection.
type EventHandler struct {
	events  *usecase.EventService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewEventHandler(events *usecase.EventService, logger *slog.Logger, m *metrics.Metrics) *EventHandler {
	return &EventHandler{
		events:  events,
		logger:  logger,
		metrics: m,
	}
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.events.List(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"item": event})
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.EventInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}

	event, err := h.events.Create(r.Context(), middleware.IdentityFrom(r.Context()), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.EventWrites.WithLabelValues("create").Inc()
	respondData(w, http.StatusCreated, map[string]any{"item": event})
}

// Update handles PUT /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch usecase.EventPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}

	event, err := h.events.Update(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.EventWrites.WithLabelValues("update").Inc()
	respondData(w, http.StatusOK, map[string]any{"item": event})
}

// Delete handles DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.metrics.EventWrites.WithLabelValues("delete").Inc()
	respondData(w, http.StatusOK, map[string]any{"ok": true})
}
