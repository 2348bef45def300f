package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// UserHandler serves the /api/users surface.
type UserHandler struct {
	users  *usecase.UserService
	logger *slog.Logger
}

func NewUserHandler(users *usecase.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"items": users})
}

// UpdateRole handles PATCH /api/users/{id}/role.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role domain.Role `json:"role"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	updated, err := h.users.UpdateRole(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), body.Role)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"item": updated})
}
