package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// errorBody is the error envelope every failure response carries.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func respondErrorBody(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": body})
}

// respondError maps a domain error onto the HTTP error envelope. Unknown
// errors become an opaque 500; their detail is logged, never leaked.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		respondErrorBody(w, http.StatusBadRequest, errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request",
			Details: verr.Fields,
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		respondErrorBody(w, http.StatusUnauthorized, errorBody{
			Code:    "UNAUTHENTICATED",
			Message: "Authentication required",
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondErrorBody(w, http.StatusUnauthorized, errorBody{
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid email or password",
		})
	case errors.Is(err, domain.ErrForbidden):
		respondErrorBody(w, http.StatusForbidden, errorBody{
			Code:    "FORBIDDEN",
			Message: "You do not have permission to perform this action",
		})
	case errors.Is(err, domain.ErrNotFound):
		respondErrorBody(w, http.StatusNotFound, errorBody{
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, domain.ErrSelfRoleChange):
		respondErrorBody(w, http.StatusConflict, errorBody{
			Code:    "SELF_ROLE_CHANGE",
			Message: "You cannot change your own role",
		})
	default:
		logger.Error("request failed", "error", err)
		respondErrorBody(w, http.StatusInternalServerError, errorBody{
			Code:    "INTERNAL",
			Message: "Internal server error",
		})
	}
}

// decodeJSON reads a request body into dst, reporting malformed JSON as a
// validation failure rather than a bare 400.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		verr := &domain.ValidationError{}
		verr.Add("body", "malformed JSON")
		return verr
	}
	return nil
}
