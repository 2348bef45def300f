package handler

import (
	"log/slog"
	"net/http"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// AuthHandler serves login, logout and identity introspection.
type AuthHandler struct {
	auth    *usecase.AuthService
	logger  *slog.Logger
	metrics *metrics.Metrics
	secure  bool
}

// NewAuthHandler creates an AuthHandler. secure controls the Secure flag
// on the session cookie; disable it only for local plain-HTTP setups.
func NewAuthHandler(auth *usecase.AuthService, logger *slog.Logger, m *metrics.Metrics, secure bool) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		logger:  logger,
		metrics: m,
		secure:  secure,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	verr := &domain.ValidationError{}
	if body.Email == "" {
		verr.Add("email", "required")
	}
	if body.Password == "" {
		verr.Add("password", "required")
	}
	if err := verr.Err(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, sessionID, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		respondError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionID, int(h.auth.SessionTTL().Seconds())))
	h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	respondData(w, http.StatusOK, map[string]any{"user": user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			respondError(w, h.logger, err)
			return
		}
	}

	// Expire the cookie regardless of whether a session existed.
	http.SetCookie(w, h.sessionCookie("", -1))
	respondData(w, http.StatusOK, map[string]any{"ok": true})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.IdentityFrom(r.Context())
	if user == nil {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	}
}
