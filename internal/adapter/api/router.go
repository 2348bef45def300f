package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/handler"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api/middleware"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// Config carries the router's tunables.
type Config struct {
	// LoginRate and LoginBurst bound login attempts per client IP.
	LoginRate  rate.Limit
	LoginBurst int
	// SecureCookies sets the Secure flag on session cookies.
	SecureCookies bool
}

// Services groups everything the routes dispatch into. Now is the clock
// used for export filenames; it should match the services' clock.
type Services struct {
	Auth     *usecase.AuthService
	Events   *usecase.EventService
	Insights *usecase.InsightService
	Users    *usecase.UserService
	Now      func() time.Time
}

// NewRouter wires the full API surface.
func NewRouter(cfg Config, svc Services, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	authHandler := handler.NewAuthHandler(svc.Auth, logger, m, cfg.SecureCookies)
	eventHandler := handler.NewEventHandler(svc.Events, logger, m)
	exportHandler := handler.NewExportHandler(svc.Events, logger, svc.Now)
	insightHandler := handler.NewInsightHandler(svc.Insights, logger, m)
	userHandler := handler.NewUserHandler(svc.Users, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Instrument(m))
	r.Use(middleware.Session(svc.Auth))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(cfg.LoginRate, cfg.LoginBurst, logger)).
				Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
			r.Get("/export", exportHandler.Export)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)
				r.Put("/", eventHandler.Update)
				r.Delete("/", eventHandler.Delete)
			})
		})

		r.Get("/insights", insightHandler.Compute)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Patch("/{id}/role", userHandler.UpdateRole)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
