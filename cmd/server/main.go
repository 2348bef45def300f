package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/api"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/metrics"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/repository/memory"
	pgrepo "github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/repository/postgres"
	redisrepo "github.com/mayankdobriyal1920/mini-insight-ops/internal/adapter/repository/redis"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/pkg/config"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/pkg/logger"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/seed"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.New(prometheus.DefaultRegisterer)

	// --- Metrics and health server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		log.Info("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	// --- Graceful shutdown context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	now := time.Now

	// --- Repositories ---
	eventRepo, userRepo, err := buildStores(ctx, cfg, log, now)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	sessionRepo, err := buildSessions(ctx, cfg, log, now)
	if err != nil {
		log.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}

	// --- Services ---
	authService := usecase.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL, log)
	eventService := usecase.NewEventService(eventRepo, log, now)
	insightService := usecase.NewInsightService(eventRepo, log, now)
	userService := usecase.NewUserService(userRepo, log)

	// --- HTTP server ---
	router := api.NewRouter(
		api.Config{
			LoginRate:     rate.Limit(cfg.LoginRatePerMinute / 60),
			LoginBurst:    cfg.LoginBurst,
			SecureCookies: cfg.SecureCookies,
		},
		api.Services{
			Auth:     authService,
			Events:   eventService,
			Insights: insightService,
			Users:    userService,
			Now:      now,
		},
		log,
		m,
	)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting api server", "addr", server.Addr, "storage", cfg.StorageBackend, "sessions", cfg.SessionBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("api server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics server shutdown failed", "error", err)
	}

	log.Info("shutdown complete")
}

// buildStores wires the configured event/user repositories and bootstraps
// the demo dataset where appropriate.
func buildStores(ctx context.Context, cfg *config.Config, log *slog.Logger, now func() time.Time) (domain.EventRepository, domain.UserRepository, error) {
	switch cfg.StorageBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, nil, err
		}

		eventRepo := pgrepo.NewEventRepository(db, log)
		userRepo := pgrepo.NewUserRepository(db, log)
		if err := eventRepo.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		if err := userRepo.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		if err := userRepo.Ensure(ctx, seed.Users()); err != nil {
			return nil, nil, err
		}

		// Bootstrap the demo dataset only into an empty store.
		count, err := eventRepo.Count(ctx)
		if err != nil {
			return nil, nil, err
		}
		if count == 0 {
			for _, e := range seed.Events(cfg.SeedValue, cfg.SeedCount, now()) {
				if err := eventRepo.Create(ctx, e); err != nil {
					return nil, nil, err
				}
			}
			log.Info("seeded demo events into postgres", "count", cfg.SeedCount)
		}
		return eventRepo, userRepo, nil

	default:
		eventRepo := memory.NewEventRepository(log)
		eventRepo.Init(seed.Events(cfg.SeedValue, cfg.SeedCount, now()))
		userRepo := memory.NewUserRepository(seed.Users())
		log.Info("using in-memory storage with demo dataset", "events", cfg.SeedCount)
		return eventRepo, userRepo, nil
	}
}

// buildSessions wires the configured session repository.
func buildSessions(ctx context.Context, cfg *config.Config, log *slog.Logger, now func() time.Time) (domain.SessionRepository, error) {
	if cfg.SessionBackend != "redis" {
		return memory.NewSessionRepository(now), nil
	}

	opts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return redisrepo.NewSessionRepository(client, log), nil
}
