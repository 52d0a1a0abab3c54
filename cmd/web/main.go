// Package main is the entry point for the itinerary web server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/trip-itinerary/internal/apiclient"
	"github.com/pkordes/trip-itinerary/internal/config"
	"github.com/pkordes/trip-itinerary/internal/enrich"
	"github.com/pkordes/trip-itinerary/internal/handler"
	"github.com/pkordes/trip-itinerary/internal/middleware"
	"github.com/pkordes/trip-itinerary/internal/repo"
	"github.com/pkordes/trip-itinerary/internal/service"
	"github.com/pkordes/trip-itinerary/migrations"
)

// pruneInterval is how often expired sessions are removed from the store.
const pruneInterval = time.Hour

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Sessions ---------------------------------------------------------
	// Postgres when DATABASE_URL is set, otherwise an in-process map that is
	// lost on restart.
	var sessions repo.SessionRepo
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		// goose runs on database/sql; OpenDBFromPool shares the pool's config.
		sqlDB := stdlib.OpenDBFromPool(pool)
		err = migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")
		sessions = repo.NewSessionRepo(pool)
	} else {
		slog.Warn("DATABASE_URL not set; sessions are kept in memory")
		sessions = repo.NewMemorySessionRepo()
	}

	// --- Outbound clients -------------------------------------------------
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := apiclient.New(cfg.APIBaseURL, httpClient)

	var photos service.PhotoFinder
	if cfg.UnsplashAccessKey != "" {
		photos = enrich.NewPhotoClient(cfg.UnsplashURL, cfg.UnsplashAccessKey, httpClient, logger)
	}
	var weather service.WeatherFinder
	if cfg.OpenWeatherAPIKey != "" {
		weather = enrich.NewWeatherClient(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, httpClient, logger)
	}

	// --- Services ---------------------------------------------------------
	tripSvc := service.NewTripService(api, photos, weather)
	authSvc := service.NewAuthService(api, sessions, cfg.SessionTTL)

	go pruneSessions(ctx, authSvc, pruneInterval)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Session → Logger →
	// Recoverer → MaxBodySize. The session loader runs before the logger so
	// each access line records whether the request was signed in.
	srv := handler.NewServer(tripSvc, authSvc, logger, handler.Options{
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.SecureCookies,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSessionLoader(authSvc, logger))
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// The write timeout leaves room for a trips API call plus the parallel
	// enrichment lookups.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "api", cfg.APIBaseURL)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	// Give in-flight requests up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// pruneSessions deletes expired sessions every interval until ctx is done.
func pruneSessions(ctx context.Context, auth *service.AuthService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PruneExpired(ctx)
			if err != nil {
				slog.Warn("session prune failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions pruned", "count", n)
			}
		}
	}
}
