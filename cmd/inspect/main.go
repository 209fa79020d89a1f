// Package main implements the HTTP inspection server for the revisions runtime.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ryohji/concurrent-revisions/internal/inspect"
	"github.com/ryohji/concurrent-revisions/internal/libs/config"
	"github.com/ryohji/concurrent-revisions/internal/libs/obs"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("inspect")

	// Create HTTP handler
	handler := inspect.NewHandler(inspect.NewRunLog(cfg.RunHistory), logger)

	// Setup router
	r := setupRouter(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.InspectHost, cfg.InspectPort)
	logger.Info().Str("addr", addr).Msg("starting inspect server")

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func setupRouter(h *inspect.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	r.Get("/health", h.HandleHealth)
	r.Get("/stats", h.HandleStats)
	r.Post("/run", h.HandleRun)
	r.Get("/runs", h.HandleRuns)
	r.Handle("/metrics", h.Metrics())

	return r
}
