// Package http provides the read-only API over the analysis result: the
// series table, the trend table and the diagnostics, plus health and
// metrics endpoints. There is no write path; the pipeline runs once at
// startup and the tables are immutable afterwards.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"atpulse/internal/config"
	apierrors "atpulse/internal/errors"
	"atpulse/internal/metrics"
	"atpulse/internal/middleware"
	"atpulse/internal/mobility"
)

// Server serves the analysis result over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and middleware chain around an analysis
// result.
func NewServer(cfg config.ServerConfig, result *mobility.Result, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(collector))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, errorHandler))
	}

	resultHandler := NewResultHandler(result, logger)
	r.Route("/api", func(r chi.Router) {
		resultHandler.RegisterRoutes(r)
		r.Get("/health", HealthHandler)
	})
	r.Handle("/metrics", collector.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
