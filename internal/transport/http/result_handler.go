package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "atpulse/internal/errors"
	"atpulse/internal/mobility"
)

// ResultHandler serves the immutable analysis result tables.
type ResultHandler struct {
	result       *mobility.Result
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewResultHandler creates a handler over a completed analysis result.
func NewResultHandler(result *mobility.Result, logger *slog.Logger) *ResultHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultHandler{
		result:       result,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the result routes
func (h *ResultHandler) RegisterRoutes(r chi.Router) {
	r.Get("/series", h.GetSeries)
	r.Get("/trends", h.GetTrends)
	r.Get("/diagnostics", h.GetDiagnostics)
}

// seriesResponse wraps the series table.
type seriesResponse struct {
	Count  int                    `json:"count"`
	Series []mobility.SeriesPoint `json:"series"`
}

// GetSeries returns the long-form series table, optionally filtered with
// ?country=XX.
func (h *ResultHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	if h.result == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrResultUnavailable)
		return
	}

	series := h.result.Series
	if country := r.URL.Query().Get("country"); country != "" {
		series = h.result.SeriesForCountry(country)
		if len(series) == 0 {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError("series for country "+country))
			return
		}
	}

	render.JSON(w, r, seriesResponse{Count: len(series), Series: series})
}

// trendsResponse wraps the trend table.
type trendsResponse struct {
	Count  int                    `json:"count"`
	Trends []mobility.TrendResult `json:"trends"`
}

// GetTrends returns the per-(country, category) trend table.
func (h *ResultHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	if h.result == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrResultUnavailable)
		return
	}
	render.JSON(w, r, trendsResponse{Count: len(h.result.Trends), Trends: h.result.Trends})
}

// diagnosticsResponse wraps the diagnostics list.
type diagnosticsResponse struct {
	Count       int                   `json:"count"`
	Diagnostics []mobility.Diagnostic `json:"diagnostics"`
}

// GetDiagnostics returns every diagnostic raised by the run.
func (h *ResultHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	if h.result == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrResultUnavailable)
		return
	}
	render.JSON(w, r, diagnosticsResponse{Count: len(h.result.Diagnostics), Diagnostics: h.result.Diagnostics})
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
