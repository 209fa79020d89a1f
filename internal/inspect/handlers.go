package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler contains HTTP handlers for the inspect server
type Handler struct {
	runs    *RunLog
	logger  zerolog.Logger
	metrics http.Handler
}

// NewHandler creates a new HTTP handler
func NewHandler(runs *RunLog, logger zerolog.Logger) *Handler {
	return &Handler{
		runs:    runs,
		logger:  logger,
		metrics: newMetricsHandler(),
	}
}

// Metrics returns the prometheus scrape handler
func (h *Handler) Metrics() http.Handler {
	return h.metrics
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
