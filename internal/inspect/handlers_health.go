package inspect

import (
	"net/http"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// HandleHealth returns server health and a runtime summary
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := revisions.ReadStats()
	resp := HealthResponse{
		Status:       "healthy",
		LiveSegments: stats.LiveSegments(),
		RunCount:     h.runs.Count(),
	}

	h.logger.Debug().Int64("live_segments", resp.LiveSegments).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
