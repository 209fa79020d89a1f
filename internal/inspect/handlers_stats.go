package inspect

import (
	"net/http"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// HandleStats returns the runtime's lifecycle counters
func (h *Handler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	stats := revisions.ReadStats()
	writeJSON(w, http.StatusOK, StatsResponse{
		Stats:        stats,
		LiveSegments: stats.LiveSegments(),
	})
}

// HandleRuns returns the retained run history
func (h *Handler) HandleRuns(w http.ResponseWriter, _ *http.Request) {
	runs := h.runs.All()

	summaries := make([]RunSummary, len(runs))
	for i, run := range runs {
		summaries[i] = RunSummary{
			ID:         run.ID,
			Scenario:   run.Scenario,
			Status:     run.Status,
			StartedAt:  run.StartedAt,
			DurationMS: run.Duration.Milliseconds(),
		}
	}

	writeJSON(w, http.StatusOK, RunsResponse{
		Runs:  summaries,
		Count: len(summaries),
	})
}
