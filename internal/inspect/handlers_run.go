package inspect

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ryohji/concurrent-revisions/internal/scenario"
	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// HandleRun executes a named scenario on a fresh root revision
// The root is closed afterwards, so a run leaves no segments behind
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid run request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.Scenario == "" {
		writeError(w, http.StatusBadRequest, "scenario is required", "MISSING_SCENARIO")
		return
	}
	if !knownScenario(req.Scenario) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "unknown scenario",
			Code:    "UNKNOWN_SCENARIO",
			Details: "valid scenarios: " + strings.Join(scenario.Names(), ", "),
		})
		return
	}
	if req.Iterations <= 0 {
		req.Iterations = 1
	}

	run := h.runs.Begin(req.Scenario)

	root := revisions.NewRoot()
	defer func() { _ = root.Close() }()
	ctx := revisions.WithRevision(r.Context(), root)

	before := revisions.ReadStats()
	started := time.Now()

	var result *scenario.Result
	var err error
	for i := 0; i < req.Iterations; i++ {
		result, err = scenario.Run(ctx, req.Scenario)
		if err != nil {
			break
		}
	}
	h.runs.Finish(run, err)

	if err != nil {
		h.logger.Error().Err(err).Str("scenario", req.Scenario).Msg("scenario failed")
		writeError(w, http.StatusInternalServerError, err.Error(), "SCENARIO_FAILED")
		return
	}

	h.logger.Info().
		Str("scenario", req.Scenario).
		Int("iterations", req.Iterations).
		Dur("duration", time.Since(started)).
		Msg("scenario run completed")

	writeJSON(w, http.StatusOK, RunResponse{
		ID:         run.ID,
		Scenario:   req.Scenario,
		Iterations: req.Iterations,
		Cells:      result.Cells,
		Stats:      revisions.ReadStats().Sub(before),
		DurationMS: time.Since(started).Milliseconds(),
	})
}

func knownScenario(name string) bool {
	for _, n := range scenario.Names() {
		if n == name {
			return true
		}
	}
	return false
}
