// Package inspect provides HTTP handlers and data transfer objects for
// observing and driving the revisions runtime.
package inspect

import (
	"time"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	LiveSegments int64  `json:"live_segments"`
	RunCount     int    `json:"run_count"`
}

// StatsResponse represents the runtime counter snapshot
type StatsResponse struct {
	Stats        revisions.Stats `json:"stats"`
	LiveSegments int64           `json:"live_segments"`
}

// RunRequest represents a scenario execution request
type RunRequest struct {
	Scenario   string `json:"scenario"`
	Iterations int    `json:"iterations,omitempty"` // Default: 1
}

// RunResponse represents the outcome of a scenario execution
type RunResponse struct {
	ID         string          `json:"id"`
	Scenario   string          `json:"scenario"`
	Iterations int             `json:"iterations"`
	Cells      map[string]int  `json:"cells"` // final cell values of the last iteration
	Stats      revisions.Stats `json:"stats"` // counter deltas over all iterations
	DurationMS int64           `json:"duration_ms"`
}

// RunSummary represents one entry of the run history
type RunSummary struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// RunsResponse represents the run history
type RunsResponse struct {
	Runs  []RunSummary `json:"runs"`
	Count int          `json:"count"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
