package revisions

import "go.uber.org/atomic"

// Stats is a point-in-time snapshot of the runtime's lifecycle counters.
// All counters are process-wide and monotonic; subtract two snapshots to
// describe a workload.
type Stats struct {
	SegmentsCreated int64 `json:"segments_created"`
	SegmentsFreed   int64 `json:"segments_freed"`
	Forks           int64 `json:"forks"`
	Joins           int64 `json:"joins"`
	MergesApplied   int64 `json:"merges_applied"`
	Collapses       int64 `json:"collapses"`
	EntriesErased   int64 `json:"entries_erased"`
}

var counters struct {
	segmentsCreated atomic.Int64
	segmentsFreed   atomic.Int64
	forks           atomic.Int64
	joins           atomic.Int64
	mergesApplied   atomic.Int64
	collapses       atomic.Int64
	entriesErased   atomic.Int64
}

// ReadStats returns the current lifecycle counters.
func ReadStats() Stats {
	return Stats{
		SegmentsCreated: counters.segmentsCreated.Load(),
		SegmentsFreed:   counters.segmentsFreed.Load(),
		Forks:           counters.forks.Load(),
		Joins:           counters.joins.Load(),
		MergesApplied:   counters.mergesApplied.Load(),
		Collapses:       counters.collapses.Load(),
		EntriesErased:   counters.entriesErased.Load(),
	}
}

// LiveSegments is the number of segments created but not yet freed.
func (s Stats) LiveSegments() int64 {
	return s.SegmentsCreated - s.SegmentsFreed
}

// Sub returns the counter deltas between s and an earlier snapshot.
func (s Stats) Sub(prev Stats) Stats {
	return Stats{
		SegmentsCreated: s.SegmentsCreated - prev.SegmentsCreated,
		SegmentsFreed:   s.SegmentsFreed - prev.SegmentsFreed,
		Forks:           s.Forks - prev.Forks,
		Joins:           s.Joins - prev.Joins,
		MergesApplied:   s.MergesApplied - prev.MergesApplied,
		Collapses:       s.Collapses - prev.Collapses,
		EntriesErased:   s.EntriesErased - prev.EntriesErased,
	}
}
