package inspect

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryohji/concurrent-revisions/pkg/revisions"
)

// newMetricsHandler exposes the runtime's lifecycle counters in prometheus
// format. Values are read from the runtime at scrape time; the handler uses
// its own registry so tests can build handlers independently.
func newMetricsHandler() http.Handler {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "revisions_live_segments",
		Help: "Segments created but not yet freed.",
	}, func() float64 { return float64(revisions.ReadStats().LiveSegments()) }))

	counter := func(name, help string, value func(revisions.Stats) int64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, func() float64 { return float64(value(revisions.ReadStats())) })
	}

	reg.MustRegister(
		counter("revisions_segments_created_total", "Segments allocated.",
			func(s revisions.Stats) int64 { return s.SegmentsCreated }),
		counter("revisions_segments_freed_total", "Segments released or collapsed.",
			func(s revisions.Stats) int64 { return s.SegmentsFreed }),
		counter("revisions_forks_total", "Revisions forked.",
			func(s revisions.Stats) int64 { return s.Forks }),
		counter("revisions_joins_total", "Revisions joined.",
			func(s revisions.Stats) int64 { return s.Joins }),
		counter("revisions_merges_applied_total", "Cell merges that passed the last-writer guard.",
			func(s revisions.Stats) int64 { return s.MergesApplied }),
		counter("revisions_collapses_total", "Segments spliced out during collapse.",
			func(s revisions.Stats) int64 { return s.Collapses }),
		counter("revisions_entries_erased_total", "Cell version entries erased.",
			func(s revisions.Stats) int64 { return s.EntriesErased }),
	)

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
