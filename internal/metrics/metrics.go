// Package metrics provides Prometheus metrics for the analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the service.
type Collector struct {
	// Ingestion metrics
	EventsIngested prometheus.Counter
	BatchesFlushed prometheus.Counter
	FlushErrors    prometheus.Counter

	// Analytics engine metrics
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	ComputeDuration prometheus.Histogram
	StorageErrors   prometheus.Counter
}

// New creates a collector registered on reg. Tests pass a fresh
// prometheus.NewRegistry so suites don't collide on the default one.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		EventsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "events_ingested_total",
			Help:      "Total number of events accepted for ingestion",
		}),
		BatchesFlushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "batches_flushed_total",
			Help:      "Total number of event batches written to storage",
		}),
		FlushErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "flush_errors_total",
			Help:      "Total number of failed batch writes",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "analytics_cache_hits_total",
			Help:      "Analytics results served from the memo cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "analytics_cache_misses_total",
			Help:      "Analytics results recomputed on cache miss or bypass",
		}),
		ComputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outreach",
			Name:      "analytics_compute_duration_seconds",
			Help:      "Time spent computing a full analytics result",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		StorageErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "storage_read_errors_total",
			Help:      "Event store reads that failed and degraded to an empty dataset",
		}),
	}
}
