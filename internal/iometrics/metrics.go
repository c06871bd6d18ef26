// Package iometrics holds Prometheus collectors of remote API calls,
// syncs and enrichment. Collectors are registered with the default
// registry and exposed by the HTTP API at /metrics.
package iometrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceRequests counts remote API requests by source, endpoint and
	// HTTP status ("error" for transport failures).
	SourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biosync_source_requests_total",
			Help: "Total number of remote API requests",
		},
		[]string{"source", "endpoint", "status"},
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biosync_source_request_duration_seconds",
			Help:    "Duration of remote API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "endpoint"},
	)

	SourceCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biosync_source_cache_hits_total",
			Help: "Total number of remote API responses served from cache",
		},
		[]string{"source", "endpoint"},
	)

	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biosync_sync_runs_total",
			Help: "Total number of country syncs by outcome",
		},
		[]string{"outcome"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "biosync_sync_duration_seconds",
			Help:    "Duration of country syncs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	// SyncOccurrences counts processed occurrences by result: created,
	// updated, unchanged or skipped.
	SyncOccurrences = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biosync_sync_occurrences_total",
			Help: "Total number of processed occurrences by result",
		},
		[]string{"result"},
	)

	EnrichSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biosync_enrich_steps_total",
			Help: "Total number of enrichment steps by step and outcome",
		},
		[]string{"step", "outcome"},
	)

	EnrichTasksActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "biosync_enrich_tasks_active",
			Help: "Current number of running enrichment tasks",
		},
	)
)

// RecordSourceRequest records a remote API call. Status 0 means the
// request failed before a response was received.
func RecordSourceRequest(
	source, endpoint string,
	status int,
	duration time.Duration,
) {
	st := "error"
	if status > 0 {
		st = strconv.Itoa(status)
	}
	SourceRequests.WithLabelValues(source, endpoint, st).Inc()
	SourceRequestDuration.WithLabelValues(source, endpoint).
		Observe(duration.Seconds())
}

// RecordCacheHit records a response served from a client cache.
func RecordCacheHit(source, endpoint string) {
	SourceCacheHits.WithLabelValues(source, endpoint).Inc()
}

// RecordSync records the outcome of a country sync.
func RecordSync(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	SyncRuns.WithLabelValues(outcome).Inc()
	SyncDuration.Observe(duration.Seconds())
}

// RecordOccurrence records the result of processing one occurrence.
func RecordOccurrence(result string) {
	SyncOccurrences.WithLabelValues(result).Inc()
}

// RecordEnrichStep records the outcome of an enrichment step.
func RecordEnrichStep(step string, updated, skipped bool, err error) {
	outcome := "unchanged"
	switch {
	case err != nil:
		outcome = "error"
	case skipped:
		outcome = "skipped"
	case updated:
		outcome = "updated"
	}
	EnrichSteps.WithLabelValues(step, outcome).Inc()
}
