package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectionsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatesim_projections_computed_total",
			Help: "Projections computed by the engine",
		},
		[]string{"kind"}, // single | comparison
	)

	ProjectionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatesim_projection_cache_lookups_total",
			Help: "Projection cache lookups by outcome",
		},
		[]string{"outcome"}, // hit | miss | error
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatesim_collaborator_calls_total",
			Help: "Calls to AI collaborators (headline, urban impact)",
		},
		[]string{"collaborator", "status"},
	)

	CollaboratorLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climatesim_collaborator_latency_seconds",
			Help:    "AI collaborator call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collaborator"},
	)

	BaselineRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climatesim_baseline_refreshes_total",
			Help: "Baseline refresh attempts by status",
		},
		[]string{"status"},
	)
)
