// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_runs_total",
			Help: "Total number of recommendation runs by outcome",
		},
		[]string{"outcome"},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_candidates_scored_total",
			Help: "Total number of candidates scored successfully",
		},
	)

	CandidatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_candidates_dropped_total",
			Help: "Total number of candidates dropped due to scoring failures",
		},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "recommender_run_duration_seconds",
			Help: "Duration of a full recommendation run in seconds",
		},
	)
)
