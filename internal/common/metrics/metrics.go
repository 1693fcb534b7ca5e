// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_searches_total",
			Help: "Total number of candidate searches by mode",
		},
		[]string{"mode"},
	)

	SearchStageSatisfied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_search_stage_satisfied_total",
			Help: "Which retrieval stage satisfied the candidate pool request",
		},
		[]string{"stage"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "match_search_duration_seconds",
			Help: "Duration of search processing in seconds",
		},
		[]string{"mode"},
	)

	EmbeddingCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_embedding_calls_total",
			Help: "Embedding provider calls by outcome",
		},
		[]string{"outcome"},
	)

	ShortlistsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_shortlists_generated_total",
			Help: "Auto-shortlists generated by outcome",
		},
		[]string{"outcome"},
	)
)
