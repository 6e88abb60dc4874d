// Package metrics exposes the engine's prometheus instrumentation:
// recommendation request counts per component, LLM failure rates, and
// session-reaper sweep activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RecommendationRequests counts GetRecommendations calls by
	// component ("pick", "ban") and draft phase.
	RecommendationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "draftengine",
			Name:      "recommendation_requests_total",
			Help:      "Recommendation requests served, by component and phase.",
		},
		[]string{"component", "phase"},
	)

	// LLMOutcomes counts reranker calls by how they resolved: "success",
	// "timeout", "parse_failure", or "transport_error".
	LLMOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "draftengine",
			Name:      "llm_rerank_outcomes_total",
			Help:      "LLM rerank calls by outcome.",
		},
		[]string{"outcome"},
	)

	// LLMLatency observes end-to-end rerank call duration in seconds.
	LLMLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "draftengine",
			Name:      "llm_rerank_duration_seconds",
			Help:      "LLM rerank call latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// SessionReaperSweeps counts TTL sweeps by session kind ("replay",
	// "simulator") and whether they actually removed anything.
	SessionReaperSweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "draftengine",
			Name:      "session_reaper_sweeps_total",
			Help:      "Session TTL reaper sweeps, by session kind.",
		},
		[]string{"kind"},
	)

	// SessionsEvicted counts sessions actually removed by the reaper.
	SessionsEvicted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "draftengine",
			Name:      "sessions_evicted_total",
			Help:      "Sessions evicted by the TTL reaper, by session kind.",
		},
		[]string{"kind"},
	)

	// ActiveSessions tracks live session counts by kind.
	ActiveSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "draftengine",
			Name:      "active_sessions",
			Help:      "Currently tracked sessions, by session kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationRequests,
		LLMOutcomes,
		LLMLatency,
		SessionReaperSweeps,
		SessionsEvicted,
		ActiveSessions,
	)
}

// Registry is a dedicated prometheus registry, separate from the
// package-level collectors' registration on the default registerer, so
// tests can scrape a fresh registry per case without needing to
// unregister anything from the global default.
func Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		RecommendationRequests,
		LLMOutcomes,
		LLMLatency,
		SessionReaperSweeps,
		SessionsEvicted,
		ActiveSessions,
	)
	return reg
}
