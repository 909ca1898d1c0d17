// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/alexanderramin/moodflix/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodflix_chat_turns_total",
			Help: "Total number of handled chat turns by reply kind",
		},
		[]string{"kind"}, // "welcome", "question", "recommendation", "clarification", "no_results", ...
	)

	ChatTurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodflix_chat_turn_duration_seconds",
			Help:    "Wall time spent handling one chat turn",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodflix_catalog_requests_total",
			Help: "Total number of catalog API requests by outcome",
		},
		[]string{"catalog", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moodflix_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodflix_llm_calls_total",
			Help: "Total number of LLM calls by task and status",
		},
		[]string{"task", "status"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodflix_sessions_active",
			Help: "Number of in-memory conversation sessions",
		},
	)
)

// RecordChatTurn counts a finished turn and its latency.
func RecordChatTurn(kind string, duration time.Duration) {
	ChatTurns.WithLabelValues(kind).Inc()
	ChatTurnDuration.Observe(duration.Seconds())
}

func RecordCatalogRequest(catalog, result string) {
	CatalogRequests.WithLabelValues(catalog, result).Inc()
}

func SetCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

func SetSessionsActive(n int) {
	SessionsActive.Set(float64(n))
}

// LLMObserver feeds LLM call events into LLMCalls.
type LLMObserver struct{}

func (LLMObserver) OnCallComplete(event llm.LLMCallEvent) {
	LLMCalls.WithLabelValues(string(event.Task), event.Status()).Inc()
}
