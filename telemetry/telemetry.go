// Package telemetry holds the Prometheus collectors of wealthflow.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wealthflow"

// Outcome label values.
const (
	OK    = "ok"
	Error = "error"
)

var (
	// Registry gathers every wealthflow collector plus the Go runtime ones.
	Registry = prometheus.NewRegistry()

	// ScenarioSaves counts scenario saves by outcome.
	ScenarioSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scenario_saves_total",
		Help:      "Scenario saves, by outcome.",
	}, []string{"outcome"})

	// GeminiRequests counts calls to Gemini by operation and outcome.
	GeminiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gemini_requests_total",
		Help:      "Gemini calls, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// GeminiDuration observes the latency of Gemini calls.
	GeminiDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gemini_request_duration_seconds",
		Help:      "Latency of Gemini calls.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
	}, []string{"operation"})

	// DocumentWrites counts documents written to storage by outcome.
	DocumentWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_writes_total",
		Help:      "Documents persisted by the autosaver, by outcome.",
	}, []string{"outcome"})

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP API requests, by route and status code.",
	}, []string{"route", "code"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ScenarioSaves,
		GeminiRequests,
		GeminiDuration,
		DocumentWrites,
		HTTPRequests,
	)
}

// Outcome returns the outcome label of an error.
func Outcome(err error) string {
	if err != nil {
		return Error
	}
	return OK
}

// ObserveGemini records a Gemini call that started at start.
func ObserveGemini(operation string, start time.Time, err error) {
	GeminiDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	GeminiRequests.WithLabelValues(operation, Outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
