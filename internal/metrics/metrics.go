// Package metrics defines the application's Prometheus instrumentation.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteaudit_provider_requests_total",
			Help: "Total provider fetches, labeled by metric category and outcome (live or fallback).",
		},
		[]string{"category", "outcome"},
	)
	AuditsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "siteaudit_audits_completed_total",
			Help: "Total audit runs completed end to end.",
		},
	)
	AuditDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "siteaudit_audit_duration_seconds",
			Help:    "Wall-clock duration of a full audit run in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	StoreRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "siteaudit_store_retries_total",
			Help: "Total retried persistence gateway operations.",
		},
	)
)

func init() {
	prometheus.MustRegister(ProviderRequests)
	prometheus.MustRegister(AuditsCompleted)
	prometheus.MustRegister(AuditDuration)
	prometheus.MustRegister(StoreRetries)
}

// Expose serves the Prometheus endpoint on addr. Blocks; run in a goroutine.
func Expose(addr string) {
	slog.Info("Exposing Prometheus metrics", "address", addr)
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Failed to start Prometheus metrics server", "error", err)
	}
}
