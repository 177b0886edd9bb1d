// Package metrics provides Prometheus metrics for feedcore.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuardRejectionsTotal counts destinations refused by the network guard.
	GuardRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "guard_rejections_total",
			Help:      "Total number of outbound requests refused by the private-network guard",
		},
		[]string{"reason"},
	)

	// UpstreamFetchTotal counts upstream fetches by purpose and outcome.
	UpstreamFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "upstream_fetch_total",
			Help:      "Total number of upstream fetches",
		},
		[]string{"purpose", "status"},
	)

	// RelayBytesTotal counts bytes relayed downstream.
	RelayBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "relay_bytes_total",
			Help:      "Total number of bytes relayed to clients",
		},
		[]string{"route"},
	)

	// RelayAbortsTotal counts relays stopped before completion.
	RelayAbortsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "relay_aborts_total",
			Help:      "Total number of relays aborted",
		},
		[]string{"route", "reason"},
	)

	// ThrottledTotal counts history writes refused by the rate limiter.
	ThrottledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "history_writes_throttled_total",
			Help:      "Total number of history writes refused by the rate limiter",
		},
	)

	// HistoryItemsTotal counts archived items by outcome.
	HistoryItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedcore",
			Name:      "history_items_total",
			Help:      "Total number of history items by outcome",
		},
		[]string{"outcome"},
	)

	// ArchiveRunDuration measures one archive pass over all feeds.
	ArchiveRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "feedcore",
			Name:      "archive_run_duration_seconds",
			Help:      "Duration of archive runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
)

// RecordGuardRejection records a refused destination.
func RecordGuardRejection(reason string) {
	GuardRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordUpstreamFetch records a completed upstream fetch.
func RecordUpstreamFetch(purpose, status string) {
	UpstreamFetchTotal.WithLabelValues(purpose, status).Inc()
}

// RecordRelay records bytes written for one relay and, when reason is
// non-empty, that it was aborted.
func RecordRelay(route string, written int64, reason string) {
	RelayBytesTotal.WithLabelValues(route).Add(float64(written))
	if reason != "" {
		RelayAbortsTotal.WithLabelValues(route, reason).Inc()
	}
}

// RecordThrottled records a throttled history write.
func RecordThrottled() {
	ThrottledTotal.Inc()
}

// RecordHistoryUpsert records the outcome of one upsert.
func RecordHistoryUpsert(added, expired, dropped, failed int) {
	HistoryItemsTotal.WithLabelValues("added").Add(float64(added))
	HistoryItemsTotal.WithLabelValues("expired").Add(float64(expired))
	HistoryItemsTotal.WithLabelValues("dropped").Add(float64(dropped))
	HistoryItemsTotal.WithLabelValues("failed").Add(float64(failed))
}

// RecordArchiveRun records the duration of an archive pass.
func RecordArchiveRun(seconds float64) {
	ArchiveRunDuration.Observe(seconds)
}
