package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds the Prometheus collectors for the sync engine.
type Service struct {
	syncRuns       *prometheus.CounterVec
	syncFailures   *prometheus.CounterVec
	syncDuration   *prometheus.HistogramVec
	recordsUpdated prometheus.Counter
	skippedMatches prometheus.Counter
	startupTime    prometheus.Gauge
}
