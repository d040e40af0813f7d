package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewService registers the engine's collectors against the given registerer,
// defaulting to the global one.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 && registerer[0] != nil {
		reg = registerer[0]
	}

	s := &Service{
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dartliga_sync_runs_total",
			Help: "Number of sync runs attempted, by mode.",
		}, []string{"mode"}),
		syncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dartliga_sync_failures_total",
			Help: "Number of sync runs that ended in error, by mode.",
		}, []string{"mode"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dartliga_sync_duration_seconds",
			Help:    "Wall clock duration of sync runs, by mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		recordsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dartliga_records_updated_total",
			Help: "Number of store records written by syncs.",
		}),
		skippedMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dartliga_skipped_matches_total",
			Help: "Number of match details skipped because persisting them failed.",
		}),
		startupTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dartliga_startup_timestamp_seconds",
			Help: "Unix timestamp of the last service start.",
		}),
	}

	reg.MustRegister(s.syncRuns, s.syncFailures, s.syncDuration, s.recordsUpdated, s.skippedMatches, s.startupTime)
	return s
}

// NewMetricsHandler returns the Prometheus scrape handler for the given
// gatherer, defaulting to the global one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	g := prometheus.DefaultGatherer
	if len(gatherer) > 0 && gatherer[0] != nil {
		g = gatherer[0]
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (s *Service) IncSyncRuns(mode string) {
	s.syncRuns.WithLabelValues(mode).Inc()
}

func (s *Service) IncSyncFailures(mode string) {
	s.syncFailures.WithLabelValues(mode).Inc()
}

func (s *Service) ObserveSyncDuration(mode string, d time.Duration) {
	s.syncDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (s *Service) AddRecordsUpdated(n int) {
	s.recordsUpdated.Add(float64(n))
}

func (s *Service) IncSkippedMatches() {
	s.skippedMatches.Inc()
}

func (s *Service) SetStartupTime(t time.Time) {
	s.startupTime.Set(float64(t.Unix()))
}
