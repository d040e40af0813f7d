package sync

import (
	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/metrics"
	"github.com/jhagedorn/dartliga/internal/notifier"
	"github.com/jhagedorn/dartliga/internal/provider"
)

// Mode names, also used as the sync_type column of the audit log.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// Result summarizes a completed sync run.
type Result struct {
	Mode            string `json:"mode"`
	RecordsUpdated  int    `json:"records_updated"`
	MatchdaysSynced int    `json:"matchdays_synced"`
}

// Orchestrator drives one sync run end to end: fetch, reconcile, derive,
// audit. It holds no run state between calls, but runs are not mutually
// excluded; overlapping syncs of the same season race on the store.
type Orchestrator struct {
	store    league.LeagueStore
	provider provider.Client
	notifier notifier.Notifier
	metrics  metrics.Collector
	season   string
}

// New creates an orchestrator for one season.
func New(store league.LeagueStore, client provider.Client, n notifier.Notifier, m metrics.Collector, season string) *Orchestrator {
	return &Orchestrator{
		store:    store,
		provider: client,
		notifier: n,
		metrics:  m,
		season:   season,
	}
}
