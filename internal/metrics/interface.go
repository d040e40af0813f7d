package metrics

import "time"

// Collector defines the metrics recorded by the sync engine.
type Collector interface {
	IncSyncRuns(mode string)
	IncSyncFailures(mode string)
	ObserveSyncDuration(mode string, d time.Duration)
	AddRecordsUpdated(n int)
	IncSkippedMatches()
	SetStartupTime(t time.Time)
}
