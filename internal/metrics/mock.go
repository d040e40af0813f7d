package metrics

import (
	"sync"
	"time"
)

// MockCollector records metric calls for assertions in tests.
type MockCollector struct {
	mu sync.Mutex

	SyncRuns       map[string]int
	SyncFailures   map[string]int
	Durations      map[string][]time.Duration
	RecordsUpdated int
	SkippedMatches int
	StartupTimes   []time.Time
}

func NewMockCollector() *MockCollector {
	return &MockCollector{
		SyncRuns:     make(map[string]int),
		SyncFailures: make(map[string]int),
		Durations:    make(map[string][]time.Duration),
	}
}

func (m *MockCollector) IncSyncRuns(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncRuns[mode]++
}

func (m *MockCollector) IncSyncFailures(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncFailures[mode]++
}

func (m *MockCollector) ObserveSyncDuration(mode string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations[mode] = append(m.Durations[mode], d)
}

func (m *MockCollector) AddRecordsUpdated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsUpdated += n
}

func (m *MockCollector) IncSkippedMatches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SkippedMatches++
}

func (m *MockCollector) SetStartupTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, t)
}
