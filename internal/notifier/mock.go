package notifier

import "sync"

// MockNotifier records notifications for assertions in tests.
type MockNotifier struct {
	mu        sync.Mutex
	Summaries []SyncSummary
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifySyncResult(summary SyncSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries = append(m.Summaries, summary)
}

func (m *MockNotifier) Last() (SyncSummary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Summaries) == 0 {
		return SyncSummary{}, false
	}
	return m.Summaries[len(m.Summaries)-1], true
}
