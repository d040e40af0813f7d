package provider

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	FetchSnapshotFunc     func(ctx context.Context, season string, minRound int) (*Snapshot, error)
	FetchTeamSpecialsFunc func(ctx context.Context, season, team string) (*TeamSpecials, error)

	// Call records
	FetchSnapshotCalls     []int
	FetchTeamSpecialsCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchSnapshotCalls = nil
	m.FetchTeamSpecialsCalls = nil
}

func (m *MockClient) FetchSnapshot(ctx context.Context, season string, minRound int) (*Snapshot, error) {
	m.mu.Lock()
	m.FetchSnapshotCalls = append(m.FetchSnapshotCalls, minRound)
	fn := m.FetchSnapshotFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, season, minRound)
	}
	return &Snapshot{Season: season, TeamAverages: map[string]float64{}}, nil
}

func (m *MockClient) FetchTeamSpecials(ctx context.Context, season, team string) (*TeamSpecials, error) {
	m.mu.Lock()
	m.FetchTeamSpecialsCalls = append(m.FetchTeamSpecialsCalls, team)
	fn := m.FetchTeamSpecialsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, season, team)
	}
	return &TeamSpecials{Team: team, OneEighties: map[string]int{}, HighFinishes: map[string][]int{}}, nil
}
