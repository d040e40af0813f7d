package provider

import "context"

// Client defines the interface for talking to the league scraper service.
// This allows for mock implementations to be used in tests.
type Client interface {
	// FetchSnapshot returns the season snapshot. A minRound greater than zero
	// asks the provider for rounds >= minRound only; the provider may ignore
	// the filter, so callers must not rely on it.
	FetchSnapshot(ctx context.Context, season string, minRound int) (*Snapshot, error)
	// FetchTeamSpecials returns 180s and high finishes for one team.
	FetchTeamSpecials(ctx context.Context, season, team string) (*TeamSpecials, error)
}
