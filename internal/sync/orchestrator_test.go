package sync_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhagedorn/dartliga/internal/database"
	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/metrics"
	"github.com/jhagedorn/dartliga/internal/notifier"
	"github.com/jhagedorn/dartliga/internal/provider"
	syncer "github.com/jhagedorn/dartliga/internal/sync"
)

const testSeason = "2025/26"

type fixture struct {
	orchestrator *syncer.Orchestrator
	store        league.LeagueStore
	db           *sql.DB
	provider     *provider.MockClient
	notifier     *notifier.MockNotifier
	metrics      *metrics.MockCollector
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() {
		dbTeardown()
		db.Close()
	})

	f := &fixture{
		store:    league.New(db),
		db:       db,
		provider: provider.NewMockClient(),
		notifier: notifier.NewMockNotifier(),
		metrics:  metrics.NewMockCollector(),
	}
	f.orchestrator = syncer.New(f.store, f.provider, f.notifier, f.metrics, testSeason)
	return f
}

func testSnapshot() *provider.Snapshot {
	return &provider.Snapshot{
		Season: testSeason,
		Teams: []provider.TeamEntry{
			{Name: "Flying Arrows", Division: "Bezirksliga A"},
			{Name: "Oche Originals", Division: "Bezirksliga A"},
		},
		Matchdays: []provider.Matchday{
			{
				Round: 1,
				Date:  "07.09.2025",
				Matches: []provider.MatchResult{
					{HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", HomeSets: 5, AwaySets: 2, HomeLegs: 11, AwayLegs: 6},
				},
			},
			{
				Round: 2,
				Date:  "14.09.2025",
				Matches: []provider.MatchResult{
					{HomeTeam: "Oche Originals", AwayTeam: "Flying Arrows", HomeSets: 4, AwaySets: 3, HomeLegs: 9, AwayLegs: 8},
				},
			},
		},
		TeamAverages: map[string]float64{
			"Flying Arrows":  46.2,
			"Oche Originals": 43.8,
		},
		PlayerStats: []provider.PlayerStat{
			{Name: "Anna", Team: "Flying Arrows", Average: 51.7, SinglesWon: 2, SinglesLost: 0, LegsWon: 6, LegsLost: 1},
			{Name: "Ben", Team: "Oche Originals", Average: 44.0, SinglesWon: 1, SinglesLost: 1, LegsWon: 4, LegsLost: 4},
		},
		FutureSchedule: []provider.ScheduledMatch{
			{Round: 3, Date: "21.09.2025", HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", Venue: "Clubhouse"},
		},
		LatestMatches: []provider.MatchDetail{
			{
				Round:    2,
				HomeTeam: "Oche Originals",
				AwayTeam: "Flying Arrows",
				Singles: []provider.SinglesGame{
					{GameOrder: 1, HomePlayer: "Ben", AwayPlayer: "Anna", HomeLegs: 1, AwayLegs: 3, HomeAverage: 42.0, AwayAverage: 53.5, AwayCheckouts: []int{40}},
				},
				Doubles: []provider.DoublesGame{
					{GameOrder: 5, HomePlayers: [2]string{"Ben", "Dirk"}, AwayPlayers: [2]string{"Anna", "Clara"}, HomeLegs: 3, AwayLegs: 2},
				},
			},
		},
	}
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestFullSyncPersistsSnapshot(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return testSnapshot(), nil
	}
	f.provider.FetchTeamSpecialsFunc = func(ctx context.Context, season, team string) (*provider.TeamSpecials, error) {
		if team == "Flying Arrows" {
			return &provider.TeamSpecials{
				Team:         team,
				OneEighties:  map[string]int{"Anna": 2},
				HighFinishes: map[string][]int{"Anna": {120}},
			}, nil
		}
		return &provider.TeamSpecials{Team: team, OneEighties: map[string]int{}, HighFinishes: map[string][]int{}}, nil
	}

	result, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, syncer.ModeFull, result.Mode)
	assert.Equal(t, 2, result.MatchdaysSynced)
	assert.Greater(t, result.RecordsUpdated, 0)

	assert.Equal(t, 2, f.count(t, "teams"))
	assert.Equal(t, 2, f.count(t, "matchdays"))
	assert.Equal(t, 2, f.count(t, "matches"))
	assert.Equal(t, 2, f.count(t, "team_averages"))
	assert.Equal(t, 2, f.count(t, "player_statistics"))
	assert.Equal(t, 2, f.count(t, "players"))
	assert.Equal(t, 1, f.count(t, "schedule"))
	assert.Equal(t, 1, f.count(t, "singles_games"))
	assert.Equal(t, 1, f.count(t, "doubles_games"))
	assert.Equal(t, 2, f.count(t, "standings"))

	// Dates arrive as DD.MM.YYYY and are stored in ISO form.
	md, err := f.store.GetMatchday(1, testSeason)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-07", md.Date)

	// Specials were patched onto the statistics row.
	statistics, err := f.store.GetPlayerStatistics(testSeason)
	require.NoError(t, err)
	for _, ps := range statistics {
		if ps.PlayerName == "Anna" {
			assert.Equal(t, 2, ps.OneEighties)
			assert.Equal(t, []int{120}, ps.HighFinishes)
		}
	}

	// Standings derive from both rounds: Arrows 5+3=8, Originals 2+4=6.
	table, err := f.store.GetStandings(testSeason)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Flying Arrows", table[0].TeamName)
	assert.Equal(t, 8, table[0].Points)
	assert.Equal(t, 1, table[0].Position)

	logs, err := f.store.GetSyncLogs(testSeason, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "success", logs[0].Status)
	assert.Equal(t, syncer.ModeFull, logs[0].SyncType)
	assert.Equal(t, result.RecordsUpdated, logs[0].RecordsUpdated)

	summary, ok := f.notifier.Last()
	require.True(t, ok)
	assert.False(t, summary.Failed)
	assert.Equal(t, result.RecordsUpdated, summary.RecordsUpdated)

	assert.Equal(t, 1, f.metrics.SyncRuns[syncer.ModeFull])
	assert.Equal(t, result.RecordsUpdated, f.metrics.RecordsUpdated)
}

func TestIncrementalSyncFetchesBeyondFrontier(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		if minRound > 2 {
			// Nothing new beyond the stored frontier.
			return &provider.Snapshot{Season: season, TeamAverages: map[string]float64{}}, nil
		}
		return testSnapshot(), nil
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	matchesBefore := f.count(t, "matches")
	gamesBefore := f.count(t, "singles_games")

	result, err := f.orchestrator.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, syncer.ModeIncremental, result.Mode)
	assert.Equal(t, 0, result.MatchdaysSynced)

	// The stored frontier is round 2, so the incremental run asks for 3.
	require.Len(t, f.provider.FetchSnapshotCalls, 2)
	assert.Equal(t, 1, f.provider.FetchSnapshotCalls[0])
	assert.Equal(t, 3, f.provider.FetchSnapshotCalls[1])

	assert.Equal(t, matchesBefore, f.count(t, "matches"))
	assert.Equal(t, gamesBefore, f.count(t, "singles_games"))

	logs, err := f.store.GetSyncLogs(testSeason, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestIncrementalSyncDropsRoundsAtOrBelowFrontier(t *testing.T) {
	f := setup(t)

	// Seed the frontier at round 2.
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return testSnapshot(), nil
	}
	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	// A sloppy provider response repeats round 1 alongside new round 3.
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return &provider.Snapshot{
			Season: season,
			Teams: []provider.TeamEntry{
				{Name: "Flying Arrows"}, {Name: "Oche Originals"},
			},
			TeamAverages: map[string]float64{},
			Matchdays: []provider.Matchday{
				{Round: 1, Date: "01.01.2026", Matches: []provider.MatchResult{
					{HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", HomeSets: 7, AwaySets: 0},
				}},
				{Round: 3, Date: "28.09.2025", Matches: []provider.MatchResult{
					{HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", HomeSets: 4, AwaySets: 3, HomeLegs: 9, AwayLegs: 7},
				}},
			},
		}, nil
	}

	result, err := f.orchestrator.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchdaysSynced)

	// Round 1 keeps its original date and score.
	md, err := f.store.GetMatchday(1, testSeason)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-07", md.Date)
	require.Len(t, md.Matches, 1)
	assert.Equal(t, 5, md.Matches[0].HomeSets)

	round, err := f.store.HighestRound(testSeason)
	require.NoError(t, err)
	assert.Equal(t, 3, round)
}

func TestMatchDetailForUnknownRoundIsSkipped(t *testing.T) {
	f := setup(t)

	snapshot := testSnapshot()
	snapshot.LatestMatches = append(snapshot.LatestMatches,
		provider.MatchDetail{
			Round:    7,
			HomeTeam: "Flying Arrows",
			AwayTeam: "Oche Originals",
			Singles: []provider.SinglesGame{
				{GameOrder: 1, HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3},
			},
		},
		provider.MatchDetail{
			Round:    1,
			HomeTeam: "Flying Arrows",
			AwayTeam: "Oche Originals",
			Singles: []provider.SinglesGame{
				{GameOrder: 1, HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 0},
			},
		},
	)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return snapshot, nil
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	// The round-7 detail had no stored matchday and is skipped; the details
	// before and after it both land.
	assert.Equal(t, 2, f.count(t, "singles_games"))
	assert.Equal(t, 0, f.metrics.SkippedMatches)
}

func TestMatchDetailPersistFailureIsIsolated(t *testing.T) {
	f := setup(t)

	snapshot := &provider.Snapshot{
		Season: testSeason,
		Teams: []provider.TeamEntry{
			{Name: "Flying Arrows"}, {Name: "Oche Originals"},
			{Name: "Bullseye Brigade"}, {Name: "DC Dreifach Null"},
		},
		TeamAverages: map[string]float64{},
		Matchdays: []provider.Matchday{
			{Round: 1, Date: "07.09.2025", Matches: []provider.MatchResult{
				{HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", HomeSets: 5, AwaySets: 2},
				{HomeTeam: "Bullseye Brigade", AwayTeam: "DC Dreifach Null", HomeSets: 4, AwaySets: 3},
			}},
			{Round: 2, Date: "14.09.2025", Matches: []provider.MatchResult{
				{HomeTeam: "Oche Originals", AwayTeam: "Flying Arrows", HomeSets: 3, AwaySets: 4},
			}},
		},
		LatestMatches: []provider.MatchDetail{
			{Round: 1, HomeTeam: "Flying Arrows", AwayTeam: "Oche Originals", Singles: []provider.SinglesGame{
				{GameOrder: 1, HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 1},
			}},
			{Round: 1, HomeTeam: "Bullseye Brigade", AwayTeam: "DC Dreifach Null", Singles: []provider.SinglesGame{
				{GameOrder: 1, HomePlayer: "Poisoned Row", AwayPlayer: "Dirk", HomeLegs: 2, AwayLegs: 3},
			}},
			{Round: 2, HomeTeam: "Oche Originals", AwayTeam: "Flying Arrows", Singles: []provider.SinglesGame{
				{GameOrder: 1, HomePlayer: "Ben", AwayPlayer: "Anna", HomeLegs: 0, AwayLegs: 3},
			}},
		},
	}
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return snapshot, nil
	}

	// Make persisting the second detail's games fail at the database layer.
	_, err := f.db.Exec(`
		CREATE TRIGGER reject_marked_rows BEFORE INSERT ON singles_games
		WHEN NEW.home_player = 'Poisoned Row'
		BEGIN
			SELECT RAISE(ABORT, 'marked row rejected');
		END;
	`)
	require.NoError(t, err)

	result, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	// The failing detail is skipped and counted; its neighbors both land,
	// and the headline match results are untouched.
	assert.Equal(t, 2, f.count(t, "singles_games"))
	assert.Equal(t, 3, f.count(t, "matches"))
	assert.Equal(t, 1, f.metrics.SkippedMatches)

	var marked int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM singles_games WHERE home_player = 'Poisoned Row'`).Scan(&marked))
	assert.Equal(t, 0, marked)

	logs, err := f.store.GetSyncLogs(testSeason, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "success", logs[0].Status)
	assert.Equal(t, result.RecordsUpdated, logs[0].RecordsUpdated)
}

func TestTeamSpecialsFailureDoesNotFailSync(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return testSnapshot(), nil
	}
	f.provider.FetchTeamSpecialsFunc = func(ctx context.Context, season, team string) (*provider.TeamSpecials, error) {
		if team == "Oche Originals" {
			return nil, errors.New("specials page unavailable")
		}
		return &provider.TeamSpecials{
			Team:         team,
			OneEighties:  map[string]int{"Anna": 1},
			HighFinishes: map[string][]int{},
		}, nil
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, f.provider.FetchTeamSpecialsCalls, 2)

	statistics, err := f.store.GetPlayerStatistics(testSeason)
	require.NoError(t, err)
	for _, ps := range statistics {
		if ps.PlayerName == "Anna" {
			assert.Equal(t, 1, ps.OneEighties)
		}
	}
}

func TestSpecialsForUnknownPlayerAreIgnored(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return testSnapshot(), nil
	}
	f.provider.FetchTeamSpecialsFunc = func(ctx context.Context, season, team string) (*provider.TeamSpecials, error) {
		return &provider.TeamSpecials{
			Team:         team,
			OneEighties:  map[string]int{"No Such Player": 9},
			HighFinishes: map[string][]int{},
		}, nil
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count(t, "player_statistics"))
}

func TestProviderFailureWritesErrorLog(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return nil, &provider.FetchError{URL: "http://scraper/api/league/2025%2F26", StatusCode: 502}
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.Error(t, err)

	logs, err := f.store.GetSyncLogs(testSeason, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "error", logs[0].Status)
	assert.Contains(t, logs[0].ErrorMessage, "unexpected status 502")

	summary, ok := f.notifier.Last()
	require.True(t, ok)
	assert.True(t, summary.Failed)

	assert.Equal(t, 1, f.metrics.SyncFailures[syncer.ModeFull])

	// Nothing was persisted besides the audit row.
	assert.Equal(t, 0, f.count(t, "teams"))
}

func TestFullSyncTwiceIsIdempotent(t *testing.T) {
	f := setup(t)
	f.provider.FetchSnapshotFunc = func(ctx context.Context, season string, minRound int) (*provider.Snapshot, error) {
		return testSnapshot(), nil
	}

	_, err := f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)
	_, err = f.orchestrator.Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, f.count(t, "teams"))
	assert.Equal(t, 2, f.count(t, "matchdays"))
	assert.Equal(t, 2, f.count(t, "matches"))
	assert.Equal(t, 1, f.count(t, "singles_games"))
	assert.Equal(t, 1, f.count(t, "schedule"))
	assert.Equal(t, 2, f.count(t, "standings"))

	// Except the audit trail, which is append-only.
	assert.Equal(t, 2, f.count(t, "sync_logs"))
}
