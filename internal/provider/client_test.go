package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhagedorn/dartliga/internal/provider"
)

func TestFetchSnapshot(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"season": "2025/26",
			"teams": [{"name": "Flying Arrows", "division": "Bezirksliga A"}],
			"matchdays": [{
				"round": 3,
				"date": "14.09.2025",
				"matches": [{"home_team": "Flying Arrows", "away_team": "Oche Originals", "home_sets": 5, "away_sets": 2, "home_legs": 11, "away_legs": 6}]
			}],
			"team_averages": {"Flying Arrows": 46.2},
			"player_stats": [{"name": "Anna", "team": "Flying Arrows", "average": 51.7, "singles_won": 4, "singles_lost": 1, "legs_won": 9, "legs_lost": 4}],
			"future_schedule": [{"round": 4, "date": "21.09.2025", "home_team": "Oche Originals", "away_team": "Flying Arrows", "venue": "Clubhouse"}],
			"latest_matches": [{
				"round": 3,
				"home_team": "Flying Arrows",
				"away_team": "Oche Originals",
				"singles": [{"game_order": 1, "home_player": "Anna", "away_player": "Ben", "home_legs": 3, "away_legs": 1, "home_average": 52.1, "away_average": 44.0, "home_checkouts": [40, 36]}],
				"doubles": [{"game_order": 5, "home_players": ["Anna", "Clara"], "away_players": ["Ben", "Dirk"], "home_legs": 3, "away_legs": 2}]
			}]
		}`))
	}))
	defer srv.Close()

	client := provider.NewClient(srv.URL)
	snapshot, err := client.FetchSnapshot(context.Background(), "2025/26", 3)
	require.NoError(t, err)

	assert.Equal(t, "/api/league/2025%2F26", gotPath)
	assert.Equal(t, "min_round=3", gotQuery)

	require.Len(t, snapshot.Teams, 1)
	assert.Equal(t, "Flying Arrows", snapshot.Teams[0].Name)

	require.Len(t, snapshot.Matchdays, 1)
	assert.Equal(t, 3, snapshot.Matchdays[0].Round)
	assert.Equal(t, "14.09.2025", snapshot.Matchdays[0].Date)
	require.Len(t, snapshot.Matchdays[0].Matches, 1)
	assert.Equal(t, 5, snapshot.Matchdays[0].Matches[0].HomeSets)

	assert.InDelta(t, 46.2, snapshot.TeamAverages["Flying Arrows"], 0.0001)
	require.Len(t, snapshot.PlayerStats, 1)
	require.Len(t, snapshot.FutureSchedule, 1)

	require.Len(t, snapshot.LatestMatches, 1)
	detail := snapshot.LatestMatches[0]
	require.Len(t, detail.Singles, 1)
	assert.Equal(t, []int{40, 36}, detail.Singles[0].HomeCheckouts)
	require.Len(t, detail.Doubles, 1)
	assert.Equal(t, [2]string{"Anna", "Clara"}, detail.Doubles[0].HomePlayers)
}

func TestFetchSnapshotOmitsMinRoundWhenZero(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"season": "2025/26"}`))
	}))
	defer srv.Close()

	client := provider.NewClient(srv.URL)
	snapshot, err := client.FetchSnapshot(context.Background(), "2025/26", 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
	assert.NotNil(t, snapshot.TeamAverages)
}

func TestFetchSnapshotNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := provider.NewClient(srv.URL)
	_, err := client.FetchSnapshot(context.Background(), "2025/26", 0)
	require.Error(t, err)

	var fetchErr *provider.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
}

func TestFetchSnapshotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := provider.NewClient(srv.URL)
	_, err := client.FetchSnapshot(context.Background(), "2025/26", 0)
	require.Error(t, err)

	var fetchErr *provider.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchTeamSpecials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/specials/2025%2F26/Flying%20Arrows", r.URL.EscapedPath())
		w.Write([]byte(`{"team": "Flying Arrows", "one_eighties": {"Anna": 2}, "high_finishes": {"Anna": [120, 101]}}`))
	}))
	defer srv.Close()

	client := provider.NewClient(srv.URL)
	specials, err := client.FetchTeamSpecials(context.Background(), "2025/26", "Flying Arrows")
	require.NoError(t, err)
	assert.Equal(t, 2, specials.OneEighties["Anna"])
	assert.Equal(t, []int{120, 101}, specials.HighFinishes["Anna"])
}

func TestFetchTeamSpecialsDefaultsEmptyMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"team": "Flying Arrows"}`))
	}))
	defer srv.Close()

	client := provider.NewClient(srv.URL)
	specials, err := client.FetchTeamSpecials(context.Background(), "2025/26", "Flying Arrows")
	require.NoError(t, err)
	assert.NotNil(t, specials.OneEighties)
	assert.NotNil(t, specials.HighFinishes)
}
