package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhagedorn/dartliga/internal/stats"
)

func singlesDay(round int, games ...stats.SinglesGame) stats.MatchdayGames {
	return stats.MatchdayGames{Round: round, Games: games}
}

func TestBestLegsRanksAscendingWithRepetitions(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1,
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeCheckouts: []int{40, 32}, AwayCheckouts: []int{32}},
			stats.SinglesGame{HomePlayer: "Clara", AwayPlayer: "Dirk", HomeCheckouts: []int{16}, AwayCheckouts: []int{24, 101}},
		),
	}

	entries := stats.BestLegs(days, 5)
	require.Len(t, entries, 5)

	checkouts := make([]int, 0, len(entries))
	for _, e := range entries {
		checkouts = append(checkouts, e.Checkout)
	}
	assert.Equal(t, []int{16, 24, 32, 32, 40}, checkouts)

	assert.Equal(t, "Clara", entries[0].Player)
	assert.Equal(t, "Dirk", entries[1].Player)
}

func TestBestLegsSamePlayerRepeatedCheckout(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeCheckouts: []int{20, 20}, AwayCheckouts: []int{50}}),
	}

	entries := stats.BestLegs(days, 5)
	require.Len(t, entries, 3)

	// Anna's double 20 finish takes two slots, each carrying the total count.
	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, 20, entries[0].Checkout)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "Anna", entries[1].Player)
	assert.Equal(t, 2, entries[1].Count)
	assert.Equal(t, "Ben", entries[2].Player)
}

func TestBestLegsExcludesZeroCheckouts(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeCheckouts: []int{0, 0}, AwayCheckouts: []int{60}}),
	}

	entries := stats.BestLegs(days, 5)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ben", entries[0].Player)
}

func TestWeeklyAverageWinsFirstStrictlyGreaterWins(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1,
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeAverage: 60, AwayAverage: 55},
			stats.SinglesGame{HomePlayer: "Clara", AwayPlayer: "Dirk", HomeAverage: 60, AwayAverage: 40},
		),
		singlesDay(2,
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Clara", HomeAverage: 70, AwayAverage: 50},
		),
	}

	entries := stats.WeeklyAverageWins(days, 5)
	require.Len(t, entries, 1)

	// Clara ties Anna's 60 on day one but does not exceed it; Anna takes
	// both matchdays.
	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, 2, entries[0].Wins)
}

func TestHighestMatchdayAveragesMeansPerDay(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(3,
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeAverage: 45, AwayAverage: 30},
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Clara", HomeAverage: 55, AwayAverage: 35},
		),
	}

	entries := stats.HighestMatchdayAverages(days, 5)
	require.Len(t, entries, 3)

	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, 3, entries[0].Round)
	assert.InDelta(t, 50.0, entries[0].Average, 0.0001)
}

func TestHighestMatchdayAveragesAllowsRepeatPlayers(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeAverage: 80, AwayAverage: 20}),
		singlesDay(2, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeAverage: 75, AwayAverage: 25}),
	}

	entries := stats.HighestMatchdayAverages(days, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, "Anna", entries[1].Player)
}

func TestWinningStreaksResetOnLoss(t *testing.T) {
	// Anna: W W L W W W across six rounds.
	results := []struct {
		home, away int
	}{
		{3, 1}, {3, 2}, {1, 3}, {3, 0}, {3, 1}, {3, 2},
	}
	var days []stats.MatchdayGames
	for i, r := range results {
		days = append(days, singlesDay(i+1,
			stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: r.home, AwayLegs: r.away},
		))
	}

	entries := stats.WinningStreaks(days, 5)
	require.Len(t, entries, 1)
	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, 3, entries[0].Streak)
}

func TestWinningStreaksDrawResets(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(1, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 1}),
		singlesDay(2, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 2, AwayLegs: 2}),
		singlesDay(3, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 0}),
	}

	entries := stats.WinningStreaks(days, 5)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Streak)
}

func TestWinningStreaksUnsortedRounds(t *testing.T) {
	days := []stats.MatchdayGames{
		singlesDay(2, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 0}),
		singlesDay(1, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 3, AwayLegs: 1}),
		singlesDay(3, stats.SinglesGame{HomePlayer: "Anna", AwayPlayer: "Ben", HomeLegs: 0, AwayLegs: 3}),
	}

	entries := stats.WinningStreaks(days, 5)
	require.Len(t, entries, 2)
	assert.Equal(t, "Anna", entries[0].Player)
	assert.Equal(t, 2, entries[0].Streak)
	assert.Equal(t, "Ben", entries[1].Player)
	assert.Equal(t, 1, entries[1].Streak)
}

func TestLeaderboardsTruncateToLimit(t *testing.T) {
	// Ten matchdays with a distinct winner each, so every leaderboard has
	// more than five candidates.
	var days []stats.MatchdayGames
	for i := 0; i < 10; i++ {
		days = append(days, singlesDay(i+1, stats.SinglesGame{
			HomePlayer:    string(rune('A' + i)),
			AwayPlayer:    string(rune('K' + i)),
			HomeLegs:      3,
			AwayLegs:      0,
			HomeAverage:   float64(40 + i),
			AwayAverage:   float64(30 + i),
			HomeCheckouts: []int{40 + i},
		}))
	}

	assert.Len(t, stats.BestLegs(days, 5), 5)
	assert.Len(t, stats.WeeklyAverageWins(days, 5), 5)
	assert.Len(t, stats.HighestMatchdayAverages(days, 5), 5)
	assert.Len(t, stats.WinningStreaks(days, 5), 5)
}
