// Package stats derives the dashboard leaderboards from per-game singles
// records. All four derivations are pure functions over already-fetched match
// data; they are recomputed wholesale on every request rather than maintained
// incrementally.
package stats

import "sort"

// DefaultLimit is the leaderboard length the dashboard shows.
const DefaultLimit = 5

// BestLegs ranks the lowest checkouts of the season. Every finish occupies
// its own slot, so a checkout hit twice appears twice; Count still carries
// the season total for display. Checkouts of zero are excluded.
func BestLegs(days []MatchdayGames, limit int) []CheckoutEntry {
	type key struct {
		player   string
		checkout int
	}
	counts := make(map[key]int)
	var finishes []key

	record := func(player string, checkouts []int) {
		for _, c := range checkouts {
			if c <= 0 {
				continue
			}
			k := key{player: player, checkout: c}
			counts[k]++
			finishes = append(finishes, k)
		}
	}

	for _, day := range days {
		for _, g := range day.Games {
			record(g.HomePlayer, g.HomeCheckouts)
			record(g.AwayPlayer, g.AwayCheckouts)
		}
	}

	sort.SliceStable(finishes, func(i, j int) bool {
		if finishes[i].checkout != finishes[j].checkout {
			return finishes[i].checkout < finishes[j].checkout
		}
		return finishes[i].player < finishes[j].player
	})

	if len(finishes) > limit {
		finishes = finishes[:limit]
	}
	entries := make([]CheckoutEntry, 0, len(finishes))
	for _, k := range finishes {
		entries = append(entries, CheckoutEntry{
			Player:   k.player,
			Checkout: k.checkout,
			Count:    counts[k],
		})
	}
	return entries
}

// WeeklyAverageWins awards one win per matchday to the player with the
// strictly highest singles average of that round. A later equal average does
// not take the win away from whoever reached it first.
func WeeklyAverageWins(days []MatchdayGames, limit int) []WeeklyWinEntry {
	wins := make(map[string]int)
	var order []string

	for _, day := range days {
		var (
			bestPlayer  string
			bestAverage float64
		)
		consider := func(player string, average float64) {
			if player == "" {
				return
			}
			if bestPlayer == "" || average > bestAverage {
				bestPlayer = player
				bestAverage = average
			}
		}
		for _, g := range day.Games {
			consider(g.HomePlayer, g.HomeAverage)
			consider(g.AwayPlayer, g.AwayAverage)
		}
		if bestPlayer == "" {
			continue
		}
		if _, seen := wins[bestPlayer]; !seen {
			order = append(order, bestPlayer)
		}
		wins[bestPlayer]++
	}

	entries := make([]WeeklyWinEntry, 0, len(order))
	for _, player := range order {
		entries = append(entries, WeeklyWinEntry{Player: player, Wins: wins[player]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Wins > entries[j].Wins
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// HighestMatchdayAverages ranks each player's mean average over all their
// singles games of a single matchday. The same player may appear for several
// matchdays; that is intentional.
func HighestMatchdayAverages(days []MatchdayGames, limit int) []MatchdayAverageEntry {
	var entries []MatchdayAverageEntry

	for _, day := range days {
		sums := make(map[string]float64)
		games := make(map[string]int)
		var order []string

		record := func(player string, average float64) {
			if player == "" {
				return
			}
			if _, seen := sums[player]; !seen {
				order = append(order, player)
			}
			sums[player] += average
			games[player]++
		}
		for _, g := range day.Games {
			record(g.HomePlayer, g.HomeAverage)
			record(g.AwayPlayer, g.AwayAverage)
		}
		for _, player := range order {
			entries = append(entries, MatchdayAverageEntry{
				Player:  player,
				Round:   day.Round,
				Average: sums[player] / float64(games[player]),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Average > entries[j].Average
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// WinningStreaks tracks consecutive singles wins per player across matchdays
// in ascending round order. A loss or a drawn game resets the running streak;
// players who never won are excluded from the ranking.
func WinningStreaks(days []MatchdayGames, limit int) []StreakEntry {
	sorted := make([]MatchdayGames, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Round < sorted[j].Round
	})

	current := make(map[string]int)
	max := make(map[string]int)
	var order []string

	record := func(player string, won bool) {
		if player == "" {
			return
		}
		if _, seen := max[player]; !seen {
			order = append(order, player)
			max[player] = 0
		}
		if won {
			current[player]++
			if current[player] > max[player] {
				max[player] = current[player]
			}
		} else {
			current[player] = 0
		}
	}

	for _, day := range sorted {
		for _, g := range day.Games {
			record(g.HomePlayer, g.HomeLegs > g.AwayLegs)
			record(g.AwayPlayer, g.AwayLegs > g.HomeLegs)
		}
	}

	entries := make([]StreakEntry, 0, len(order))
	for _, player := range order {
		if max[player] == 0 {
			continue
		}
		entries = append(entries, StreakEntry{Player: player, Streak: max[player]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Streak > entries[j].Streak
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
