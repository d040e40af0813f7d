package stats

// MatchdayGames groups the singles games of one round. Both the provider
// snapshot and the store can produce this shape, so the leaderboards come out
// identical no matter which side feeds them.
type MatchdayGames struct {
	Round int
	Games []SinglesGame
}

// SinglesGame is one singles leg battle between two named players.
type SinglesGame struct {
	HomePlayer    string
	AwayPlayer    string
	HomeLegs      int
	AwayLegs      int
	HomeAverage   float64
	AwayAverage   float64
	HomeCheckouts []int
	AwayCheckouts []int
}

// CheckoutEntry is one finish in the best-legs ranking. Count carries how
// often the player hit this exact checkout across the season.
type CheckoutEntry struct {
	Player   string `json:"player"`
	Checkout int    `json:"checkout"`
	Count    int    `json:"count"`
}

// WeeklyWinEntry counts how many matchdays a player posted the single best
// average of the week.
type WeeklyWinEntry struct {
	Player string `json:"player"`
	Wins   int    `json:"wins"`
}

// MatchdayAverageEntry is a player's mean average across all their singles
// games of one matchday.
type MatchdayAverageEntry struct {
	Player  string  `json:"player"`
	Round   int     `json:"round"`
	Average float64 `json:"average"`
}

// StreakEntry is a player's longest run of consecutive singles wins.
type StreakEntry struct {
	Player string `json:"player"`
	Streak int    `json:"streak"`
}
