package provider

import "fmt"

// Snapshot is a structured view of the league as the scraper service last saw
// it, optionally bounded to rounds greater than or equal to a minimum round.
type Snapshot struct {
	Season         string
	Teams          []TeamEntry
	Matchdays      []Matchday
	TeamAverages   map[string]float64
	PlayerStats    []PlayerStat
	FutureSchedule []ScheduledMatch
	LatestMatches  []MatchDetail
}

// TeamEntry identifies a team within the snapshot's season.
type TeamEntry struct {
	Name     string
	Division string
}

// Matchday is one round of league matches. Date arrives as DD.MM.YYYY.
type Matchday struct {
	Round   int
	Date    string
	Matches []MatchResult
}

// MatchResult is the headline score of one league match.
type MatchResult struct {
	HomeTeam string
	AwayTeam string
	HomeSets int
	AwaySets int
	HomeLegs int
	AwayLegs int
}

// PlayerStat is the season summary for one player.
type PlayerStat struct {
	Name        string
	Team        string
	Average     float64
	SinglesWon  int
	SinglesLost int
	LegsWon     int
	LegsLost    int
}

// ScheduledMatch is an upcoming fixture.
type ScheduledMatch struct {
	Round    int
	Date     string
	HomeTeam string
	AwayTeam string
	Venue    string
}

// MatchDetail carries the per-game breakdown of one played match.
type MatchDetail struct {
	Round    int
	HomeTeam string
	AwayTeam string
	Singles  []SinglesGame
	Doubles  []DoublesGame
}

// SinglesGame is one singles game within a match. Checkouts are the finishing
// scores of won legs, already split into integers.
type SinglesGame struct {
	GameOrder     int
	HomePlayer    string
	AwayPlayer    string
	HomeLegs      int
	AwayLegs      int
	HomeAverage   float64
	AwayAverage   float64
	HomeCheckouts []int
	AwayCheckouts []int
}

// DoublesGame is one doubles game within a match.
type DoublesGame struct {
	GameOrder     int
	HomePlayers   [2]string
	AwayPlayers   [2]string
	HomeLegs      int
	AwayLegs      int
	HomeAverage   float64
	AwayAverage   float64
	HomeCheckouts []int
	AwayCheckouts []int
}

// TeamSpecials holds the per-team special stats collaborator payload:
// maximums (180s) and high finishes per player name.
type TeamSpecials struct {
	Team         string
	OneEighties  map[string]int
	HighFinishes map[string][]int
}

// FetchError reports an unreachable provider or a non-success status. The
// orchestrator treats it as fatal for the whole sync.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("provider fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// snapshotResponse mirrors the scraper service's JSON for a season snapshot.
type snapshotResponse struct {
	Season string `json:"season"`
	Teams  []struct {
		Name     string `json:"name"`
		Division string `json:"division"`
	} `json:"teams"`
	Matchdays []struct {
		Round   int    `json:"round"`
		Date    string `json:"date"`
		Matches []struct {
			HomeTeam string `json:"home_team"`
			AwayTeam string `json:"away_team"`
			HomeSets int    `json:"home_sets"`
			AwaySets int    `json:"away_sets"`
			HomeLegs int    `json:"home_legs"`
			AwayLegs int    `json:"away_legs"`
		} `json:"matches"`
	} `json:"matchdays"`
	TeamAverages map[string]float64 `json:"team_averages"`
	PlayerStats  []struct {
		Name        string  `json:"name"`
		Team        string  `json:"team"`
		Average     float64 `json:"average"`
		SinglesWon  int     `json:"singles_won"`
		SinglesLost int     `json:"singles_lost"`
		LegsWon     int     `json:"legs_won"`
		LegsLost    int     `json:"legs_lost"`
	} `json:"player_stats"`
	FutureSchedule []struct {
		Round    int    `json:"round"`
		Date     string `json:"date"`
		HomeTeam string `json:"home_team"`
		AwayTeam string `json:"away_team"`
		Venue    string `json:"venue"`
	} `json:"future_schedule"`
	LatestMatches []matchDetailResponse `json:"latest_matches"`
}

type matchDetailResponse struct {
	Round    int                `json:"round"`
	HomeTeam string             `json:"home_team"`
	AwayTeam string             `json:"away_team"`
	Singles  []gameResponse     `json:"singles"`
	Doubles  []pairGameResponse `json:"doubles"`
}

type gameResponse struct {
	GameOrder     int     `json:"game_order"`
	HomePlayer    string  `json:"home_player"`
	AwayPlayer    string  `json:"away_player"`
	HomeLegs      int     `json:"home_legs"`
	AwayLegs      int     `json:"away_legs"`
	HomeAverage   float64 `json:"home_average"`
	AwayAverage   float64 `json:"away_average"`
	HomeCheckouts []int   `json:"home_checkouts"`
	AwayCheckouts []int   `json:"away_checkouts"`
}

type pairGameResponse struct {
	GameOrder     int      `json:"game_order"`
	HomePlayers   []string `json:"home_players"`
	AwayPlayers   []string `json:"away_players"`
	HomeLegs      int      `json:"home_legs"`
	AwayLegs      int      `json:"away_legs"`
	HomeAverage   float64  `json:"home_average"`
	AwayAverage   float64  `json:"away_average"`
	HomeCheckouts []int    `json:"home_checkouts"`
	AwayCheckouts []int    `json:"away_checkouts"`
}

type teamSpecialsResponse struct {
	Team         string           `json:"team"`
	OneEighties  map[string]int   `json:"one_eighties"`
	HighFinishes map[string][]int `json:"high_finishes"`
}
