package league

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when a referenced row does not exist. Callers that
// reconcile data arriving out of dependency order treat it as "skip for now".
var ErrNotFound = errors.New("league: not found")

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamRecord is one team row, scoped to a season.
type TeamRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Season    string `json:"season"`
	Division  string `json:"division"`
	UpdatedAt int64  `json:"-"`
}

// PlayerRecord is one roster entry, owned by exactly one team per season.
type PlayerRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TeamID    string  `json:"-"`
	Season    string  `json:"season"`
	Average   float64 `json:"average"`
	GamesWon  int     `json:"games_won"`
	GamesLost int     `json:"games_lost"`
}

// MatchdayRecord is one round with its matches embedded.
type MatchdayRecord struct {
	ID      string        `json:"id"`
	Round   int           `json:"round"`
	Season  string        `json:"season"`
	Date    string        `json:"date"`
	Matches []MatchRecord `json:"matches"`
}

// MatchRecord is the headline result of one league match. Round and Date are
// populated from the owning matchday on reads.
type MatchRecord struct {
	ID         string `json:"id"`
	MatchdayID string `json:"-"`
	HomeTeamID string `json:"-"`
	AwayTeamID string `json:"-"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeSets   int    `json:"home_sets"`
	AwaySets   int    `json:"away_sets"`
	HomeLegs   int    `json:"home_legs"`
	AwayLegs   int    `json:"away_legs"`
	Round      int    `json:"round,omitempty"`
	Date       string `json:"date,omitempty"`
}

// SinglesGameRecord is one singles game of a match. Checkouts round-trip
// to/from the comma-joined column via JoinCheckouts/ParseCheckouts.
type SinglesGameRecord struct {
	ID            string  `json:"id"`
	MatchID       string  `json:"-"`
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

// DoublesGameRecord is one doubles game of a match.
type DoublesGameRecord struct {
	ID            string    `json:"id"`
	MatchID       string    `json:"-"`
	GameOrder     int       `json:"game_order"`
	HomePlayers   [2]string `json:"home_players"`
	AwayPlayers   [2]string `json:"away_players"`
	HomeLegs      int       `json:"home_legs"`
	AwayLegs      int       `json:"away_legs"`
	HomeAverage   float64   `json:"home_average"`
	AwayAverage   float64   `json:"away_average"`
	HomeCheckouts []int     `json:"home_checkouts"`
	AwayCheckouts []int     `json:"away_checkouts"`
}

// MatchDetailRecord is a match with its full per-game breakdown, as served to
// the dashboard's latest-matches section.
type MatchDetailRecord struct {
	Round    int                 `json:"round"`
	Date     string              `json:"date"`
	HomeTeam string              `json:"home_team"`
	AwayTeam string              `json:"away_team"`
	HomeSets int                 `json:"home_sets"`
	AwaySets int                 `json:"away_sets"`
	Singles  []SinglesGameRecord `json:"singles"`
	Doubles  []DoublesGameRecord `json:"doubles"`
}

// PlayerStatisticRecord is the season summary for one player, overwritten
// wholesale each sync. OneEighties and HighFinishes are patched in afterwards
// from the per-team specials fetch.
type PlayerStatisticRecord struct {
	ID           string  `json:"id"`
	PlayerName   string  `json:"player_name"`
	TeamName     string  `json:"team_name"`
	Season       string  `json:"season"`
	Average      float64 `json:"average"`
	SinglesWon   int     `json:"singles_won"`
	SinglesLost  int     `json:"singles_lost"`
	LegsWon      int     `json:"legs_won"`
	LegsLost     int     `json:"legs_lost"`
	OneEighties  int     `json:"one_eighties"`
	HighFinishes []int   `json:"high_finishes"`
}

// ScheduleRecord is one upcoming fixture.
type ScheduleRecord struct {
	ID       string `json:"id"`
	Season   string `json:"season"`
	Round    int    `json:"round"`
	Date     string `json:"date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Venue    string `json:"venue"`
}

// StandingRecord is one derived league-table row. It is never authoritative;
// the whole table is replaced after every sync.
type StandingRecord struct {
	Season      string `json:"-"`
	TeamName    string `json:"team"`
	Position    int    `json:"position"`
	Played      int    `json:"played"`
	Points      int    `json:"points"`
	LegsFor     int    `json:"legs_for"`
	LegsAgainst int    `json:"legs_against"`
	LegDiff     int    `json:"leg_diff"`
}

// SyncLogRecord is one append-only audit row, written exactly once per sync
// attempt.
type SyncLogRecord struct {
	ID             string `json:"id"`
	SyncType       string `json:"sync_type"`
	Season         string `json:"season"`
	Status         string `json:"status"`
	RecordsUpdated int    `json:"records_updated"`
	ErrorMessage   string `json:"error_message,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

// TeamDetail is the single-team dashboard view.
type TeamDetail struct {
	Team     TeamRecord       `json:"team"`
	Roster   []PlayerRecord   `json:"roster"`
	Standing *StandingRecord  `json:"standing,omitempty"`
	Average  float64          `json:"average"`
	Matches  []MatchRecord    `json:"matches"`
	Schedule []ScheduleRecord `json:"schedule"`
}
