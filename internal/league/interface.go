package league

import (
	"github.com/jhagedorn/dartliga/internal/standings"
	"github.com/jhagedorn/dartliga/internal/stats"
)

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	// Teams. UpsertTeam keeps at most one row per (name, season) even when
	// the underlying unique index is missing.
	UpsertTeam(name, division, season string) (TeamRecord, error)
	GetTeam(name, season string) (*TeamRecord, error)
	GetTeams(season string) ([]TeamRecord, error)

	// Roster
	UpsertPlayer(p PlayerRecord) error
	GetRoster(teamID string) ([]PlayerRecord, error)

	// Matchdays and matches
	UpsertMatchday(round int, season, date string) (string, error)
	GetMatchday(round int, season string) (*MatchdayRecord, error)
	UpsertMatch(m MatchRecord) (string, error)
	FindMatch(matchdayID, homeTeamID, awayTeamID string) (*MatchRecord, error)
	HighestRound(season string) (int, error)
	GetMatchdays(season string) ([]MatchdayRecord, error)

	// Per-game detail. Games are deleted and reinserted per match because
	// game order and scores can shift between scrapes.
	ReplaceMatchGames(matchID string, singles []SinglesGameRecord, doubles []DoublesGameRecord) error
	GetSeasonGames(season string) ([]stats.MatchdayGames, error)
	GetSeasonMatches(season string) ([]standings.Match, error)
	GetLatestMatchDetails(season string, limit int) ([]MatchDetailRecord, error)

	// Season summaries, overwritten wholesale each sync
	ReplaceTeamAverage(teamID string, average float64) error
	GetTeamAverages(season string) (map[string]float64, error)
	UpsertPlayerStatistic(ps PlayerStatisticRecord) error
	UpdatePlayerSpecials(season, playerName string, oneEighties int, highFinishes []int) error
	GetPlayerStatistics(season string) ([]PlayerStatisticRecord, error)

	// Schedule
	UpsertScheduleEntry(e ScheduleRecord) error
	GetSchedule(season string) ([]ScheduleRecord, error)

	// Derived standings
	ReplaceStandings(season string, rows []StandingRecord) error
	GetStandings(season string) ([]StandingRecord, error)

	// Team dashboard view
	GetTeamDetail(name, season string) (*TeamDetail, error)

	// Sync audit log
	InsertSyncLog(entry SyncLogRecord) error
	GetSyncLogs(season string, limit int) ([]SyncLogRecord, error)
}
