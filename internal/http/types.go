package http

import (
	"net/http"

	"github.com/jhagedorn/dartliga/internal/config"
	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/metrics"
	"github.com/jhagedorn/dartliga/internal/stats"
	syncer "github.com/jhagedorn/dartliga/internal/sync"
)

type Server struct {
	Store          league.LeagueStore
	Metrics        metrics.Collector
	MetricsHandler http.Handler
	Cfg            config.Config
	Orchestrator   *syncer.Orchestrator
	Router         *http.ServeMux
}

// syncResponse is the JSON body returned by the sync trigger endpoint.
type syncResponse struct {
	Status string         `json:"status"`
	Result *syncer.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// dashboardResponse aggregates everything the league dashboard renders in one
// response. Sections the store cannot serve arrive empty, never as an error.
type dashboardResponse struct {
	Season        string                         `json:"season"`
	Standings     []league.StandingRecord        `json:"standings"`
	Matchdays     []league.MatchdayRecord        `json:"matchdays"`
	TeamAverages  map[string]float64             `json:"team_averages"`
	PlayerStats   []league.PlayerStatisticRecord `json:"player_stats"`
	Schedule      []league.ScheduleRecord        `json:"schedule"`
	LatestMatches []league.MatchDetailRecord     `json:"latest_matches"`
	Leaderboards  leaderboards                   `json:"leaderboards"`
	SyncLogs      []league.SyncLogRecord         `json:"sync_logs"`
}

type leaderboards struct {
	BestLegs          []stats.CheckoutEntry        `json:"best_legs"`
	WeeklyAverageWins []stats.WeeklyWinEntry       `json:"weekly_average_wins"`
	MatchdayAverages  []stats.MatchdayAverageEntry `json:"highest_matchday_averages"`
	WinningStreaks    []stats.StreakEntry          `json:"winning_streaks"`
}
