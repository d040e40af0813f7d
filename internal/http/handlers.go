package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/stats"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// SyncHandler triggers one sync run. The run is bounded by the configured
// sync timeout, not the request's own lifetime.
func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		full := r.URL.Query().Get("full") == "true"
		log.Info("Starting sync", "full", full, "season", s.Cfg.Season)

		ctx, cancel := context.WithTimeout(context.Background(), s.Cfg.SyncTimeout)
		defer cancel()

		result, err := s.Orchestrator.Run(ctx, full)
		if err != nil {
			resp := syncResponse{Status: "error"}
			// Detail only leaves the service outside production.
			if s.Cfg.Env != "production" {
				resp.Error = err.Error()
			}
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
		writeJSON(w, http.StatusOK, syncResponse{Status: "ok", Result: &result})
	}
}

// DashboardHandler serves the aggregate league view. Each section is loaded
// best effort: a failing section is logged and rendered empty so one bad
// query does not blank the whole dashboard.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		if season == "" {
			season = s.Cfg.Season
		}

		resp := dashboardResponse{
			Season:        season,
			Standings:     []league.StandingRecord{},
			Matchdays:     []league.MatchdayRecord{},
			TeamAverages:  map[string]float64{},
			PlayerStats:   []league.PlayerStatisticRecord{},
			Schedule:      []league.ScheduleRecord{},
			LatestMatches: []league.MatchDetailRecord{},
			Leaderboards: leaderboards{
				BestLegs:          []stats.CheckoutEntry{},
				WeeklyAverageWins: []stats.WeeklyWinEntry{},
				MatchdayAverages:  []stats.MatchdayAverageEntry{},
				WinningStreaks:    []stats.StreakEntry{},
			},
			SyncLogs: []league.SyncLogRecord{},
		}

		if table, err := s.Store.GetStandings(season); err != nil {
			log.Error("Failed to load standings for dashboard", "error", err)
		} else if table != nil {
			resp.Standings = table
		}

		if days, err := s.Store.GetMatchdays(season); err != nil {
			log.Error("Failed to load matchdays for dashboard", "error", err)
		} else if days != nil {
			resp.Matchdays = days
		}

		if averages, err := s.Store.GetTeamAverages(season); err != nil {
			log.Error("Failed to load team averages for dashboard", "error", err)
		} else if averages != nil {
			resp.TeamAverages = averages
		}

		if playerStats, err := s.Store.GetPlayerStatistics(season); err != nil {
			log.Error("Failed to load player statistics for dashboard", "error", err)
		} else if playerStats != nil {
			resp.PlayerStats = playerStats
		}

		if schedule, err := s.Store.GetSchedule(season); err != nil {
			log.Error("Failed to load schedule for dashboard", "error", err)
		} else if schedule != nil {
			resp.Schedule = schedule
		}

		if latest, err := s.Store.GetLatestMatchDetails(season, 9); err != nil {
			log.Error("Failed to load latest matches for dashboard", "error", err)
		} else if latest != nil {
			resp.LatestMatches = latest
		}

		if days, err := s.Store.GetSeasonGames(season); err != nil {
			log.Error("Failed to load season games for dashboard", "error", err)
		} else {
			resp.Leaderboards = leaderboards{
				BestLegs:          stats.BestLegs(days, stats.DefaultLimit),
				WeeklyAverageWins: stats.WeeklyAverageWins(days, stats.DefaultLimit),
				MatchdayAverages:  stats.HighestMatchdayAverages(days, stats.DefaultLimit),
				WinningStreaks:    stats.WinningStreaks(days, stats.DefaultLimit),
			}
		}

		if logs, err := s.Store.GetSyncLogs(season, 10); err != nil {
			log.Error("Failed to load sync logs for dashboard", "error", err)
		} else if logs != nil {
			resp.SyncLogs = logs
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// TeamHandler serves the single-team view.
func (s *Server) TeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing 'name' query parameter", http.StatusBadRequest)
			return
		}
		season := r.URL.Query().Get("season")
		if season == "" {
			season = s.Cfg.Season
		}

		detail, err := s.Store.GetTeamDetail(name, season)
		if err != nil {
			if err == league.ErrNotFound {
				http.Error(w, "team not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to load team detail", "team", name, "error", err)
			http.Error(w, "failed to load team", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

// SyncLogsHandler lists recent sync attempts.
func (s *Server) SyncLogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		if season == "" {
			season = s.Cfg.Season
		}
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			} else {
				log.Warn("Invalid 'limit' parameter provided, using default", "limit_param", raw)
			}
		}

		logs, err := s.Store.GetSyncLogs(season, limit)
		if err != nil {
			log.Error("Failed to load sync logs", "error", err)
			http.Error(w, "failed to load sync logs", http.StatusInternalServerError)
			return
		}
		if logs == nil {
			logs = []league.SyncLogRecord{}
		}
		writeJSON(w, http.StatusOK, logs)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
