package sync

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jhagedorn/dartliga/internal/league"
	"github.com/jhagedorn/dartliga/internal/notifier"
	"github.com/jhagedorn/dartliga/internal/provider"
	"github.com/jhagedorn/dartliga/internal/standings"
)

// Run performs one sync attempt and always leaves exactly one audit row
// behind, success or failure. The context bounds the whole run; callers set
// the wall clock budget via context deadline.
func (o *Orchestrator) Run(ctx context.Context, full bool) (Result, error) {
	mode := ModeIncremental
	if full {
		mode = ModeFull
	}
	o.metrics.IncSyncRuns(mode)
	start := time.Now()

	result, err := o.run(ctx, mode, full)
	duration := time.Since(start)

	entry := league.SyncLogRecord{
		SyncType:       mode,
		Season:         o.season,
		Status:         "success",
		RecordsUpdated: result.RecordsUpdated,
	}
	if err != nil {
		entry.Status = "error"
		entry.ErrorMessage = err.Error()
		o.metrics.IncSyncFailures(mode)
	}
	if logErr := o.store.InsertSyncLog(entry); logErr != nil {
		log.Error("Failed to write sync log", "error", logErr)
	}

	o.metrics.ObserveSyncDuration(mode, duration)
	o.metrics.AddRecordsUpdated(result.RecordsUpdated)

	summary := notifier.SyncSummary{
		Season:          o.season,
		Mode:            mode,
		RecordsUpdated:  result.RecordsUpdated,
		MatchdaysSynced: result.MatchdaysSynced,
		Duration:        duration,
	}
	if err != nil {
		summary.Failed = true
		summary.Error = err.Error()
	}
	o.notifier.NotifySyncResult(summary)

	if err != nil {
		log.Error("Sync failed", "mode", mode, "season", o.season, "duration", duration, "error", err)
		return result, err
	}
	log.Info("Sync finished", "mode", mode, "season", o.season, "duration", duration,
		"recordsUpdated", result.RecordsUpdated, "matchdaysSynced", result.MatchdaysSynced)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, mode string, full bool) (Result, error) {
	result := Result{Mode: mode}

	frontier := 0
	if !full {
		highest, err := o.store.HighestRound(o.season)
		if err != nil {
			return result, err
		}
		frontier = highest
	}

	snapshot, err := o.provider.FetchSnapshot(ctx, o.season, frontier+1)
	if err != nil {
		return result, err
	}

	// The provider is trusted to honor min_round, but a stale or sloppy
	// response must not rewrite rounds we already hold. Filter again here.
	matchdays := snapshot.Matchdays
	if !full {
		filtered := matchdays[:0:0]
		for _, md := range matchdays {
			if md.Round > frontier {
				filtered = append(filtered, md)
				continue
			}
			log.Warn("Provider returned a round at or below the frontier, dropping it", "round", md.Round, "frontier", frontier)
		}
		matchdays = filtered
	}

	// Teams first; everything downstream resolves team identity against the
	// store, so a failure here aborts the run.
	for _, team := range snapshot.Teams {
		if _, err := o.store.UpsertTeam(team.Name, team.Division, o.season); err != nil {
			return result, err
		}
		result.RecordsUpdated++
	}

	for name, avg := range snapshot.TeamAverages {
		team, err := o.store.GetTeam(name, o.season)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				log.Warn("Team average for unknown team, skipping", "team", name)
				continue
			}
			return result, err
		}
		if err := o.store.ReplaceTeamAverage(team.ID, avg); err != nil {
			return result, err
		}
		result.RecordsUpdated++
	}

	for _, md := range matchdays {
		matchdayID, err := o.store.UpsertMatchday(md.Round, o.season, convertDate(md.Date))
		if err != nil {
			return result, err
		}
		result.RecordsUpdated++
		result.MatchdaysSynced++

		for _, m := range md.Matches {
			home, err := o.resolveTeam(m.HomeTeam)
			if err != nil {
				return result, err
			}
			away, err := o.resolveTeam(m.AwayTeam)
			if err != nil {
				return result, err
			}
			if home == nil || away == nil {
				log.Warn("Match references an unknown team, skipping", "round", md.Round, "home", m.HomeTeam, "away", m.AwayTeam)
				continue
			}
			_, err = o.store.UpsertMatch(league.MatchRecord{
				MatchdayID: matchdayID,
				HomeTeamID: home.ID,
				AwayTeamID: away.ID,
				HomeTeam:   m.HomeTeam,
				AwayTeam:   m.AwayTeam,
				HomeSets:   m.HomeSets,
				AwaySets:   m.AwaySets,
				HomeLegs:   m.HomeLegs,
				AwayLegs:   m.AwayLegs,
			})
			if err != nil {
				return result, err
			}
			result.RecordsUpdated++
		}
	}

	for _, ps := range snapshot.PlayerStats {
		if err := o.store.UpsertPlayerStatistic(league.PlayerStatisticRecord{
			PlayerName:  ps.Name,
			TeamName:    ps.Team,
			Season:      o.season,
			Average:     ps.Average,
			SinglesWon:  ps.SinglesWon,
			SinglesLost: ps.SinglesLost,
			LegsWon:     ps.LegsWon,
			LegsLost:    ps.LegsLost,
		}); err != nil {
			return result, err
		}
		result.RecordsUpdated++

		team, err := o.resolveTeam(ps.Team)
		if err != nil {
			return result, err
		}
		if team == nil {
			log.Warn("Player statistic references an unknown team, skipping roster entry", "player", ps.Name, "team", ps.Team)
			continue
		}
		if err := o.store.UpsertPlayer(league.PlayerRecord{
			Name:      ps.Name,
			TeamID:    team.ID,
			Season:    o.season,
			Average:   ps.Average,
			GamesWon:  ps.SinglesWon,
			GamesLost: ps.SinglesLost,
		}); err != nil {
			return result, err
		}
		result.RecordsUpdated++
	}

	o.syncTeamSpecials(ctx, snapshot, &result)

	for _, e := range snapshot.FutureSchedule {
		if err := o.store.UpsertScheduleEntry(league.ScheduleRecord{
			Season:   o.season,
			Round:    e.Round,
			Date:     convertDate(e.Date),
			HomeTeam: e.HomeTeam,
			AwayTeam: e.AwayTeam,
			Venue:    e.Venue,
		}); err != nil {
			return result, err
		}
		result.RecordsUpdated++
	}

	for _, detail := range snapshot.LatestMatches {
		if err := o.syncMatchDetail(detail, &result); err != nil {
			log.Error("Failed to persist match detail, skipping", "round", detail.Round,
				"home", detail.HomeTeam, "away", detail.AwayTeam, "error", err)
			o.metrics.IncSkippedMatches()
		}
	}

	// Standings are derived over the full stored season, never just the
	// rounds this run touched.
	matches, err := o.store.GetSeasonMatches(o.season)
	if err != nil {
		return result, err
	}
	rows := standings.Calculate(matches)
	records := make([]league.StandingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, league.StandingRecord{
			Season:      o.season,
			TeamName:    row.Team,
			Position:    row.Position,
			Played:      row.Played,
			Points:      row.Points,
			LegsFor:     row.LegsFor,
			LegsAgainst: row.LegsAgainst,
			LegDiff:     row.LegDiff,
		})
	}
	if err := o.store.ReplaceStandings(o.season, records); err != nil {
		return result, err
	}
	result.RecordsUpdated += len(records)

	return result, nil
}

// resolveTeam looks a team up by name, mapping ErrNotFound to a nil record so
// callers can decide between skipping and failing.
func (o *Orchestrator) resolveTeam(name string) (*league.TeamRecord, error) {
	team, err := o.store.GetTeam(name, o.season)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// syncTeamSpecials fetches 180s and high finishes per team. Each team is
// isolated: a fetch or write failure is logged and the loop moves on.
func (o *Orchestrator) syncTeamSpecials(ctx context.Context, snapshot *provider.Snapshot, result *Result) {
	for _, team := range snapshot.Teams {
		specials, err := o.provider.FetchTeamSpecials(ctx, o.season, team.Name)
		if err != nil {
			log.Error("Failed to fetch team specials, continuing", "team", team.Name, "error", err)
			continue
		}
		for player, count := range specials.OneEighties {
			highFinishes := specials.HighFinishes[player]
			err := o.store.UpdatePlayerSpecials(o.season, player, count, highFinishes)
			if err != nil {
				if errors.Is(err, league.ErrNotFound) {
					// Name mismatch between the specials page and the
					// statistics table; nothing to patch.
					continue
				}
				log.Error("Failed to update player specials, continuing", "team", team.Name, "player", player, "error", err)
				continue
			}
			result.RecordsUpdated++
		}
		for player, highFinishes := range specials.HighFinishes {
			if _, seen := specials.OneEighties[player]; seen {
				continue
			}
			err := o.store.UpdatePlayerSpecials(o.season, player, 0, highFinishes)
			if err != nil {
				if errors.Is(err, league.ErrNotFound) {
					continue
				}
				log.Error("Failed to update player specials, continuing", "team", team.Name, "player", player, "error", err)
				continue
			}
			result.RecordsUpdated++
		}
	}
}

func (o *Orchestrator) syncMatchDetail(detail provider.MatchDetail, result *Result) error {
	matchday, err := o.store.GetMatchday(detail.Round, o.season)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			// Detail for a round we never stored, likely below an
			// incremental frontier on a fresh database.
			return nil
		}
		return err
	}

	home, err := o.resolveTeam(detail.HomeTeam)
	if err != nil {
		return err
	}
	away, err := o.resolveTeam(detail.AwayTeam)
	if err != nil {
		return err
	}
	if home == nil || away == nil {
		return nil
	}

	match, err := o.store.FindMatch(matchday.ID, home.ID, away.ID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return nil
		}
		return err
	}

	singles := make([]league.SinglesGameRecord, 0, len(detail.Singles))
	for _, g := range detail.Singles {
		singles = append(singles, league.SinglesGameRecord{
			MatchID:       match.ID,
			GameOrder:     g.GameOrder,
			HomePlayer:    g.HomePlayer,
			AwayPlayer:    g.AwayPlayer,
			HomeLegs:      g.HomeLegs,
			AwayLegs:      g.AwayLegs,
			HomeAverage:   g.HomeAverage,
			AwayAverage:   g.AwayAverage,
			HomeCheckouts: g.HomeCheckouts,
			AwayCheckouts: g.AwayCheckouts,
		})
	}
	doubles := make([]league.DoublesGameRecord, 0, len(detail.Doubles))
	for _, g := range detail.Doubles {
		doubles = append(doubles, league.DoublesGameRecord{
			MatchID:       match.ID,
			GameOrder:     g.GameOrder,
			HomePlayers:   g.HomePlayers,
			AwayPlayers:   g.AwayPlayers,
			HomeLegs:      g.HomeLegs,
			AwayLegs:      g.AwayLegs,
			HomeAverage:   g.HomeAverage,
			AwayAverage:   g.AwayAverage,
			HomeCheckouts: g.HomeCheckouts,
			AwayCheckouts: g.AwayCheckouts,
		})
	}

	if err := o.store.ReplaceMatchGames(match.ID, singles, doubles); err != nil {
		return err
	}
	result.RecordsUpdated += len(singles) + len(doubles)
	return nil
}

// convertDate turns the provider's DD.MM.YYYY dates into ISO YYYY-MM-DD.
// Unparsable input is stored as-is rather than lost.
func convertDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("02.01.2006", date)
	if err != nil {
		log.Warn("Could not parse provider date, storing verbatim", "date", date)
		return date
	}
	return t.Format("2006-01-02")
}
