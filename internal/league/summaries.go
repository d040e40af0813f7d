package league

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ReplaceTeamAverage overwrites a team's season average.
func (s *store) ReplaceTeamAverage(teamID string, average float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO team_averages (team_id, average)
		VALUES (?, ?)
		ON CONFLICT(team_id) DO UPDATE SET average = excluded.average;
	`, teamID, average)
	if err != nil {
		return fmt.Errorf("failed to replace team average: %w", err)
	}
	return nil
}

// GetTeamAverages returns a season's team averages keyed by team name.
func (s *store) GetTeamAverages(season string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.name, ta.average
		FROM team_averages ta
		JOIN teams t ON t.id = ta.team_id
		WHERE t.season = ?
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query team averages: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var name string
		var avg float64
		if err := rows.Scan(&name, &avg); err != nil {
			log.Error("Failed to scan team average row", "error", err)
			continue
		}
		averages[name] = avg
	}
	return averages, rows.Err()
}

// UpsertPlayerStatistic overwrites a player's season summary keyed on
// (player_name, season). Specials columns are preserved so the separate
// specials pass cannot be undone by a later summary write.
func (s *store) UpsertPlayerStatistic(ps PlayerStatisticRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO player_statistics (id, player_name, team_name, season,
			average, singles_won, singles_lost, legs_won, legs_lost, one_eighties, high_finishes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_name, season) DO UPDATE SET
			team_name = excluded.team_name,
			average = excluded.average,
			singles_won = excluded.singles_won,
			singles_lost = excluded.singles_lost,
			legs_won = excluded.legs_won,
			legs_lost = excluded.legs_lost;
	`, uuid.New().String(), ps.PlayerName, ps.TeamName, ps.Season,
		ps.Average, ps.SinglesWon, ps.SinglesLost, ps.LegsWon, ps.LegsLost,
		ps.OneEighties, JoinCheckouts(ps.HighFinishes))
	if err != nil {
		return fmt.Errorf("failed to upsert player statistic for %q: %w", ps.PlayerName, err)
	}
	return nil
}

// UpdatePlayerSpecials patches a player's 180 count and high finishes onto an
// existing statistics row. Returns ErrNotFound when no row exists, which the
// sync treats as a provider naming mismatch rather than a failure.
func (s *store) UpdatePlayerSpecials(season, playerName string, oneEighties int, highFinishes []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE player_statistics SET one_eighties = ?, high_finishes = ?
		WHERE season = ? AND player_name = ?
	`, oneEighties, JoinCheckouts(highFinishes), season, playerName)
	if err != nil {
		return fmt.Errorf("failed to update specials for %q: %w", playerName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check specials update for %q: %w", playerName, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPlayerStatistics lists a season's player summaries, best average first.
func (s *store) GetPlayerStatistics(season string) ([]PlayerStatisticRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_name, team_name, season, average,
		       singles_won, singles_lost, legs_won, legs_lost, one_eighties, high_finishes
		FROM player_statistics WHERE season = ? ORDER BY average DESC, player_name
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query player statistics: %w", err)
	}
	defer rows.Close()

	var statistics []PlayerStatisticRecord
	for rows.Next() {
		var ps PlayerStatisticRecord
		var highFinishes sql.NullString
		if err := rows.Scan(&ps.ID, &ps.PlayerName, &ps.TeamName, &ps.Season, &ps.Average,
			&ps.SinglesWon, &ps.SinglesLost, &ps.LegsWon, &ps.LegsLost, &ps.OneEighties, &highFinishes); err != nil {
			log.Error("Failed to scan player statistic row", "error", err)
			continue
		}
		ps.HighFinishes = ParseCheckouts(highFinishes.String)
		statistics = append(statistics, ps)
	}
	return statistics, rows.Err()
}

// UpsertScheduleEntry inserts or updates an upcoming fixture keyed on
// (season, round, home, away).
func (s *store) UpsertScheduleEntry(e ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO schedule (id, season, round, date, home_team, away_team, venue)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(season, round, home_team, away_team) DO UPDATE SET
			date = excluded.date,
			venue = excluded.venue;
	`, uuid.New().String(), e.Season, e.Round, e.Date, e.HomeTeam, e.AwayTeam, e.Venue)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule entry: %w", err)
	}
	return nil
}

// GetSchedule lists a season's upcoming fixtures in round order.
func (s *store) GetSchedule(season string) ([]ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, season, round, date, home_team, away_team, venue
		FROM schedule WHERE season = ? ORDER BY round, home_team
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	var entries []ScheduleRecord
	for rows.Next() {
		var e ScheduleRecord
		var date, venue sql.NullString
		if err := rows.Scan(&e.ID, &e.Season, &e.Round, &date, &e.HomeTeam, &e.AwayTeam, &venue); err != nil {
			log.Error("Failed to scan schedule row", "error", err)
			continue
		}
		e.Date = date.String
		e.Venue = venue.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceStandings swaps a season's league table for a freshly derived one in
// a single transaction.
func (s *store) ReplaceStandings(season string, standings []StandingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM standings WHERE season = ?`, season); err != nil {
		return fmt.Errorf("failed to clear standings: %w", err)
	}
	for _, row := range standings {
		_, err := tx.Exec(`
			INSERT INTO standings (id, season, team_name, position, played, points, legs_for, legs_against, leg_diff)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), season, row.TeamName, row.Position, row.Played, row.Points,
			row.LegsFor, row.LegsAgainst, row.LegDiff)
		if err != nil {
			return fmt.Errorf("failed to insert standing for %q: %w", row.TeamName, err)
		}
	}
	return tx.Commit()
}

// GetStandings lists a season's league table in position order.
func (s *store) GetStandings(season string) ([]StandingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT season, team_name, position, played, points, legs_for, legs_against, leg_diff
		FROM standings WHERE season = ? ORDER BY position
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var table []StandingRecord
	for rows.Next() {
		var row StandingRecord
		if err := rows.Scan(&row.Season, &row.TeamName, &row.Position, &row.Played, &row.Points,
			&row.LegsFor, &row.LegsAgainst, &row.LegDiff); err != nil {
			log.Error("Failed to scan standing row", "error", err)
			continue
		}
		table = append(table, row)
	}
	return table, rows.Err()
}

// GetTeamDetail assembles the single-team dashboard view.
func (s *store) GetTeamDetail(name, season string) (*TeamDetail, error) {
	team, err := s.GetTeam(name, season)
	if err != nil {
		return nil, err
	}

	detail := &TeamDetail{Team: *team}

	roster, err := s.GetRoster(team.ID)
	if err != nil {
		return nil, err
	}
	detail.Roster = roster

	table, err := s.GetStandings(season)
	if err != nil {
		return nil, err
	}
	for i := range table {
		if table[i].TeamName == name {
			detail.Standing = &table[i]
			break
		}
	}

	averages, err := s.GetTeamAverages(season)
	if err != nil {
		return nil, err
	}
	detail.Average = averages[name]

	days, err := s.GetMatchdays(season)
	if err != nil {
		return nil, err
	}
	for _, md := range days {
		for _, m := range md.Matches {
			if m.HomeTeam == name || m.AwayTeam == name {
				detail.Matches = append(detail.Matches, m)
			}
		}
	}

	schedule, err := s.GetSchedule(season)
	if err != nil {
		return nil, err
	}
	for _, e := range schedule {
		if e.HomeTeam == name || e.AwayTeam == name {
			detail.Schedule = append(detail.Schedule, e)
		}
	}
	return detail, nil
}
