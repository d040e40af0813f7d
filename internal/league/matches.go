package league

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jhagedorn/dartliga/internal/standings"
	"github.com/jhagedorn/dartliga/internal/stats"
)

// UpsertMatchday inserts or updates a matchday keyed on (round, season) and
// returns its id.
func (s *store) UpsertMatchday(round int, season, date string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO matchdays (id, round, season, date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(round, season) DO UPDATE SET date = excluded.date;
	`, uuid.New().String(), round, season, date)
	if err != nil {
		return "", fmt.Errorf("failed to upsert matchday %d: %w", round, err)
	}

	var id string
	if err := s.db.QueryRow(`SELECT id FROM matchdays WHERE round = ? AND season = ?`, round, season).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read matchday %d back: %w", round, err)
	}
	return id, nil
}

// GetMatchday looks up a matchday by round within a season, matches included.
func (s *store) GetMatchday(round int, season string) (*MatchdayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var md MatchdayRecord
	var date sql.NullString
	err := s.db.QueryRow(`SELECT id, round, season, date FROM matchdays WHERE round = ? AND season = ?`,
		round, season).Scan(&md.ID, &md.Round, &md.Season, &date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query matchday %d: %w", round, err)
	}
	md.Date = date.String

	matches, err := s.matchesForMatchday(md.ID, md.Round, md.Date)
	if err != nil {
		return nil, err
	}
	md.Matches = matches
	return &md, nil
}

func (s *store) matchesForMatchday(matchdayID string, round int, date string) ([]MatchRecord, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.matchday_id, m.home_team_id, m.away_team_id,
		       ht.name, at.name,
		       m.home_sets, m.away_sets, m.home_legs, m.away_legs
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE m.matchday_id = ?
		ORDER BY ht.name
	`, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(&m.ID, &m.MatchdayID, &m.HomeTeamID, &m.AwayTeamID,
			&m.HomeTeam, &m.AwayTeam,
			&m.HomeSets, &m.AwaySets, &m.HomeLegs, &m.AwayLegs); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		m.Round = round
		m.Date = date
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// UpsertMatch inserts or updates a match keyed on (matchday, home, away) and
// returns its id.
func (s *store) UpsertMatch(m MatchRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO matches (id, matchday_id, home_team_id, away_team_id, home_sets, away_sets, home_legs, away_legs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(matchday_id, home_team_id, away_team_id) DO UPDATE SET
			home_sets = excluded.home_sets,
			away_sets = excluded.away_sets,
			home_legs = excluded.home_legs,
			away_legs = excluded.away_legs;
	`, uuid.New().String(), m.MatchdayID, m.HomeTeamID, m.AwayTeamID, m.HomeSets, m.AwaySets, m.HomeLegs, m.AwayLegs)
	if err != nil {
		return "", fmt.Errorf("failed to upsert match %s vs %s: %w", m.HomeTeam, m.AwayTeam, err)
	}

	var id string
	if err := s.db.QueryRow(`SELECT id FROM matches WHERE matchday_id = ? AND home_team_id = ? AND away_team_id = ?`,
		m.MatchdayID, m.HomeTeamID, m.AwayTeamID).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read match back: %w", err)
	}
	return id, nil
}

// FindMatch looks up a match by its natural key.
func (s *store) FindMatch(matchdayID, homeTeamID, awayTeamID string) (*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m MatchRecord
	err := s.db.QueryRow(`
		SELECT id, matchday_id, home_team_id, away_team_id, home_sets, away_sets, home_legs, away_legs
		FROM matches WHERE matchday_id = ? AND home_team_id = ? AND away_team_id = ?
	`, matchdayID, homeTeamID, awayTeamID).Scan(&m.ID, &m.MatchdayID, &m.HomeTeamID, &m.AwayTeamID,
		&m.HomeSets, &m.AwaySets, &m.HomeLegs, &m.AwayLegs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	return &m, nil
}

// HighestRound returns the highest stored round of a season, 0 when no
// matchdays exist yet. Incremental syncs fetch strictly beyond this frontier.
func (s *store) HighestRound(season string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var round int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(round), 0) FROM matchdays WHERE season = ?`, season).Scan(&round); err != nil {
		return 0, fmt.Errorf("failed to query highest round: %w", err)
	}
	return round, nil
}

// GetMatchdays lists all matchdays of a season in round order, matches
// included.
func (s *store) GetMatchdays(season string) ([]MatchdayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, round, season, date FROM matchdays WHERE season = ? ORDER BY round`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchdays: %w", err)
	}
	defer rows.Close()

	var days []MatchdayRecord
	for rows.Next() {
		var md MatchdayRecord
		var date sql.NullString
		if err := rows.Scan(&md.ID, &md.Round, &md.Season, &date); err != nil {
			log.Error("Failed to scan matchday row", "error", err)
			continue
		}
		md.Date = date.String
		days = append(days, md)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range days {
		matches, err := s.matchesForMatchday(days[i].ID, days[i].Round, days[i].Date)
		if err != nil {
			return nil, err
		}
		days[i].Matches = matches
	}
	return days, nil
}

// ReplaceMatchGames wipes and reinserts a match's per-game detail in one
// transaction.
func (s *store) ReplaceMatchGames(matchID string, singles []SinglesGameRecord, doubles []DoublesGameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM singles_games WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("failed to clear singles games: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM doubles_games WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("failed to clear doubles games: %w", err)
	}

	for _, g := range singles {
		_, err := tx.Exec(`
			INSERT INTO singles_games (id, match_id, game_order, home_player, away_player,
				home_legs, away_legs, home_average, away_average, home_checkouts, away_checkouts)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), matchID, g.GameOrder, g.HomePlayer, g.AwayPlayer,
			g.HomeLegs, g.AwayLegs, g.HomeAverage, g.AwayAverage,
			JoinCheckouts(g.HomeCheckouts), JoinCheckouts(g.AwayCheckouts))
		if err != nil {
			return fmt.Errorf("failed to insert singles game %d: %w", g.GameOrder, err)
		}
	}
	for _, g := range doubles {
		_, err := tx.Exec(`
			INSERT INTO doubles_games (id, match_id, game_order,
				home_player_one, home_player_two, away_player_one, away_player_two,
				home_legs, away_legs, home_average, away_average, home_checkouts, away_checkouts)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), matchID, g.GameOrder,
			g.HomePlayers[0], g.HomePlayers[1], g.AwayPlayers[0], g.AwayPlayers[1],
			g.HomeLegs, g.AwayLegs, g.HomeAverage, g.AwayAverage,
			JoinCheckouts(g.HomeCheckouts), JoinCheckouts(g.AwayCheckouts))
		if err != nil {
			return fmt.Errorf("failed to insert doubles game %d: %w", g.GameOrder, err)
		}
	}
	return tx.Commit()
}

// GetSeasonGames loads every stored singles game of a season grouped by
// round, shaped for the leaderboard calculators.
func (s *store) GetSeasonGames(season string) ([]stats.MatchdayGames, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT md.round, sg.home_player, sg.away_player,
		       sg.home_legs, sg.away_legs, sg.home_average, sg.away_average,
		       sg.home_checkouts, sg.away_checkouts
		FROM singles_games sg
		JOIN matches m ON m.id = sg.match_id
		JOIN matchdays md ON md.id = m.matchday_id
		WHERE md.season = ?
		ORDER BY md.round, sg.game_order
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season games: %w", err)
	}
	defer rows.Close()

	byRound := make(map[int]*stats.MatchdayGames)
	var order []int
	for rows.Next() {
		var round int
		var g stats.SinglesGame
		var homeCheckouts, awayCheckouts sql.NullString
		if err := rows.Scan(&round, &g.HomePlayer, &g.AwayPlayer,
			&g.HomeLegs, &g.AwayLegs, &g.HomeAverage, &g.AwayAverage,
			&homeCheckouts, &awayCheckouts); err != nil {
			log.Error("Failed to scan singles game row", "error", err)
			continue
		}
		g.HomeCheckouts = ParseCheckouts(homeCheckouts.String)
		g.AwayCheckouts = ParseCheckouts(awayCheckouts.String)

		day, ok := byRound[round]
		if !ok {
			day = &stats.MatchdayGames{Round: round}
			byRound[round] = day
			order = append(order, round)
		}
		day.Games = append(day.Games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	days := make([]stats.MatchdayGames, 0, len(order))
	for _, round := range order {
		days = append(days, *byRound[round])
	}
	return days, nil
}

// GetSeasonMatches loads every stored match result of a season, shaped for
// the standings calculator.
func (s *store) GetSeasonMatches(season string) ([]standings.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ht.name, at.name, m.home_sets, m.away_sets, m.home_legs, m.away_legs
		FROM matches m
		JOIN matchdays md ON md.id = m.matchday_id
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE md.season = ?
		ORDER BY md.round, ht.name
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season matches: %w", err)
	}
	defer rows.Close()

	var matches []standings.Match
	for rows.Next() {
		var m standings.Match
		if err := rows.Scan(&m.HomeTeam, &m.AwayTeam, &m.HomeSets, &m.AwaySets, &m.HomeLegs, &m.AwayLegs); err != nil {
			log.Error("Failed to scan season match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetLatestMatchDetails returns the most recent matches of a season with
// their full per-game breakdown, newest round first.
func (s *store) GetLatestMatchDetails(season string, limit int) ([]MatchDetailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT m.id, md.round, md.date, ht.name, at.name, m.home_sets, m.away_sets
		FROM matches m
		JOIN matchdays md ON md.id = m.matchday_id
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE md.season = ?
		ORDER BY md.round DESC, ht.name
		LIMIT ?
	`, season, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest matches: %w", err)
	}
	defer rows.Close()

	type matchRow struct {
		id     string
		detail MatchDetailRecord
	}
	var heads []matchRow
	for rows.Next() {
		var r matchRow
		var date sql.NullString
		if err := rows.Scan(&r.id, &r.detail.Round, &date, &r.detail.HomeTeam, &r.detail.AwayTeam,
			&r.detail.HomeSets, &r.detail.AwaySets); err != nil {
			log.Error("Failed to scan latest match row", "error", err)
			continue
		}
		r.detail.Date = date.String
		heads = append(heads, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	details := make([]MatchDetailRecord, 0, len(heads))
	for _, h := range heads {
		singles, doubles, err := s.gamesForMatch(h.id)
		if err != nil {
			return nil, err
		}
		h.detail.Singles = singles
		h.detail.Doubles = doubles
		details = append(details, h.detail)
	}
	return details, nil
}

func (s *store) gamesForMatch(matchID string) ([]SinglesGameRecord, []DoublesGameRecord, error) {
	singleRows, err := s.db.Query(`
		SELECT id, match_id, game_order, home_player, away_player,
		       home_legs, away_legs, home_average, away_average, home_checkouts, away_checkouts
		FROM singles_games WHERE match_id = ? ORDER BY game_order
	`, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query singles games: %w", err)
	}
	defer singleRows.Close()

	var singles []SinglesGameRecord
	for singleRows.Next() {
		var g SinglesGameRecord
		var homeCheckouts, awayCheckouts sql.NullString
		if err := singleRows.Scan(&g.ID, &g.MatchID, &g.GameOrder, &g.HomePlayer, &g.AwayPlayer,
			&g.HomeLegs, &g.AwayLegs, &g.HomeAverage, &g.AwayAverage, &homeCheckouts, &awayCheckouts); err != nil {
			log.Error("Failed to scan singles game row", "error", err)
			continue
		}
		g.HomeCheckouts = ParseCheckouts(homeCheckouts.String)
		g.AwayCheckouts = ParseCheckouts(awayCheckouts.String)
		singles = append(singles, g)
	}
	if err := singleRows.Err(); err != nil {
		return nil, nil, err
	}

	doubleRows, err := s.db.Query(`
		SELECT id, match_id, game_order, home_player_one, home_player_two, away_player_one, away_player_two,
		       home_legs, away_legs, home_average, away_average, home_checkouts, away_checkouts
		FROM doubles_games WHERE match_id = ? ORDER BY game_order
	`, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query doubles games: %w", err)
	}
	defer doubleRows.Close()

	var doubles []DoublesGameRecord
	for doubleRows.Next() {
		var g DoublesGameRecord
		var homeCheckouts, awayCheckouts sql.NullString
		if err := doubleRows.Scan(&g.ID, &g.MatchID, &g.GameOrder,
			&g.HomePlayers[0], &g.HomePlayers[1], &g.AwayPlayers[0], &g.AwayPlayers[1],
			&g.HomeLegs, &g.AwayLegs, &g.HomeAverage, &g.AwayAverage, &homeCheckouts, &awayCheckouts); err != nil {
			log.Error("Failed to scan doubles game row", "error", err)
			continue
		}
		g.HomeCheckouts = ParseCheckouts(homeCheckouts.String)
		g.AwayCheckouts = ParseCheckouts(awayCheckouts.String)
		doubles = append(doubles, g)
	}
	return singles, doubles, doubleRows.Err()
}
