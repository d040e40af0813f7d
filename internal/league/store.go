package league

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// isConstraintMismatch reports whether an upsert failed because the store
// lacks the unique index the ON CONFLICT clause targets. SQLite raises a
// distinct error class for this, which is what lets us tell "schema lags the
// code" apart from a genuine write failure.
func isConstraintMismatch(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "ON CONFLICT clause does not match any PRIMARY KEY or UNIQUE constraint")
}

// UpsertTeam inserts or updates a team keyed on (name, season). When the
// store does not carry the matching unique index, it falls back to a manual
// three-branch reconciliation: exact (name, season) match, then cross-season
// match on name (season rollover re-uses identity), then insert. Calling it
// twice with identical input leaves at most one row per (name, season) either
// way.
func (s *store) UpsertTeam(name, division, season string) (TeamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO teams (id, name, season, division, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, season) DO UPDATE SET
			division = excluded.division,
			updated_at = excluded.updated_at;
	`, uuid.New().String(), name, season, division, now)
	if err != nil {
		if !isConstraintMismatch(err) {
			return TeamRecord{}, fmt.Errorf("failed to upsert team %q: %w", name, err)
		}
		log.Warn("Team upsert hit a missing unique index, reconciling manually", "team", name, "season", season)
		return s.upsertTeamManual(name, division, season, now)
	}
	return s.getTeamLocked(name, season)
}

func (s *store) upsertTeamManual(name, division, season string, now int64) (TeamRecord, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM teams WHERE name = ? AND season = ?`, name, season).Scan(&id)
	switch {
	case err == nil:
		if _, err := s.db.Exec(`UPDATE teams SET division = ?, updated_at = ? WHERE id = ?`, division, now, id); err != nil {
			return TeamRecord{}, fmt.Errorf("failed to update team %q: %w", name, err)
		}
		return TeamRecord{ID: id, Name: name, Season: season, Division: division, UpdatedAt: now}, nil
	case err != sql.ErrNoRows:
		return TeamRecord{}, fmt.Errorf("failed to look up team %q: %w", name, err)
	}

	// No row for this season; prefer the most recently updated row across
	// seasons so a season rollover keeps the team's identity.
	err = s.db.QueryRow(`SELECT id FROM teams WHERE name = ? ORDER BY updated_at DESC LIMIT 1`, name).Scan(&id)
	switch {
	case err == nil:
		if _, err := s.db.Exec(`UPDATE teams SET season = ?, division = ?, updated_at = ? WHERE id = ?`, season, division, now, id); err != nil {
			return TeamRecord{}, fmt.Errorf("failed to roll team %q over to season %s: %w", name, season, err)
		}
		log.Info("Rolled existing team over to new season", "team", name, "season", season)
		return TeamRecord{ID: id, Name: name, Season: season, Division: division, UpdatedAt: now}, nil
	case err != sql.ErrNoRows:
		return TeamRecord{}, fmt.Errorf("failed to look up team %q across seasons: %w", name, err)
	}

	id = uuid.New().String()
	if _, err := s.db.Exec(`INSERT INTO teams (id, name, season, division, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, season, division, now); err != nil {
		return TeamRecord{}, fmt.Errorf("failed to insert team %q: %w", name, err)
	}
	return TeamRecord{ID: id, Name: name, Season: season, Division: division, UpdatedAt: now}, nil
}

func (s *store) getTeamLocked(name, season string) (TeamRecord, error) {
	var t TeamRecord
	var division sql.NullString
	err := s.db.QueryRow(`SELECT id, name, season, division, updated_at FROM teams WHERE name = ? AND season = ?`,
		name, season).Scan(&t.ID, &t.Name, &t.Season, &division, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return TeamRecord{}, ErrNotFound
		}
		return TeamRecord{}, fmt.Errorf("failed to read team %q back: %w", name, err)
	}
	t.Division = division.String
	return t, nil
}

// GetTeam looks up a team by name within a season.
func (s *store) GetTeam(name, season string) (*TeamRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.getTeamLocked(name, season)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTeams lists all teams of a season ordered by name.
func (s *store) GetTeams(season string) ([]TeamRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, season, division, updated_at FROM teams WHERE season = ? ORDER BY name`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []TeamRecord
	for rows.Next() {
		var t TeamRecord
		var division sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Season, &division, &t.UpdatedAt); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		t.Division = division.String
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// UpsertPlayer inserts or updates a roster entry keyed on (name, team, season).
func (s *store) UpsertPlayer(p PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, team_id, season, average, games_won, games_lost)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, team_id, season) DO UPDATE SET
			average = excluded.average,
			games_won = excluded.games_won,
			games_lost = excluded.games_lost;
	`, uuid.New().String(), p.Name, p.TeamID, p.Season, p.Average, p.GamesWon, p.GamesLost)
	if err != nil {
		return fmt.Errorf("failed to upsert player %q: %w", p.Name, err)
	}
	return nil
}

// GetRoster lists a team's players ordered by name.
func (s *store) GetRoster(teamID string) ([]PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, team_id, season, average, games_won, games_lost
		FROM players WHERE team_id = ? ORDER BY name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.TeamID, &p.Season, &p.Average, &p.GamesWon, &p.GamesLost); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
