package league

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// InsertSyncLog appends one audit row. Rows are never updated or deleted.
func (s *store) InsertSyncLog(entry SyncLogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.Exec(`
		INSERT INTO sync_logs (id, sync_type, season, status, records_updated, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SyncType, entry.Season, entry.Status, entry.RecordsUpdated, entry.ErrorMessage, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sync log: %w", err)
	}
	return nil
}

// GetSyncLogs lists a season's most recent sync attempts, newest first.
func (s *store) GetSyncLogs(season string, limit int) ([]SyncLogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, sync_type, season, status, records_updated, error_message, created_at
		FROM sync_logs WHERE season = ? ORDER BY created_at DESC, id LIMIT ?
	`, season, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync logs: %w", err)
	}
	defer rows.Close()

	var entries []SyncLogRecord
	for rows.Next() {
		var e SyncLogRecord
		var message sql.NullString
		if err := rows.Scan(&e.ID, &e.SyncType, &e.Season, &e.Status, &e.RecordsUpdated, &message, &e.CreatedAt); err != nil {
			log.Error("Failed to scan sync log row", "error", err)
			continue
		}
		e.ErrorMessage = message.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
