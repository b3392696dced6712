package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

// The sync log is append-only. Only the newest SyncLogRetention rows are
// reported as recent; older rows stay in the table and are counted as
// overflow.

func (db *DB) InsertSyncLog(l *domain.SyncLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.DateTime.IsZero() {
		l.DateTime = domain.Now()
	}

	_, err := db.NamedExec(`INSERT INTO sync_log (id, log_type, description, date_time, update_event_id, media_type, content_id)
		VALUES (:id, :log_type, :description, :date_time, :update_event_id, :media_type, :content_id)`, l)
	if err != nil {
		return fmt.Errorf("failed to insert sync log: %w", err)
	}
	return nil
}

// RecentSyncLogs returns the retained logs, newest first. Rows with equal
// timestamps come back in reverse insertion order.
func (db *DB) RecentSyncLogs() ([]domain.SyncLog, error) {
	var logs []domain.SyncLog
	err := db.Select(&logs, `SELECT id, log_type, description, date_time, update_event_id, media_type, content_id
		FROM sync_log ORDER BY date_time DESC, seq DESC LIMIT ?`, constants.SyncLogRetention)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	return logs, nil
}

func (db *DB) SyncLogCount() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM sync_log")
	return count, err
}

// SyncLogOverflowCount is the number of rows beyond the retained set. It is
// never negative.
func (db *DB) SyncLogOverflowCount() (int, error) {
	total, err := db.SyncLogCount()
	if err != nil {
		return 0, fmt.Errorf("failed to count sync logs: %w", err)
	}
	return max(total-constants.SyncLogRetention, 0), nil
}

// SyncLogsForEvent lists every audit row written for one update event.
func (db *DB) SyncLogsForEvent(eventID string) ([]domain.SyncLog, error) {
	var logs []domain.SyncLog
	err := db.Select(&logs, `SELECT id, log_type, description, date_time, update_event_id, media_type, content_id
		FROM sync_log WHERE update_event_id = ? ORDER BY seq`, eventID)
	return logs, err
}
