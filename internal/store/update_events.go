package store

import (
	"database/sql"
	"fmt"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

const updateEventColumns = `id, content_id, date_time, media_type, event_type, did_succeed`

// InsertUpdateEvent records a received event. A repeated id returns a
// DuplicateKeyError.
func (db *DB) InsertUpdateEvent(e *domain.UpdateEvent) error {
	res, err := db.NamedExec(`INSERT INTO update_event (`+updateEventColumns+`)
		VALUES (:id, :content_id, :date_time, :media_type, :event_type, :did_succeed)
		ON CONFLICT(id) DO NOTHING`, e)
	if err != nil {
		return fmt.Errorf("failed to insert update event: %w", err)
	}
	return requireInserted(res, domain.EntityUpdateEvent, e.ID)
}

func (db *DB) UpdateEventExists(id string) (bool, error) {
	var exists bool
	err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM update_event WHERE id = ?)", id)
	return exists, err
}

// UpdateEvent returns nil, nil when absent.
func (db *DB) UpdateEvent(id string) (*domain.UpdateEvent, error) {
	var e domain.UpdateEvent
	found, err := getOptional(db, &e, `SELECT `+updateEventColumns+` FROM update_event WHERE id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

func (db *DB) MarkUpdateEventSucceeded(id string) error {
	return db.setUpdateEventResult(id, true)
}

func (db *DB) MarkUpdateEventFailed(id string) error {
	return db.setUpdateEventResult(id, false)
}

func (db *DB) setUpdateEventResult(id string, succeeded bool) error {
	res, err := db.Exec("UPDATE update_event SET did_succeed = ? WHERE id = ?", succeeded, id)
	if err != nil {
		return fmt.Errorf("failed to update event result: %w", err)
	}
	return requireAffected(res, domain.EntityUpdateEvent, id)
}

// UnsuccessfulUpdateEvents lists events never attempted or failed, oldest
// first.
func (db *DB) UnsuccessfulUpdateEvents() ([]domain.UpdateEvent, error) {
	var events []domain.UpdateEvent
	err := db.Select(&events, `SELECT `+updateEventColumns+` FROM update_event
		WHERE did_succeed IS NULL OR did_succeed = 0
		ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsuccessful update events: %w", err)
	}
	return events, nil
}

// DateTimeOfLastUpdate returns the timestamp of the newest event, or
// constants.LastUpdateAll when no event has been recorded.
func (db *DB) DateTimeOfLastUpdate() (string, error) {
	var last sql.NullString
	if err := db.Get(&last, "SELECT MAX(date_time) FROM update_event"); err != nil {
		return "", fmt.Errorf("failed to read last update: %w", err)
	}
	if !last.Valid || last.String == "" {
		return constants.LastUpdateAll, nil
	}
	return last.String, nil
}

func (db *DB) UpdateEventCount() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM update_event")
	return count, err
}
