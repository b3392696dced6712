package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

const soundColumns = `s.id, s.title, s.author_id, COALESCE(a.name, '') AS author_name,
	s.description, s.duration, s.is_offensive, s.date_added, s.is_from_server`

const soundSelect = `SELECT ` + soundColumns + ` FROM sound s LEFT JOIN author a ON a.id = s.author_id`

func sensitiveFilter(allowSensitive bool) string {
	if allowSensitive {
		return "1 = 1"
	}
	return "s.is_offensive = 0"
}

func (db *DB) InsertSound(sound *domain.Sound) error {
	if sound.DateAdded.IsZero() {
		sound.DateAdded = domain.Now()
	}

	query := `INSERT INTO sound (id, title, author_id, description, duration, is_offensive, date_added, is_from_server)
		VALUES (:id, :title, :author_id, :description, :duration, :is_offensive, :date_added, :is_from_server)
		ON CONFLICT(id) DO NOTHING`

	res, err := db.NamedExec(query, sound)
	if err != nil {
		return fmt.Errorf("failed to insert sound: %w", err)
	}
	return requireInserted(res, domain.EntitySound, sound.ID)
}

// UpsertSound inserts the sound or replaces its metadata when it already
// exists. The original date added is kept.
func (db *DB) UpsertSound(sound *domain.Sound) error {
	if sound.DateAdded.IsZero() {
		sound.DateAdded = domain.Now()
	}

	query := `INSERT INTO sound (id, title, author_id, description, duration, is_offensive, date_added, is_from_server)
		VALUES (:id, :title, :author_id, :description, :duration, :is_offensive, :date_added, :is_from_server)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author_id = excluded.author_id,
			description = excluded.description,
			duration = excluded.duration,
			is_offensive = excluded.is_offensive,
			is_from_server = excluded.is_from_server`

	if _, err := db.NamedExec(query, sound); err != nil {
		return fmt.Errorf("failed to upsert sound: %w", err)
	}
	return nil
}

func (db *DB) UpdateSound(sound *domain.Sound) error {
	query := `UPDATE sound SET
		title = :title, author_id = :author_id, description = :description,
		duration = :duration, is_offensive = :is_offensive
		WHERE id = :id`

	res, err := db.NamedExec(query, sound)
	if err != nil {
		return fmt.Errorf("failed to update sound: %w", err)
	}
	return requireAffected(res, domain.EntitySound, sound.ID)
}

func (db *DB) DeleteSound(id string) error {
	res, err := db.Exec("DELETE FROM sound WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sound: %w", err)
	}
	return requireAffected(res, domain.EntitySound, id)
}

// Sound returns nil, nil when no sound has the id.
func (db *DB) Sound(id string) (*domain.Sound, error) {
	var sound domain.Sound
	found, err := getOptional(db, &sound, soundSelect+` WHERE s.id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &sound, nil
}

func (db *DB) Sounds(allowSensitive bool) ([]domain.Sound, error) {
	query := soundSelect + ` WHERE ` + sensitiveFilter(allowSensitive) + ` ORDER BY s.date_added DESC, s.id`

	var sounds []domain.Sound
	if err := db.Select(&sounds, query); err != nil {
		return nil, fmt.Errorf("failed to list sounds: %w", err)
	}
	return sounds, nil
}

func (db *DB) SoundsByAuthor(authorID string, allowSensitive bool) ([]domain.Sound, error) {
	query := soundSelect + ` WHERE s.author_id = ? AND ` + sensitiveFilter(allowSensitive) + ` ORDER BY s.date_added DESC, s.id`

	var sounds []domain.Sound
	if err := db.Select(&sounds, query, authorID); err != nil {
		return nil, fmt.Errorf("failed to list sounds by author: %w", err)
	}
	return sounds, nil
}

// RandomSounds samples up to limit sounds in the database, capped at
// RandomSoundsLimit.
func (db *DB) RandomSounds(allowSensitive bool, limit int) ([]domain.Sound, error) {
	if limit <= 0 || limit > constants.RandomSoundsLimit {
		limit = constants.RandomSoundsLimit
	}

	query := soundSelect + ` WHERE ` + sensitiveFilter(allowSensitive) + ` ORDER BY RANDOM() LIMIT ?`

	var sounds []domain.Sound
	if err := db.Select(&sounds, query, limit); err != nil {
		return nil, fmt.Errorf("failed to sample sounds: %w", err)
	}
	return sounds, nil
}

// SoundsWithIDs returns the sounds in the order of ids. Unknown ids are
// dropped.
func (db *DB) SoundsWithIDs(ids []string) ([]domain.Sound, error) {
	if len(ids) == 0 {
		return []domain.Sound{}, nil
	}

	var rows []domain.Sound
	if err := selectIn(db, &rows, soundSelect+` WHERE s.id IN (?)`, ids); err != nil {
		return nil, fmt.Errorf("failed to load sounds by id: %w", err)
	}

	byID := make(map[string]domain.Sound, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}

	sounds := make([]domain.Sound, 0, len(rows))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			sounds = append(sounds, s)
		}
	}
	return sounds, nil
}

func (db *DB) SoundCount() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM sound")
	return count, err
}

func (db *DB) SetSoundFromServer(id string, fromServer bool) error {
	res, err := db.Exec("UPDATE sound SET is_from_server = ? WHERE id = ?", fromServer, id)
	if err != nil {
		return fmt.Errorf("failed to flag sound: %w", err)
	}
	return requireAffected(res, domain.EntitySound, id)
}
