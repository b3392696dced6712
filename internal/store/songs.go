package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

const songSelect = `SELECT s.id, s.title, s.author_id, COALESCE(a.name, '') AS author_name,
	s.genre_id, COALESCE(g.name, '') AS genre_name,
	s.description, s.duration, s.is_offensive, s.date_added, s.is_from_server
	FROM song s
	LEFT JOIN author a ON a.id = s.author_id
	LEFT JOIN music_genre g ON g.id = s.genre_id`

func (db *DB) InsertSong(song *domain.Song) error {
	if song.DateAdded.IsZero() {
		song.DateAdded = domain.Now()
	}

	query := `INSERT INTO song (id, title, author_id, genre_id, description, duration, is_offensive, date_added, is_from_server)
		VALUES (:id, :title, :author_id, :genre_id, :description, :duration, :is_offensive, :date_added, :is_from_server)
		ON CONFLICT(id) DO NOTHING`

	res, err := db.NamedExec(query, song)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return requireInserted(res, domain.EntitySong, song.ID)
}

func (db *DB) UpsertSong(song *domain.Song) error {
	if song.DateAdded.IsZero() {
		song.DateAdded = domain.Now()
	}

	query := `INSERT INTO song (id, title, author_id, genre_id, description, duration, is_offensive, date_added, is_from_server)
		VALUES (:id, :title, :author_id, :genre_id, :description, :duration, :is_offensive, :date_added, :is_from_server)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author_id = excluded.author_id,
			genre_id = excluded.genre_id,
			description = excluded.description,
			duration = excluded.duration,
			is_offensive = excluded.is_offensive,
			is_from_server = excluded.is_from_server`

	if _, err := db.NamedExec(query, song); err != nil {
		return fmt.Errorf("failed to upsert song: %w", err)
	}
	return nil
}

func (db *DB) UpdateSong(song *domain.Song) error {
	query := `UPDATE song SET
		title = :title, author_id = :author_id, genre_id = :genre_id,
		description = :description, duration = :duration, is_offensive = :is_offensive
		WHERE id = :id`

	res, err := db.NamedExec(query, song)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	return requireAffected(res, domain.EntitySong, song.ID)
}

func (db *DB) DeleteSong(id string) error {
	res, err := db.Exec("DELETE FROM song WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return requireAffected(res, domain.EntitySong, id)
}

// Song returns nil, nil when no song has the id.
func (db *DB) Song(id string) (*domain.Song, error) {
	var song domain.Song
	found, err := getOptional(db, &song, songSelect+` WHERE s.id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &song, nil
}

func (db *DB) Songs(allowSensitive bool) ([]domain.Song, error) {
	query := songSelect + ` WHERE ` + sensitiveFilter(allowSensitive) + ` ORDER BY s.date_added DESC, s.id`

	var songs []domain.Song
	if err := db.Select(&songs, query); err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// SongsWithIDs returns the songs in the order of ids. Unknown ids are
// dropped.
func (db *DB) SongsWithIDs(ids []string) ([]domain.Song, error) {
	if len(ids) == 0 {
		return []domain.Song{}, nil
	}

	var rows []domain.Song
	if err := selectIn(db, &rows, songSelect+` WHERE s.id IN (?)`, ids); err != nil {
		return nil, fmt.Errorf("failed to load songs by id: %w", err)
	}

	byID := make(map[string]domain.Song, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}

	songs := make([]domain.Song, 0, len(rows))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			songs = append(songs, s)
		}
	}
	return songs, nil
}
