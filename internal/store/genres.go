package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

func (db *DB) InsertGenre(genre *domain.MusicGenre) error {
	res, err := db.NamedExec(`INSERT INTO music_genre (id, symbol, name) VALUES (:id, :symbol, :name)
		ON CONFLICT(id) DO NOTHING`, genre)
	if err != nil {
		return fmt.Errorf("failed to insert genre: %w", err)
	}
	return requireInserted(res, domain.EntityGenre, genre.ID)
}

func (db *DB) UpsertGenre(genre *domain.MusicGenre) error {
	_, err := db.NamedExec(`INSERT INTO music_genre (id, symbol, name) VALUES (:id, :symbol, :name)
		ON CONFLICT(id) DO UPDATE SET symbol = excluded.symbol, name = excluded.name`, genre)
	if err != nil {
		return fmt.Errorf("failed to upsert genre: %w", err)
	}
	return nil
}

func (db *DB) UpdateGenre(genre *domain.MusicGenre) error {
	res, err := db.NamedExec(`UPDATE music_genre SET symbol = :symbol, name = :name WHERE id = :id`, genre)
	if err != nil {
		return fmt.Errorf("failed to update genre: %w", err)
	}
	return requireAffected(res, domain.EntityGenre, genre.ID)
}

func (db *DB) DeleteGenre(id string) error {
	res, err := db.Exec("DELETE FROM music_genre WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	return requireAffected(res, domain.EntityGenre, id)
}

func (db *DB) Genres() ([]domain.MusicGenre, error) {
	var genres []domain.MusicGenre
	if err := db.Select(&genres, "SELECT id, symbol, name FROM music_genre ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// Genre returns nil, nil when absent.
func (db *DB) Genre(id string) (*domain.MusicGenre, error) {
	var genre domain.MusicGenre
	found, err := getOptional(db, &genre, "SELECT id, symbol, name FROM music_genre WHERE id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &genre, nil
}
