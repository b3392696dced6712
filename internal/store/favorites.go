package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

// InsertFavorite adds a favorite unless one already exists for the content.
// The check and the insert are a single statement; a repeated insert returns
// a DuplicateKeyError.
func (db *DB) InsertFavorite(fav *domain.Favorite) error {
	if fav.DateAdded.IsZero() {
		fav.DateAdded = domain.Now()
	}

	res, err := db.NamedExec(`INSERT INTO favorite (content_id, date_added) VALUES (:content_id, :date_added)
		ON CONFLICT(content_id) DO NOTHING`, fav)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return requireInserted(res, domain.EntityFavorite, fav.ContentID)
}

func (db *DB) FavoriteExists(contentID string) (bool, error) {
	var exists bool
	err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM favorite WHERE content_id = ?)", contentID)
	return exists, err
}

// Favorites lists favorites, most recently added first.
func (db *DB) Favorites() ([]domain.Favorite, error) {
	var favs []domain.Favorite
	if err := db.Select(&favs, "SELECT content_id, date_added FROM favorite ORDER BY date_added DESC"); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

func (db *DB) DeleteFavorite(contentID string) error {
	res, err := db.Exec("DELETE FROM favorite WHERE content_id = ?", contentID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return requireAffected(res, domain.EntityFavorite, contentID)
}
