package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

const authorSelect = `SELECT a.id, a.name, a.photo, a.description, a.external_links,
	(SELECT COUNT(*) FROM sound s WHERE s.author_id = a.id) AS sound_count
	FROM author a`

func (db *DB) InsertAuthor(author *domain.Author) error {
	query := `INSERT INTO author (id, name, photo, description, external_links)
		VALUES (:id, :name, :photo, :description, :external_links)
		ON CONFLICT(id) DO NOTHING`

	res, err := db.NamedExec(query, author)
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return requireInserted(res, domain.EntityAuthor, author.ID)
}

func (db *DB) UpsertAuthor(author *domain.Author) error {
	query := `INSERT INTO author (id, name, photo, description, external_links)
		VALUES (:id, :name, :photo, :description, :external_links)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			photo = excluded.photo,
			description = excluded.description,
			external_links = excluded.external_links`

	if _, err := db.NamedExec(query, author); err != nil {
		return fmt.Errorf("failed to upsert author: %w", err)
	}
	return nil
}

func (db *DB) UpdateAuthor(author *domain.Author) error {
	query := `UPDATE author SET
		name = :name, photo = :photo, description = :description, external_links = :external_links
		WHERE id = :id`

	res, err := db.NamedExec(query, author)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	return requireAffected(res, domain.EntityAuthor, author.ID)
}

func (db *DB) DeleteAuthor(id string) error {
	res, err := db.Exec("DELETE FROM author WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return requireAffected(res, domain.EntityAuthor, id)
}

// Author returns nil, nil when no author has the id, and an InternalError
// when more than one row matches.
func (db *DB) Author(id string) (*domain.Author, error) {
	var authors []domain.Author
	if err := db.Select(&authors, authorSelect+` WHERE a.id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	switch len(authors) {
	case 0:
		return nil, nil
	case 1:
		return &authors[0], nil
	default:
		return nil, domain.NewInternal("author", fmt.Sprintf("%d rows for id %s", len(authors), id))
	}
}

func (db *DB) Authors() ([]domain.Author, error) {
	var authors []domain.Author
	if err := db.Select(&authors, authorSelect+` ORDER BY a.name COLLATE NOCASE, a.id`); err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (db *DB) AuthorsWithIDs(ids []string) ([]domain.Author, error) {
	if len(ids) == 0 {
		return []domain.Author{}, nil
	}

	var authors []domain.Author
	if err := selectIn(db, &authors, authorSelect+` WHERE a.id IN (?)`, ids); err != nil {
		return nil, fmt.Errorf("failed to load authors by id: %w", err)
	}
	return authors, nil
}
