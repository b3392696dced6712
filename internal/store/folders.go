package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cesargomez89/soundboard/internal/domain"
)

const folderSelect = `SELECT f.id, f.symbol, f.name, f.background_color, f.user_sort_preference,
	f.version, f.created_at,
	(SELECT COUNT(*) FROM user_folder_content c WHERE c.folder_id = f.id) AS content_count
	FROM user_folder f`

func (db *DB) InsertFolder(folder *domain.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = domain.Now()
	}
	if folder.Version == "" {
		folder.Version = "1"
	}

	query := `INSERT INTO user_folder (id, symbol, name, background_color, user_sort_preference, version, created_at)
		VALUES (:id, :symbol, :name, :background_color, :user_sort_preference, :version, :created_at)
		ON CONFLICT(id) DO NOTHING`

	res, err := db.NamedExec(query, folder)
	if err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return requireInserted(res, domain.EntityFolder, folder.ID)
}

func (db *DB) UpdateFolder(folder *domain.Folder) error {
	query := `UPDATE user_folder SET symbol = :symbol, name = :name, background_color = :background_color
		WHERE id = :id`

	res, err := db.NamedExec(query, folder)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	return requireAffected(res, domain.EntityFolder, folder.ID)
}

// DeleteFolder removes the folder and, through the foreign key, its content.
func (db *DB) DeleteFolder(id string) error {
	res, err := db.Exec("DELETE FROM user_folder WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return requireAffected(res, domain.EntityFolder, id)
}

func (db *DB) Folders() ([]domain.Folder, error) {
	var folders []domain.Folder
	if err := db.Select(&folders, folderSelect+` ORDER BY f.name COLLATE NOCASE, f.id`); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Folder returns nil, nil when absent.
func (db *DB) Folder(id string) (*domain.Folder, error) {
	var folder domain.Folder
	found, err := getOptional(db, &folder, folderSelect+` WHERE f.id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &folder, nil
}

func (db *DB) SetFolderSortPreference(id string, pref domain.FolderSort) error {
	res, err := db.Exec("UPDATE user_folder SET user_sort_preference = ? WHERE id = ?", int(pref), id)
	if err != nil {
		return fmt.Errorf("failed to set folder sort preference: %w", err)
	}
	return requireAffected(res, domain.EntityFolder, id)
}

// InsertFolderContent adds content to a folder. A pair already present
// returns a DuplicateKeyError; an unknown folder returns a NotFoundError.
func (db *DB) InsertFolderContent(fc *domain.FolderContent) error {
	if fc.DateAdded.IsZero() {
		fc.DateAdded = domain.Now()
	}

	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM user_folder WHERE id = ?)", fc.FolderID); err != nil {
		return fmt.Errorf("failed to check folder: %w", err)
	}
	if !exists {
		return domain.NewNotFound(domain.EntityFolder, fc.FolderID)
	}

	res, err := db.NamedExec(`INSERT INTO user_folder_content (folder_id, content_id, date_added)
		VALUES (:folder_id, :content_id, :date_added)
		ON CONFLICT(folder_id, content_id) DO NOTHING`, fc)
	if err != nil {
		return fmt.Errorf("failed to insert folder content: %w", err)
	}
	return requireInserted(res, domain.EntityFolderContent, fc.FolderID+"/"+fc.ContentID)
}

func (db *DB) DeleteFolderContent(folderID, contentID string) error {
	res, err := db.Exec("DELETE FROM user_folder_content WHERE folder_id = ? AND content_id = ?", folderID, contentID)
	if err != nil {
		return fmt.Errorf("failed to delete folder content: %w", err)
	}
	return requireAffected(res, domain.EntityFolderContent, folderID+"/"+contentID)
}

// FolderContents lists a folder's membership rows, oldest first.
func (db *DB) FolderContents(folderID string) ([]domain.FolderContent, error) {
	var rows []domain.FolderContent
	err := db.Select(&rows, `SELECT folder_id, content_id, date_added FROM user_folder_content
		WHERE folder_id = ? ORDER BY date_added, content_id`, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder content: %w", err)
	}
	return rows, nil
}

func (db *DB) FolderContentIDs(folderID string) ([]string, error) {
	rows, err := db.FolderContents(folderID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ContentID
	}
	return ids, nil
}
