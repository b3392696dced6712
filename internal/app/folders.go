package app

import (
	"sort"
	"strings"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

type FolderService struct {
	Repo    *store.DB
	Content *ContentService
	Logger  *logger.Logger
}

func NewFolderService(repo *store.DB, content *ContentService, log *logger.Logger) *FolderService {
	return &FolderService{Repo: repo, Content: content, Logger: log}
}

func (s *FolderService) Create(name, symbol, backgroundColor string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewInvalidInput("name", "is required")
	}

	folder := &domain.Folder{Name: name, Symbol: symbol, BackgroundColor: backgroundColor}
	if err := s.Repo.InsertFolder(folder); err != nil {
		return nil, err
	}
	s.Logger.Info("Folder created", "folder_id", folder.ID, "name", name)
	return folder, nil
}

func (s *FolderService) Rename(id, name string) error {
	folder, err := s.Repo.Folder(id)
	if err != nil {
		return err
	}
	if folder == nil {
		return domain.NewNotFound(domain.EntityFolder, id)
	}
	folder.Name = strings.TrimSpace(name)
	return s.Repo.UpdateFolder(folder)
}

func (s *FolderService) Delete(id string) error {
	if err := s.Repo.DeleteFolder(id); err != nil {
		return err
	}
	s.Logger.Info("Folder deleted", "folder_id", id)
	return nil
}

func (s *FolderService) List() ([]domain.Folder, error) {
	return s.Repo.Folders()
}

func (s *FolderService) Get(id string) (*domain.Folder, error) {
	return s.Repo.Folder(id)
}

func (s *FolderService) SetSortPreference(id string, pref domain.FolderSort) error {
	return s.Repo.SetFolderSortPreference(id, pref)
}

func (s *FolderService) AddContent(folderID, contentID string) error {
	return s.Repo.InsertFolderContent(&domain.FolderContent{FolderID: folderID, ContentID: contentID})
}

func (s *FolderService) RemoveContent(folderID, contentID string) error {
	return s.Repo.DeleteFolderContent(folderID, contentID)
}

// FolderContent resolves a folder's content in the folder's sort order.
func (s *FolderService) FolderContent(folderID string) ([]domain.Content, error) {
	folder, err := s.Repo.Folder(folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, domain.NewNotFound(domain.EntityFolder, folderID)
	}

	ids, err := s.Repo.FolderContentIDs(folderID)
	if err != nil {
		return nil, err
	}
	content, err := s.Content.ContentInOrder(ids)
	if err != nil {
		return nil, err
	}

	sortContent(content, folder.SortPreference())
	return content, nil
}

func sortContent(content []domain.Content, pref domain.FolderSort) {
	switch pref {
	case domain.FolderSortTitle:
		sort.SliceStable(content, func(i, j int) bool {
			return strings.ToLower(content[i].Title()) < strings.ToLower(content[j].Title())
		})
	case domain.FolderSortAuthor:
		sort.SliceStable(content, func(i, j int) bool {
			a, b := strings.ToLower(content[i].AuthorName()), strings.ToLower(content[j].AuthorName())
			if a != b {
				return a < b
			}
			return strings.ToLower(content[i].Title()) < strings.ToLower(content[j].Title())
		})
	}
	// FolderSortDateAdded keeps membership order.
}
