package app

import (
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

type FavoriteService struct {
	Repo    *store.DB
	Content *ContentService
	Logger  *logger.Logger
}

func NewFavoriteService(repo *store.DB, content *ContentService, log *logger.Logger) *FavoriteService {
	return &FavoriteService{Repo: repo, Content: content, Logger: log}
}

// Add marks content as favorite. Adding it twice returns an error wrapping
// domain.ErrDuplicateKey.
func (s *FavoriteService) Add(contentID string) (*domain.Favorite, error) {
	fav := &domain.Favorite{ContentID: contentID}
	if err := s.Repo.InsertFavorite(fav); err != nil {
		return nil, err
	}
	s.Logger.Info("Favorite added", "content_id", contentID)
	return fav, nil
}

func (s *FavoriteService) Exists(contentID string) (bool, error) {
	return s.Repo.FavoriteExists(contentID)
}

func (s *FavoriteService) Remove(contentID string) error {
	if err := s.Repo.DeleteFavorite(contentID); err != nil {
		return err
	}
	s.Logger.Info("Favorite removed", "content_id", contentID)
	return nil
}

func (s *FavoriteService) List() ([]domain.Favorite, error) {
	return s.Repo.Favorites()
}

// FavoriteContent resolves favorites into content, most recent first.
func (s *FavoriteService) FavoriteContent() ([]domain.Content, error) {
	favs, err := s.Repo.Favorites()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(favs))
	for i, f := range favs {
		ids[i] = f.ContentID
	}
	return s.Content.ContentInOrder(ids)
}
