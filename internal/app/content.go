package app

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

// ContentService answers read queries over sounds, songs and authors.
type ContentService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewContentService(repo *store.DB, log *logger.Logger) *ContentService {
	return &ContentService{Repo: repo, Logger: log}
}

func (s *ContentService) Sounds(allowSensitive bool) ([]domain.Sound, error) {
	return s.Repo.Sounds(allowSensitive)
}

func (s *ContentService) RandomSounds(allowSensitive bool) ([]domain.Sound, error) {
	return s.Repo.RandomSounds(allowSensitive, constants.RandomSoundsLimit)
}

func (s *ContentService) SoundsByAuthor(authorID string, allowSensitive bool) ([]domain.Sound, error) {
	return s.Repo.SoundsByAuthor(authorID, allowSensitive)
}

func (s *ContentService) Songs(allowSensitive bool) ([]domain.Song, error) {
	return s.Repo.Songs(allowSensitive)
}

func (s *ContentService) Genres() ([]domain.MusicGenre, error) {
	return s.Repo.Genres()
}

func (s *ContentService) Authors() ([]domain.Author, error) {
	return s.Repo.Authors()
}

// Author returns nil when the author does not exist.
func (s *ContentService) Author(id string) (*domain.Author, error) {
	author, err := s.Repo.Author(id)
	if err != nil {
		s.Logger.Error("Failed to load author", "author_id", id, "error", err)
		return nil, err
	}
	return author, nil
}

// Content resolves ids into sounds followed by songs. Ids matching neither
// are dropped.
func (s *ContentService) Content(ids []string) ([]domain.Content, error) {
	sounds, err := s.Repo.SoundsWithIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load sounds: %w", err)
	}
	songs, err := s.Repo.SongsWithIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}

	content := make([]domain.Content, 0, len(sounds)+len(songs))
	for _, snd := range sounds {
		content = append(content, domain.SoundContent(snd))
	}
	for _, sng := range songs {
		content = append(content, domain.SongContent(sng))
	}
	return content, nil
}

// ContentInOrder resolves ids like Content but keeps the order of ids.
func (s *ContentService) ContentInOrder(ids []string) ([]domain.Content, error) {
	content, err := s.Content(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Content, len(content))
	for _, c := range content {
		byID[c.ID()] = c
	}

	ordered := make([]domain.Content, 0, len(content))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
			delete(byID, id)
		}
	}
	return ordered, nil
}
