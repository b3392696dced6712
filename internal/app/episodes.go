package app

import (
	"context"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

// EpisodeService keeps the user's podcast state: bookmarks, listening
// sessions, playback progress, played and favorite flags.
type EpisodeService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewEpisodeService(repo *store.DB, log *logger.Logger) *EpisodeService {
	return &EpisodeService{Repo: repo, Logger: log}
}

// Import stores a batch of episodes in one transaction.
func (s *EpisodeService) Import(ctx context.Context, episodes []domain.PodcastEpisode) error {
	if len(episodes) == 0 {
		return nil
	}
	if err := s.Repo.UpsertEpisodes(ctx, episodes); err != nil {
		return err
	}
	s.Logger.Info("Episodes imported", "count", len(episodes))
	return nil
}

func (s *EpisodeService) Episodes(podcastID string) ([]domain.PodcastEpisode, error) {
	return s.Repo.Episodes(podcastID)
}

func (s *EpisodeService) AddBookmark(episodeID string, timestamp float64, title, note string) (*domain.EpisodeBookmark, error) {
	if timestamp < 0 {
		return nil, domain.NewInvalidInput("timestamp", "must not be negative")
	}
	b := &domain.EpisodeBookmark{EpisodeID: episodeID, Timestamp: timestamp, Title: title, Note: note}
	if err := s.Repo.InsertBookmark(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *EpisodeService) Bookmarks(episodeID string) ([]domain.EpisodeBookmark, error) {
	return s.Repo.Bookmarks(episodeID)
}

func (s *EpisodeService) UpdateBookmark(b *domain.EpisodeBookmark) error {
	return s.Repo.UpdateBookmark(b)
}

func (s *EpisodeService) DeleteBookmark(id string) error {
	return s.Repo.DeleteBookmark(id)
}

// RecordListen stores a finished listening session. A session that reached
// the end also marks the episode as played.
func (s *EpisodeService) RecordListen(l *domain.EpisodeListenLog) error {
	if l.EndedAt.Before(l.StartedAt.Time) {
		return domain.NewInvalidInput("endTime", "listen session ends before it starts")
	}
	if err := s.Repo.InsertListenLog(l); err != nil {
		return err
	}
	if l.DidFinish {
		return s.Repo.SetEpisodePlayed(l.EpisodeID)
	}
	return nil
}

func (s *EpisodeService) TotalListenTime(episodeID string) (float64, error) {
	return s.Repo.TotalListenTime(episodeID)
}

func (s *EpisodeService) SaveProgress(episodeID string, currentTime, duration float64) error {
	return s.Repo.UpsertEpisodeProgress(&domain.EpisodeProgress{
		EpisodeID:   episodeID,
		CurrentTime: currentTime,
		Duration:    duration,
	})
}

// Progress returns nil when the episode was never started.
func (s *EpisodeService) Progress(episodeID string) (*domain.EpisodeProgress, error) {
	return s.Repo.EpisodeProgress(episodeID)
}

func (s *EpisodeService) SetPlayed(episodeID string, played bool) error {
	if played {
		return s.Repo.SetEpisodePlayed(episodeID)
	}
	return s.Repo.UnsetEpisodePlayed(episodeID)
}

func (s *EpisodeService) PlayedEpisodeIDs() ([]string, error) {
	return s.Repo.PlayedEpisodeIDs()
}

func (s *EpisodeService) SetFavorite(episodeID string, favorite bool) error {
	if favorite {
		return s.Repo.SetEpisodeFavorite(episodeID)
	}
	return s.Repo.UnsetEpisodeFavorite(episodeID)
}

func (s *EpisodeService) FavoriteEpisodeIDs() ([]string, error) {
	return s.Repo.FavoriteEpisodeIDs()
}
