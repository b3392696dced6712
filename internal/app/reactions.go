package app

import (
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

type ReactionService struct {
	Repo   *store.DB
	Logger *logger.Logger
}

func NewReactionService(repo *store.DB, log *logger.Logger) *ReactionService {
	return &ReactionService{Repo: repo, Logger: log}
}

// Pin pins a reaction, or moves an already pinned one to position.
func (s *ReactionService) Pin(reactionID, title, image string, position int) error {
	return s.Repo.InsertPinnedReaction(&domain.PinnedReaction{
		ReactionID: reactionID,
		Title:      title,
		Image:      image,
		Position:   position,
	})
}

func (s *ReactionService) Unpin(reactionID string) error {
	return s.Repo.DeletePinnedReaction(reactionID)
}

func (s *ReactionService) List() ([]domain.PinnedReaction, error) {
	return s.Repo.PinnedReactions()
}
