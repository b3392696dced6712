package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

// InsertPinnedReaction pins a reaction, replacing an existing pin for the
// same reaction.
func (db *DB) InsertPinnedReaction(r *domain.PinnedReaction) error {
	if r.PinnedAt.IsZero() {
		r.PinnedAt = domain.Now()
	}

	_, err := db.NamedExec(`INSERT INTO pinned_reaction (reaction_id, title, image, position, pinned_at)
		VALUES (:reaction_id, :title, :image, :position, :pinned_at)
		ON CONFLICT(reaction_id) DO UPDATE SET
			title = excluded.title,
			image = excluded.image,
			position = excluded.position,
			pinned_at = excluded.pinned_at`, r)
	if err != nil {
		return fmt.Errorf("failed to pin reaction: %w", err)
	}
	return nil
}

func (db *DB) PinnedReactions() ([]domain.PinnedReaction, error) {
	var rs []domain.PinnedReaction
	err := db.Select(&rs, `SELECT reaction_id, title, image, position, pinned_at
		FROM pinned_reaction ORDER BY position, pinned_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pinned reactions: %w", err)
	}
	return rs, nil
}

func (db *DB) DeletePinnedReaction(reactionID string) error {
	res, err := db.Exec("DELETE FROM pinned_reaction WHERE reaction_id = ?", reactionID)
	if err != nil {
		return fmt.Errorf("failed to unpin reaction: %w", err)
	}
	return requireAffected(res, domain.EntityPinnedReaction, reactionID)
}
