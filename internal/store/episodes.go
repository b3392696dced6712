package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cesargomez89/soundboard/internal/domain"
)

// UpsertEpisodes stores a batch of episodes in one transaction, so a failure
// leaves none of the batch applied.
func (db *DB) UpsertEpisodes(ctx context.Context, episodes []domain.PodcastEpisode) error {
	query := `INSERT INTO podcast_episode (id, podcast_id, title, description, pub_date, duration, remote_url)
		VALUES (:id, :podcast_id, :title, :description, :pub_date, :duration, :remote_url)
		ON CONFLICT(id) DO UPDATE SET
			podcast_id = excluded.podcast_id,
			title = excluded.title,
			description = excluded.description,
			pub_date = excluded.pub_date,
			duration = excluded.duration,
			remote_url = excluded.remote_url`

	return db.RunInTx(ctx, func(tx *DB) error {
		for i := range episodes {
			if _, err := tx.NamedExec(query, &episodes[i]); err != nil {
				return fmt.Errorf("failed to upsert episode %s: %w", episodes[i].ID, err)
			}
		}
		return nil
	})
}

// Episodes lists a podcast's episodes, newest first.
func (db *DB) Episodes(podcastID string) ([]domain.PodcastEpisode, error) {
	var eps []domain.PodcastEpisode
	err := db.Select(&eps, `SELECT id, podcast_id, title, description, pub_date, duration, remote_url
		FROM podcast_episode WHERE podcast_id = ? ORDER BY pub_date DESC`, podcastID)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	return eps, nil
}

// Bookmarks

func (db *DB) InsertBookmark(b *domain.EpisodeBookmark) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = domain.Now()
	}

	_, err := db.NamedExec(`INSERT INTO episode_bookmark (id, episode_id, timestamp, title, note, created_at)
		VALUES (:id, :episode_id, :timestamp, :title, :note, :created_at)`, b)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

func (db *DB) Bookmarks(episodeID string) ([]domain.EpisodeBookmark, error) {
	var bs []domain.EpisodeBookmark
	err := db.Select(&bs, `SELECT id, episode_id, timestamp, title, note, created_at
		FROM episode_bookmark WHERE episode_id = ? ORDER BY timestamp`, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bs, nil
}

func (db *DB) UpdateBookmark(b *domain.EpisodeBookmark) error {
	res, err := db.NamedExec(`UPDATE episode_bookmark SET timestamp = :timestamp, title = :title, note = :note
		WHERE id = :id`, b)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}
	return requireAffected(res, domain.EntityBookmark, b.ID)
}

func (db *DB) DeleteBookmark(id string) error {
	res, err := db.Exec("DELETE FROM episode_bookmark WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return requireAffected(res, domain.EntityBookmark, id)
}

// Listen log

func (db *DB) InsertListenLog(l *domain.EpisodeListenLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	_, err := db.NamedExec(`INSERT INTO episode_listen_log
		(id, episode_id, podcast_id, started_at, ended_at, listened_seconds, did_finish)
		VALUES (:id, :episode_id, :podcast_id, :started_at, :ended_at, :listened_seconds, :did_finish)`, l)
	if err != nil {
		return fmt.Errorf("failed to insert listen log: %w", err)
	}
	return nil
}

func (db *DB) ListenLogs(episodeID string) ([]domain.EpisodeListenLog, error) {
	var logs []domain.EpisodeListenLog
	err := db.Select(&logs, `SELECT id, episode_id, podcast_id, started_at, ended_at, listened_seconds, did_finish
		FROM episode_listen_log WHERE episode_id = ? ORDER BY started_at`, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listen logs: %w", err)
	}
	return logs, nil
}

// TotalListenTime sums the seconds listened across every session of an episode.
func (db *DB) TotalListenTime(episodeID string) (float64, error) {
	var total float64
	err := db.Get(&total, "SELECT COALESCE(SUM(listened_seconds), 0) FROM episode_listen_log WHERE episode_id = ?", episodeID)
	return total, err
}

// Progress

// UpsertEpisodeProgress keeps exactly one progress row per episode.
func (db *DB) UpsertEpisodeProgress(p *domain.EpisodeProgress) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = domain.Now()
	}

	_, err := db.NamedExec(`INSERT INTO episode_progress (episode_id, playback_time, duration, updated_at)
		VALUES (:episode_id, :playback_time, :duration, :updated_at)
		ON CONFLICT(episode_id) DO UPDATE SET
			playback_time = excluded.playback_time,
			duration = excluded.duration,
			updated_at = excluded.updated_at`, p)
	if err != nil {
		return fmt.Errorf("failed to upsert episode progress: %w", err)
	}
	return nil
}

// EpisodeProgress returns nil, nil when the episode has no saved progress.
func (db *DB) EpisodeProgress(episodeID string) (*domain.EpisodeProgress, error) {
	var p domain.EpisodeProgress
	found, err := getOptional(db, &p, `SELECT episode_id, playback_time, duration, updated_at
		FROM episode_progress WHERE episode_id = ?`, episodeID)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (db *DB) EpisodeProgressCount(episodeID string) (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM episode_progress WHERE episode_id = ?", episodeID)
	return count, err
}

// Played flags

func (db *DB) SetEpisodePlayed(episodeID string) error {
	_, err := db.Exec(`INSERT INTO episode_played (episode_id, date_time) VALUES (?, ?)
		ON CONFLICT(episode_id) DO UPDATE SET date_time = excluded.date_time`, episodeID, domain.Now())
	if err != nil {
		return fmt.Errorf("failed to mark episode played: %w", err)
	}
	return nil
}

func (db *DB) UnsetEpisodePlayed(episodeID string) error {
	if _, err := db.Exec("DELETE FROM episode_played WHERE episode_id = ?", episodeID); err != nil {
		return fmt.Errorf("failed to unmark episode played: %w", err)
	}
	return nil
}

func (db *DB) PlayedEpisodeIDs() ([]string, error) {
	var ids []string
	err := db.Select(&ids, "SELECT episode_id FROM episode_played ORDER BY date_time DESC")
	return ids, err
}

// Favorite flags

func (db *DB) SetEpisodeFavorite(episodeID string) error {
	_, err := db.Exec(`INSERT INTO episode_favorite (episode_id, date_added) VALUES (?, ?)
		ON CONFLICT(episode_id) DO NOTHING`, episodeID, domain.Now())
	if err != nil {
		return fmt.Errorf("failed to favorite episode: %w", err)
	}
	return nil
}

func (db *DB) UnsetEpisodeFavorite(episodeID string) error {
	if _, err := db.Exec("DELETE FROM episode_favorite WHERE episode_id = ?", episodeID); err != nil {
		return fmt.Errorf("failed to unfavorite episode: %w", err)
	}
	return nil
}

func (db *DB) FavoriteEpisodeIDs() ([]string, error) {
	var ids []string
	err := db.Select(&ids, "SELECT episode_id FROM episode_favorite ORDER BY date_added DESC")
	return ids, err
}
