package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/soundboard/internal/domain"
)

const shareLogColumns = `id, install_id, content_id, content_type, destination, date_time, sent_to_server`

func (db *DB) InsertUserShareLog(l *domain.UserShareLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.DateTime.IsZero() {
		l.DateTime = domain.Now()
	}

	_, err := db.NamedExec(`INSERT INTO user_share_log (`+shareLogColumns+`)
		VALUES (:id, :install_id, :content_id, :content_type, :destination, :date_time, :sent_to_server)`, l)
	if err != nil {
		return fmt.Errorf("failed to insert share log: %w", err)
	}
	return nil
}

// UnsentUserShareLogs lists share logs not yet delivered, oldest first.
func (db *DB) UnsentUserShareLogs() ([]domain.UserShareLog, error) {
	var logs []domain.UserShareLog
	err := db.Select(&logs, `SELECT `+shareLogColumns+` FROM user_share_log
		WHERE sent_to_server = 0 ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsent share logs: %w", err)
	}
	return logs, nil
}

func (db *DB) MarkUserShareLogsSent(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In("UPDATE user_share_log SET sent_to_server = 1 WHERE id IN (?)", ids)
	if err != nil {
		return err
	}
	if _, err := db.Exec(db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to mark share logs sent: %w", err)
	}
	return nil
}

func (db *DB) UserShareLogCount() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM user_share_log")
	return count, err
}

// ReplaceAudienceStatistics swaps the whole audience table for stats in one
// transaction.
func (db *DB) ReplaceAudienceStatistics(ctx context.Context, stats []domain.AudienceShareStat) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.Exec("DELETE FROM audience_sharing_statistic"); err != nil {
			return fmt.Errorf("failed to clear audience statistics: %w", err)
		}
		for i := range stats {
			if stats[i].DateTime.IsZero() {
				stats[i].DateTime = domain.Now()
			}
			_, err := tx.NamedExec(`INSERT INTO audience_sharing_statistic (content_id, content_type, share_count, date_time)
				VALUES (:content_id, :content_type, :share_count, :date_time)`, &stats[i])
			if err != nil {
				return fmt.Errorf("failed to insert audience statistic: %w", err)
			}
		}
		return nil
	})
}

func (db *DB) AudienceStatistics() ([]domain.AudienceShareStat, error) {
	var stats []domain.AudienceShareStat
	err := db.Select(&stats, `SELECT content_id, content_type, share_count, date_time
		FROM audience_sharing_statistic ORDER BY share_count DESC, content_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list audience statistics: %w", err)
	}
	return stats, nil
}
