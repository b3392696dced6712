package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

// ShareServer is the part of the content server that receives and serves
// share statistics.
type ShareServer interface {
	PostShareCount(ctx context.Context, stat domain.ShareCountStat) error
	AudienceStatistics(ctx context.Context) ([]domain.AudienceShareStat, error)
}

type ShareService struct {
	Repo     *store.DB
	Settings *store.SettingsRepo
	Server   ShareServer
	Logger   *logger.Logger

	mu        sync.Mutex
	installID string
}

// NewShareService builds the service. A non-empty installID overrides the
// one stored in settings.
func NewShareService(repo *store.DB, server ShareServer, installID string, log *logger.Logger) *ShareService {
	return &ShareService{
		Repo:      repo,
		Settings:  store.NewSettingsRepo(repo),
		Server:    server,
		Logger:    log,
		installID: installID,
	}
}

// InstallID returns the id identifying this install to the server, creating
// and persisting one on first use.
func (s *ShareService) InstallID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.installID != "" {
		return s.installID, nil
	}

	id, err := s.Settings.Get(store.SettingInstallID)
	if err != nil {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}
	if id == "" {
		id = uuid.New().String()
		if err := s.Settings.Set(store.SettingInstallID, id); err != nil {
			return "", fmt.Errorf("failed to save install id: %w", err)
		}
		s.Logger.Info("Generated install id", "install_id", id)
	}
	s.installID = id
	return id, nil
}

func (s *ShareService) RecordShare(contentID string, kind domain.ContentKind, destination string) (*domain.UserShareLog, error) {
	if contentID == "" {
		return nil, domain.NewInvalidInput("contentId", "is required")
	}
	if kind != domain.ContentKindSound && kind != domain.ContentKindSong {
		return nil, domain.NewInvalidInput("contentType", fmt.Sprintf("%q is not sound or song", kind))
	}

	installID, err := s.InstallID()
	if err != nil {
		return nil, err
	}

	l := &domain.UserShareLog{
		InstallID:   installID,
		ContentID:   contentID,
		ContentType: kind,
		Destination: destination,
	}
	if err := s.Repo.InsertUserShareLog(l); err != nil {
		return nil, err
	}
	return l, nil
}

// SendPending posts unsent share logs to the server, oldest first, and marks
// the accepted ones as sent. It stops at the first failure; the remaining
// rows stay unsent for the next pass.
func (s *ShareService) SendPending(ctx context.Context) (int, error) {
	logs, err := s.Repo.UnsentUserShareLogs()
	if err != nil {
		return 0, err
	}
	if len(logs) == 0 {
		return 0, nil
	}

	var sent []string
	var postErr error
	for _, l := range logs {
		if err := ctx.Err(); err != nil {
			postErr = err
			break
		}
		stat := domain.ShareCountStat{
			InstallID:   l.InstallID,
			ContentID:   l.ContentID,
			ContentType: l.ContentType,
			ShareCount:  1,
			DateTime:    l.DateTime,
		}
		if err := s.Server.PostShareCount(ctx, stat); err != nil {
			postErr = err
			break
		}
		sent = append(sent, l.ID)
	}

	if err := s.Repo.MarkUserShareLogsSent(sent); err != nil {
		return 0, err
	}
	if postErr != nil {
		s.Logger.Warn("Share log upload interrupted", "sent", len(sent), "pending", len(logs)-len(sent), "error", postErr)
		return len(sent), postErr
	}
	s.Logger.Info("Share logs sent", "count", len(sent))
	return len(sent), nil
}

// RefreshAudience replaces the local audience statistics with the server's.
func (s *ShareService) RefreshAudience(ctx context.Context) (int, error) {
	stats, err := s.Server.AudienceStatistics(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Repo.ReplaceAudienceStatistics(ctx, stats); err != nil {
		return 0, err
	}
	if err := s.Settings.Set(store.SettingLastStatsAt, domain.Now().String()); err != nil {
		s.Logger.Warn("Failed to record audience refresh time", "error", err)
	}
	return len(stats), nil
}

func (s *ShareService) PendingCount() (int, error) {
	logs, err := s.Repo.UnsentUserShareLogs()
	if err != nil {
		return 0, err
	}
	return len(logs), nil
}
