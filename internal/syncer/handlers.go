package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/storage"
	"github.com/cesargomez89/soundboard/internal/store"
	"github.com/cesargomez89/soundboard/internal/tagging"
)

// ContentServer is what the handlers and the reconciler need from the
// content server. *remote.Client implements it.
type ContentServer interface {
	CheckStatus(ctx context.Context) error
	UpdateEvents(ctx context.Context, since string) ([]domain.UpdateEvent, error)
	Sound(ctx context.Context, id string) (*domain.Sound, error)
	Song(ctx context.Context, id string) (*domain.Song, error)
	Author(ctx context.Context, id string) (*domain.Author, error)
	Genre(ctx context.Context, id string) (*domain.MusicGenre, error)
	DownloadFile(ctx context.Context, mediaType domain.MediaType, contentID, destPath string) (int64, error)
}

// fileFetcher downloads content files into the layout and stamps them.
type fileFetcher struct {
	Server ContentServer
	Layout *storage.Layout
}

// fetch downloads the file for a sound or song and returns the duration read
// from it, 0 when unknown. Tag problems are logged, not fatal.
func (f *fileFetcher) fetch(ctx context.Context, mediaType domain.MediaType, id, title, artist string, log *logger.Logger) (float64, error) {
	path, err := f.Layout.ContentPath(mediaType, id)
	if err != nil {
		return 0, err
	}

	n, err := f.Server.DownloadFile(ctx, mediaType, id, path)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s file: %w", mediaType, err)
	}
	log.Debug("Downloaded content file", "path", path, "bytes", n)

	info, err := tagging.Inspect(path)
	if err != nil {
		log.Warn("Could not inspect content file", "path", path, "error", err)
		return 0, nil
	}
	if info.ContentID != id {
		if err := tagging.Stamp(path, tagging.Metadata{ContentID: id, Title: title, Artist: artist}); err != nil {
			log.Warn("Could not stamp content file", "path", path, "error", err)
		}
	}
	return info.Duration, nil
}

func (f *fileFetcher) remove(mediaType domain.MediaType, id string, log *logger.Logger) {
	path, err := f.Layout.ContentPath(mediaType, id)
	if err != nil {
		return
	}
	if err := storage.RemoveFile(path); err != nil {
		log.Warn("Failed to remove content file", "path", path, "error", err)
	}
}

// ignoreNotFound treats deleting an already absent row as done.
func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// SoundHandler applies sound events.
type SoundHandler struct {
	Repo  *store.DB
	Files *fileFetcher
}

func (h *SoundHandler) Handle(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error {
	switch event.EventType {
	case domain.EventTypeCreated:
		sound, err := h.Files.Server.Sound(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch sound: %w", err)
		}
		sound.ID = event.ContentID
		duration, err := h.Files.fetch(ctx, domain.MediaTypeSound, sound.ID, sound.Title, sound.AuthorName, log.WithContent(sound.ID, sound.Title))
		if err != nil {
			return err
		}
		if sound.Duration <= 0 {
			sound.Duration = duration
		}
		sound.IsFromServer = true
		return persist(h.Repo.UpsertSound(sound))

	case domain.EventTypeMetadataUpdated:
		sound, err := h.Files.Server.Sound(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch sound: %w", err)
		}
		sound.ID = event.ContentID
		if sound.Duration <= 0 {
			if existing, err := h.Repo.Sound(sound.ID); err == nil && existing != nil {
				sound.Duration = existing.Duration
			}
		}
		return persist(h.Repo.UpdateSound(sound))

	case domain.EventTypeFileUpdated:
		existing, err := h.Repo.Sound(event.ContentID)
		if err != nil {
			return persist(err)
		}
		if existing == nil {
			return domain.NewNotFound(domain.EntitySound, event.ContentID)
		}
		duration, err := h.Files.fetch(ctx, domain.MediaTypeSound, existing.ID, existing.Title, existing.AuthorName, log.WithContent(existing.ID, existing.Title))
		if err != nil {
			return err
		}
		if duration > 0 && duration != existing.Duration {
			existing.Duration = duration
			return persist(h.Repo.UpdateSound(existing))
		}
		return nil

	case domain.EventTypeDeleted:
		if err := persist(ignoreNotFound(h.Repo.DeleteSound(event.ContentID))); err != nil {
			return err
		}
		h.Files.remove(domain.MediaTypeSound, event.ContentID, log)
		return nil
	}
	return unsupported(event)
}

// SongHandler applies song events.
type SongHandler struct {
	Repo  *store.DB
	Files *fileFetcher
}

func (h *SongHandler) Handle(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error {
	switch event.EventType {
	case domain.EventTypeCreated:
		song, err := h.Files.Server.Song(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch song: %w", err)
		}
		song.ID = event.ContentID
		duration, err := h.Files.fetch(ctx, domain.MediaTypeSong, song.ID, song.Title, song.AuthorName, log.WithContent(song.ID, song.Title))
		if err != nil {
			return err
		}
		if song.Duration <= 0 {
			song.Duration = duration
		}
		song.IsFromServer = true
		return persist(h.Repo.UpsertSong(song))

	case domain.EventTypeMetadataUpdated:
		song, err := h.Files.Server.Song(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch song: %w", err)
		}
		song.ID = event.ContentID
		if song.Duration <= 0 {
			if existing, err := h.Repo.Song(song.ID); err == nil && existing != nil {
				song.Duration = existing.Duration
			}
		}
		return persist(h.Repo.UpdateSong(song))

	case domain.EventTypeFileUpdated:
		existing, err := h.Repo.Song(event.ContentID)
		if err != nil {
			return persist(err)
		}
		if existing == nil {
			return domain.NewNotFound(domain.EntitySong, event.ContentID)
		}
		duration, err := h.Files.fetch(ctx, domain.MediaTypeSong, existing.ID, existing.Title, existing.AuthorName, log.WithContent(existing.ID, existing.Title))
		if err != nil {
			return err
		}
		if duration > 0 && duration != existing.Duration {
			existing.Duration = duration
			return persist(h.Repo.UpdateSong(existing))
		}
		return nil

	case domain.EventTypeDeleted:
		if err := persist(ignoreNotFound(h.Repo.DeleteSong(event.ContentID))); err != nil {
			return err
		}
		h.Files.remove(domain.MediaTypeSong, event.ContentID, log)
		return nil
	}
	return unsupported(event)
}

// AuthorHandler applies author events. Authors have no files.
type AuthorHandler struct {
	Repo   *store.DB
	Server ContentServer
}

func (h *AuthorHandler) Handle(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error {
	switch event.EventType {
	case domain.EventTypeCreated, domain.EventTypeMetadataUpdated:
		author, err := h.Server.Author(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch author: %w", err)
		}
		author.ID = event.ContentID
		if event.EventType == domain.EventTypeCreated {
			return persist(h.Repo.UpsertAuthor(author))
		}
		return persist(h.Repo.UpdateAuthor(author))

	case domain.EventTypeDeleted:
		return persist(ignoreNotFound(h.Repo.DeleteAuthor(event.ContentID)))
	}
	return unsupported(event)
}

// GenreHandler applies music genre events.
type GenreHandler struct {
	Repo   *store.DB
	Server ContentServer
}

func (h *GenreHandler) Handle(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error {
	switch event.EventType {
	case domain.EventTypeCreated, domain.EventTypeMetadataUpdated:
		genre, err := h.Server.Genre(ctx, event.ContentID)
		if err != nil {
			return fmt.Errorf("failed to fetch genre: %w", err)
		}
		genre.ID = event.ContentID
		if event.EventType == domain.EventTypeCreated {
			return persist(h.Repo.UpsertGenre(genre))
		}
		return persist(h.Repo.UpdateGenre(genre))

	case domain.EventTypeDeleted:
		return persist(ignoreNotFound(h.Repo.DeleteGenre(event.ContentID)))
	}
	return unsupported(event)
}
