package dto

import (
	"strings"

	"github.com/cesargomez89/soundboard/internal/domain"
)

type FavoriteRequest struct {
	ContentID string `json:"contentId"`
}

func (r *FavoriteRequest) Validate() []ValidationError {
	return requireField("contentId", r.ContentID)
}

type FolderRequest struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	BackgroundColor string `json:"backgroundColor"`
}

func (r *FolderRequest) Validate() []ValidationError {
	errs := requireField("name", r.Name)
	if len(r.Name) > 100 {
		errs = append(errs, ValidationError{Field: "name", Message: "must be at most 100 characters"})
	}
	return errs
}

type FolderContentRequest struct {
	ContentID string `json:"contentId"`
}

func (r *FolderContentRequest) Validate() []ValidationError {
	return requireField("contentId", r.ContentID)
}

type FolderSortRequest struct {
	Sort *domain.FolderSort `json:"sort"`
}

func (r *FolderSortRequest) Validate() []ValidationError {
	if r.Sort == nil {
		return []ValidationError{{Field: "sort", Message: "is required"}}
	}
	switch *r.Sort {
	case domain.FolderSortDateAdded, domain.FolderSortTitle, domain.FolderSortAuthor:
		return nil
	}
	return []ValidationError{{Field: "sort", Message: "must be 0 (date added), 1 (title) or 2 (author)"}}
}

type ShareRequest struct {
	ContentID   string             `json:"contentId"`
	ContentType domain.ContentKind `json:"contentType"`
	Destination string             `json:"destination"`
}

func (r *ShareRequest) Validate() []ValidationError {
	errs := requireField("contentId", r.ContentID)
	if r.ContentType != domain.ContentKindSound && r.ContentType != domain.ContentKindSong {
		errs = append(errs, ValidationError{Field: "contentType", Message: "must be 'sound' or 'song'"})
	}
	return errs
}

func requireField(field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: field, Message: "is required"}}
	}
	return nil
}
