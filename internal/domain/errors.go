package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
)

// Entity names used in store errors.
const (
	EntitySound          = "sound"
	EntitySong           = "song"
	EntityAuthor         = "author"
	EntityGenre          = "genre"
	EntityFavorite       = "favorite"
	EntityFolder         = "folder"
	EntityFolderContent  = "folderContent"
	EntityPinnedReaction = "pinnedReaction"
	EntityBookmark       = "bookmark"
	EntityUpdateEvent    = "updateEvent"
	EntityEpisode        = "episode"
)

// NotFoundError is returned when an update or delete matches no row.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateKeyError is returned when an insert would break a uniqueness rule.
type DuplicateKeyError struct {
	Entity string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

func NewDuplicateKey(entity, key string) error {
	return &DuplicateKeyError{Entity: entity, Key: key}
}

// InternalError flags a data integrity violation, such as a lookup by
// primary key returning more than one row.
type InternalError struct {
	Op     string
	Detail string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

func NewInternal(op, detail string) error {
	return &InternalError{Op: op, Detail: detail}
}

// InvalidInputError rejects a caller-supplied value before any store work.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
