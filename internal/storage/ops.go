// Package storage lays out downloaded content files under the data directory.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

func Sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune("<>:\"/\\|?*", r) {
			return -1
		}
		return r
	}, s)

	return strings.TrimRight(mapped, ". ")
}

// Layout resolves where content files live.
type Layout struct {
	Root string
}

func NewLayout(root string) *Layout {
	return &Layout{Root: root}
}

// Dir returns the directory for a media type, or "" for types without files.
func (l *Layout) Dir(mediaType domain.MediaType) string {
	switch mediaType {
	case domain.MediaTypeSound:
		return filepath.Join(l.Root, constants.SoundsDir)
	case domain.MediaTypeSong:
		return filepath.Join(l.Root, constants.SongsDir)
	}
	return ""
}

// ContentPath returns the file path for a sound or song.
func (l *Layout) ContentPath(mediaType domain.MediaType, contentID string) (string, error) {
	dir := l.Dir(mediaType)
	if dir == "" {
		return "", fmt.Errorf("media type %s has no content file", mediaType)
	}
	name := Sanitize(contentID)
	if name == "" {
		return "", fmt.Errorf("invalid content id %q", contentID)
	}
	return filepath.Join(dir, name+constants.ExtMP3), nil
}

// Prepare creates the content directories.
func (l *Layout) Prepare() error {
	for _, mt := range []domain.MediaType{domain.MediaTypeSound, domain.MediaTypeSong} {
		if err := EnsureDir(l.Dir(mt)); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", mt, err)
		}
	}
	return nil
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, constants.DirPermissions)
}

// WriteAtomic streams r into path through a temporary sibling file, so a
// reader never sees a partial file.
func WriteAtomic(path string, r io.Reader) (int64, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return 0, err
	}

	tmp := path + constants.ExtTmp
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		os.Remove(tmp) //nolint:errcheck // best effort
		return n, err
	}

	if err := MoveFile(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck // best effort
		return n, err
	}
	return n, nil
}

func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}
	return nil
}

// RemoveFile deletes path. A missing file is not an error.
func RemoveFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func VerifyFile(path, expectedHash string) (bool, error) {
	hash, err := HashFile(path)
	if err != nil {
		return false, err
	}
	return hash == expectedHash, nil
}
