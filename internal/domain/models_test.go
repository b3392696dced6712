package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMediaType_Constants(t *testing.T) {
	tests := []struct {
		name      string
		mediaType MediaType
		expected  string
	}{
		{"sound", MediaTypeSound, "sound"},
		{"song", MediaTypeSong, "song"},
		{"author", MediaTypeAuthor, "author"},
		{"musicGenre", MediaTypeMusicGenre, "musicGenre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.mediaType) != tt.expected {
				t.Errorf("MediaType %s = %q, want %q", tt.name, tt.mediaType, tt.expected)
			}
		})
	}
}

func TestUpdateEvent_Succeeded(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name       string
		didSucceed *bool
		expected   bool
	}{
		{"not attempted", nil, false},
		{"failed", &no, false},
		{"succeeded", &yes, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := UpdateEvent{DidSucceed: tt.didSucceed}
			if e.Succeeded() != tt.expected {
				t.Errorf("Succeeded() = %v, want %v", e.Succeeded(), tt.expected)
			}
		})
	}
}

func TestAuthor_HasPhoto(t *testing.T) {
	empty, url := "", "https://example.com/a.jpg"

	if (&Author{}).HasPhoto() {
		t.Error("Expected nil photo to report false")
	}
	if (&Author{Photo: &empty}).HasPhoto() {
		t.Error("Expected empty photo to report false")
	}
	if !(&Author{Photo: &url}).HasPhoto() {
		t.Error("Expected photo URL to report true")
	}
}

func TestFolder_SortPreference(t *testing.T) {
	f := Folder{}
	if f.SortPreference() != FolderSortDateAdded {
		t.Errorf("Expected default sort by date added, got %d", f.SortPreference())
	}

	pref := FolderSortTitle
	f.UserSortPreference = &pref
	if f.SortPreference() != FolderSortTitle {
		t.Errorf("Expected sort by title, got %d", f.SortPreference())
	}
}

func TestContent_Accessors(t *testing.T) {
	added := NewISOTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	sound := SoundContent(Sound{ID: "s1", Title: "Sound", AuthorName: "Author", Duration: 3.5, DateAdded: added})
	if sound.Kind != ContentKindSound {
		t.Errorf("Expected kind sound, got %s", sound.Kind)
	}
	if sound.ID() != "s1" || sound.Title() != "Sound" || sound.AuthorName() != "Author" {
		t.Errorf("Unexpected sound accessors: %s %s %s", sound.ID(), sound.Title(), sound.AuthorName())
	}
	if sound.Duration() != 3.5 {
		t.Errorf("Expected duration 3.5, got %v", sound.Duration())
	}
	if !sound.DateAdded().Equal(added.Time) {
		t.Errorf("Expected date added %v, got %v", added.Time, sound.DateAdded())
	}

	song := SongContent(Song{ID: "g1", Title: "Song", IsOffensive: true})
	if song.Kind != ContentKindSong {
		t.Errorf("Expected kind song, got %s", song.Kind)
	}
	if song.ID() != "g1" || !song.IsOffensive() {
		t.Errorf("Unexpected song accessors: %s %v", song.ID(), song.IsOffensive())
	}

	var zero Content
	if zero.ID() != "" || zero.Duration() != 0 {
		t.Error("Expected zero content to return zero values")
	}
}

func TestContent_JSON(t *testing.T) {
	c := SoundContent(Sound{ID: "s1", Title: "Sound"})
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["kind"] != "sound" {
		t.Errorf("Expected kind sound, got %v", decoded["kind"])
	}
	if _, ok := decoded["song"]; ok {
		t.Error("Expected song key to be omitted")
	}
}

func TestErrors(t *testing.T) {
	notFound := fmt.Errorf("delete: %w", NewNotFound(EntityFolder, "f1"))
	if !errors.Is(notFound, ErrNotFound) {
		t.Error("Expected wrapped NotFoundError to match ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(notFound, &nf) || nf.Entity != EntityFolder {
		t.Errorf("Expected NotFoundError for folder, got %v", notFound)
	}

	dup := NewDuplicateKey(EntityFavorite, "s1")
	if !errors.Is(dup, ErrDuplicateKey) {
		t.Error("Expected DuplicateKeyError to match ErrDuplicateKey")
	}
	if errors.Is(dup, ErrNotFound) {
		t.Error("Expected DuplicateKeyError not to match ErrNotFound")
	}

	internal := NewInternal("author", "2 rows for id a1")
	if !errors.Is(internal, ErrInternal) {
		t.Error("Expected InternalError to match ErrInternal")
	}
	if internal.Error() != "author: 2 rows for id a1" {
		t.Errorf("Unexpected message: %s", internal.Error())
	}
}
