package domain

import "time"

// ContentKind tags the playable media variants.
type ContentKind string

const (
	ContentKindSound ContentKind = "sound"
	ContentKindSong  ContentKind = "song"
)

// Content is either a Sound or a Song. Exactly one of the pointers is set,
// matching Kind.
type Content struct {
	Kind  ContentKind `json:"kind"`
	Sound *Sound      `json:"sound,omitempty"`
	Song  *Song       `json:"song,omitempty"`
}

func SoundContent(s Sound) Content {
	return Content{Kind: ContentKindSound, Sound: &s}
}

func SongContent(s Song) Content {
	return Content{Kind: ContentKindSong, Song: &s}
}

func (c Content) ID() string {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.ID
	case ContentKindSong:
		return c.Song.ID
	}
	return ""
}

func (c Content) Title() string {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.Title
	case ContentKindSong:
		return c.Song.Title
	}
	return ""
}

func (c Content) AuthorID() string {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.AuthorID
	case ContentKindSong:
		return c.Song.AuthorID
	}
	return ""
}

func (c Content) AuthorName() string {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.AuthorName
	case ContentKindSong:
		return c.Song.AuthorName
	}
	return ""
}

func (c Content) Duration() float64 {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.Duration
	case ContentKindSong:
		return c.Song.Duration
	}
	return 0
}

func (c Content) IsOffensive() bool {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.IsOffensive
	case ContentKindSong:
		return c.Song.IsOffensive
	}
	return false
}

func (c Content) DateAdded() time.Time {
	switch c.Kind {
	case ContentKindSound:
		return c.Sound.DateAdded.Time
	case ContentKindSong:
		return c.Song.DateAdded.Time
	}
	return time.Time{}
}
