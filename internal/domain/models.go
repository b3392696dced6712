package domain

// MediaType identifies what an update event refers to.
type MediaType string

const (
	MediaTypeSound      MediaType = "sound"
	MediaTypeSong       MediaType = "song"
	MediaTypeAuthor     MediaType = "author"
	MediaTypeMusicGenre MediaType = "musicGenre"
)

// EventType is the kind of server-side change an update event describes.
type EventType string

const (
	EventTypeCreated         EventType = "created"
	EventTypeMetadataUpdated EventType = "metadataUpdated"
	EventTypeFileUpdated     EventType = "fileUpdated"
	EventTypeDeleted         EventType = "deleted"
)

type SyncLogType string

const (
	SyncLogSuccess SyncLogType = "success"
	SyncLogError   SyncLogType = "error"
)

// FolderSort is the user's preferred ordering of a folder's content.
type FolderSort int

const (
	FolderSortDateAdded FolderSort = iota
	FolderSortTitle
	FolderSortAuthor
)

// Sound is a short meme audio clip.
type Sound struct {
	ID           string  `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	AuthorID     string  `json:"authorId" db:"author_id"`
	AuthorName   string  `json:"authorName,omitempty" db:"author_name"`
	Description  string  `json:"description" db:"description"`
	Duration     float64 `json:"duration" db:"duration"`
	IsOffensive  bool    `json:"isOffensive" db:"is_offensive"`
	DateAdded    ISOTime `json:"dateAdded" db:"date_added"`
	IsFromServer bool    `json:"isFromServer" db:"is_from_server"`
}

// Song is a full-length track, grouped by genre.
type Song struct {
	ID           string  `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	AuthorID     string  `json:"authorId" db:"author_id"`
	AuthorName   string  `json:"authorName,omitempty" db:"author_name"`
	GenreID      string  `json:"genreId" db:"genre_id"`
	GenreName    string  `json:"genreName,omitempty" db:"genre_name"`
	Description  string  `json:"description" db:"description"`
	Duration     float64 `json:"duration" db:"duration"`
	IsOffensive  bool    `json:"isOffensive" db:"is_offensive"`
	DateAdded    ISOTime `json:"dateAdded" db:"date_added"`
	IsFromServer bool    `json:"isFromServer" db:"is_from_server"`
}

type MusicGenre struct {
	ID     string `json:"id" db:"id"`
	Symbol string `json:"symbol" db:"symbol"`
	Name   string `json:"name" db:"name"`
}

// Author owns sounds. SoundCount is derived at read time.
type Author struct {
	ID            string      `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Photo         *string     `json:"photo,omitempty" db:"photo"`
	Description   *string     `json:"description,omitempty" db:"description"`
	ExternalLinks StringSlice `json:"externalLinks,omitempty" db:"external_links"`
	SoundCount    int         `json:"soundCount" db:"sound_count"`
}

// HasPhoto reports whether the author has a non-empty photo URL.
func (a *Author) HasPhoto() bool {
	return a.Photo != nil && *a.Photo != ""
}

type Favorite struct {
	ContentID string  `json:"contentId" db:"content_id"`
	DateAdded ISOTime `json:"dateAdded" db:"date_added"`
}

type Folder struct {
	ID                 string      `json:"id" db:"id"`
	Symbol             string      `json:"symbol" db:"symbol"`
	Name               string      `json:"name" db:"name"`
	BackgroundColor    string      `json:"backgroundColor" db:"background_color"`
	UserSortPreference *FolderSort `json:"userSortPreference,omitempty" db:"user_sort_preference"`
	Version            string      `json:"version,omitempty" db:"version"`
	CreatedAt          ISOTime     `json:"createdAt" db:"created_at"`
	ContentCount       int         `json:"contentCount" db:"content_count"`
}

// SortPreference returns the folder's sort order, defaulting to date added.
func (f *Folder) SortPreference() FolderSort {
	if f.UserSortPreference == nil {
		return FolderSortDateAdded
	}
	return *f.UserSortPreference
}

type FolderContent struct {
	FolderID  string  `json:"folderId" db:"folder_id"`
	ContentID string  `json:"contentId" db:"content_id"`
	DateAdded ISOTime `json:"dateAdded" db:"date_added"`
}

type PinnedReaction struct {
	ReactionID string  `json:"reactionId" db:"reaction_id"`
	Title      string  `json:"title" db:"title"`
	Image      string  `json:"image" db:"image"`
	Position   int     `json:"position" db:"position"`
	PinnedAt   ISOTime `json:"pinnedAt" db:"pinned_at"`
}

// UpdateEvent is a server-originated change descriptor. DidSucceed is nil
// until the event has been attempted.
type UpdateEvent struct {
	ID         string    `json:"id" db:"id"`
	ContentID  string    `json:"contentId" db:"content_id"`
	DateTime   ISOTime   `json:"dateTime" db:"date_time"`
	MediaType  MediaType `json:"mediaType" db:"media_type"`
	EventType  EventType `json:"eventType" db:"event_type"`
	DidSucceed *bool     `json:"didSucceed,omitempty" db:"did_succeed"`
}

// Succeeded reports whether the event has been applied.
func (e *UpdateEvent) Succeeded() bool {
	return e.DidSucceed != nil && *e.DidSucceed
}

// SyncLog is one append-only audit row for a processed update event.
type SyncLog struct {
	ID            string      `json:"id" db:"id"`
	LogType       SyncLogType `json:"logType" db:"log_type"`
	Description   string      `json:"description" db:"description"`
	DateTime      ISOTime     `json:"dateTime" db:"date_time"`
	UpdateEventID string      `json:"updateEventId" db:"update_event_id"`
	MediaType     MediaType   `json:"mediaType" db:"media_type"`
	ContentID     string      `json:"contentId" db:"content_id"`
}

// UserShareLog records one share performed on this install.
type UserShareLog struct {
	ID           string      `json:"id" db:"id"`
	InstallID    string      `json:"installId" db:"install_id"`
	ContentID    string      `json:"contentId" db:"content_id"`
	ContentType  ContentKind `json:"contentType" db:"content_type"`
	Destination  string      `json:"destination" db:"destination"`
	DateTime     ISOTime     `json:"dateTime" db:"date_time"`
	SentToServer bool        `json:"sentToServer" db:"sent_to_server"`
}

// AudienceShareStat is a server-wide share count for one piece of content.
type AudienceShareStat struct {
	ContentID   string      `json:"contentId" db:"content_id"`
	ContentType ContentKind `json:"contentType" db:"content_type"`
	ShareCount  int         `json:"shareCount" db:"share_count"`
	DateTime    ISOTime     `json:"dateTime" db:"date_time"`
}

// ShareCountStat is the payload sent to the server for each local share.
type ShareCountStat struct {
	InstallID   string      `json:"installId"`
	ContentID   string      `json:"contentId"`
	ContentType ContentKind `json:"contentType"`
	ShareCount  int         `json:"shareCount"`
	DateTime    ISOTime     `json:"dateTime"`
}

type PodcastEpisode struct {
	ID          string  `json:"id" db:"id"`
	PodcastID   string  `json:"podcastId" db:"podcast_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	PubDate     ISOTime `json:"pubDate" db:"pub_date"`
	Duration    float64 `json:"duration" db:"duration"`
	RemoteURL   string  `json:"remoteUrl" db:"remote_url"`
}

type EpisodeBookmark struct {
	ID        string  `json:"id" db:"id"`
	EpisodeID string  `json:"episodeId" db:"episode_id"`
	Timestamp float64 `json:"timestamp" db:"timestamp"`
	Title     string  `json:"title" db:"title"`
	Note      string  `json:"note" db:"note"`
	CreatedAt ISOTime `json:"createdAt" db:"created_at"`
}

type EpisodeListenLog struct {
	ID              string  `json:"id" db:"id"`
	EpisodeID       string  `json:"episodeId" db:"episode_id"`
	PodcastID       string  `json:"podcastId" db:"podcast_id"`
	StartedAt       ISOTime `json:"startedAt" db:"started_at"`
	EndedAt         ISOTime `json:"endedAt" db:"ended_at"`
	ListenedSeconds float64 `json:"listenedSeconds" db:"listened_seconds"`
	DidFinish       bool    `json:"didFinish" db:"did_finish"`
}

type EpisodeProgress struct {
	EpisodeID   string  `json:"episodeId" db:"episode_id"`
	CurrentTime float64 `json:"currentTime" db:"playback_time"`
	Duration    float64 `json:"duration" db:"duration"`
	UpdatedAt   ISOTime `json:"updatedAt" db:"updated_at"`
}

// ChartEntry is one ranked row of a top chart.
type ChartEntry struct {
	ID    string `json:"id" db:"id"`
	Total int    `json:"total" db:"total"`
}
