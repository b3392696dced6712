// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort            = "8080"
	DefaultDataDir         = "data"
	DefaultDBFileName      = "soundboard.sqlite3"
	DefaultServerURL       = "http://127.0.0.1:3000"
	DefaultSyncInterval    = 15 * time.Minute
	DefaultRequestInterval = 250 * time.Millisecond
	DefaultHTTPTimeout     = 2 * time.Minute
	StatusHTTPTimeout      = 10 * time.Second
	DefaultRetryCount      = 3
	DefaultRetryBase       = 1 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Sync bookkeeping
const (
	// LastUpdateAll is returned when no update event exists yet and asks the
	// server for every event since the beginning.
	LastUpdateAll = "all"

	// SyncLogRetention is how many sync log rows are reported as recent.
	SyncLogRetention = 20
)

// Content queries
const (
	RandomSoundsLimit  = 12
	DefaultChartLimit  = 10
	MaxChartLimit      = 100
	StatsEpochYear     = 2022
	FirstRetrospective = 2023
)

// Database tables
const (
	SoundTable             = "sound"
	SongTable              = "song"
	AuthorTable            = "author"
	MusicGenreTable        = "music_genre"
	FavoriteTable          = "favorite"
	UserFolderTable        = "user_folder"
	UserFolderContentTable = "user_folder_content"
	PinnedReactionTable    = "pinned_reaction"
	PodcastEpisodeTable    = "podcast_episode"
	EpisodeBookmarkTable   = "episode_bookmark"
	EpisodeFavoriteTable   = "episode_favorite"
	EpisodeListenLogTable  = "episode_listen_log"
	EpisodePlayedTable     = "episode_played"
	EpisodeProgressTable   = "episode_progress"
	UpdateEventTable       = "update_event"
	SyncLogTable           = "sync_log"
	UserShareLogTable      = "user_share_log"
	AudienceStatTable      = "audience_sharing_statistic"
	SettingsTable          = "settings"
	MigrationsTable        = "schema_migrations"
)

// Content directories under the data dir
const (
	SoundsDir = "sounds"
	SongsDir  = "songs"
)

// File Extensions
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtTmp  = ".part"
)

// MIME Types
const (
	MimeTypeMP3  = "audio/mpeg"
	MimeTypeFLAC = "audio/flac"
	MimeTypeJSON = "application/json"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Server responses
const (
	// StatusCheckOK is the body the content server answers on its health route.
	StatusCheckOK = "Conexão OK"
)
