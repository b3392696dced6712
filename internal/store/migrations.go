package store

import (
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
)

// Migration is one forward-only schema change.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

const migrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at TEXT NOT NULL
);`

// Migrations lists every schema change in the order it must be applied.
// Entries are append-only.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "content core",
		SQL: `
CREATE TABLE IF NOT EXISTS author (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	photo TEXT,
	description TEXT
);

CREATE TABLE IF NOT EXISTS sound (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author_id TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	duration REAL NOT NULL DEFAULT 0,
	is_offensive BOOLEAN NOT NULL DEFAULT 0,
	date_added TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS music_genre (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS song (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author_id TEXT NOT NULL,
	genre_id TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	duration REAL NOT NULL DEFAULT 0,
	is_offensive BOOLEAN NOT NULL DEFAULT 0,
	date_added TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorite (
	content_id TEXT PRIMARY KEY,
	date_added TEXT NOT NULL
);`,
	},
	{
		Version:     2,
		Description: "server origin flag and author links",
		SQL: `
ALTER TABLE sound ADD COLUMN is_from_server BOOLEAN NOT NULL DEFAULT 0;
ALTER TABLE song ADD COLUMN is_from_server BOOLEAN NOT NULL DEFAULT 0;
ALTER TABLE author ADD COLUMN external_links TEXT;`,
	},
	{
		Version:     3,
		Description: "user folders",
		SQL: `
CREATE TABLE IF NOT EXISTS user_folder (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	background_color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_folder_content (
	folder_id TEXT NOT NULL REFERENCES user_folder(id) ON DELETE CASCADE,
	content_id TEXT NOT NULL,
	date_added TEXT NOT NULL,
	PRIMARY KEY (folder_id, content_id)
);`,
	},
	{
		Version:     4,
		Description: "update events and sync log",
		SQL: `
CREATE TABLE IF NOT EXISTS update_event (
	id TEXT PRIMARY KEY,
	content_id TEXT NOT NULL,
	date_time TEXT NOT NULL,
	media_type TEXT NOT NULL,
	event_type TEXT NOT NULL,
	did_succeed BOOLEAN
);

CREATE TABLE IF NOT EXISTS sync_log (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	log_type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date_time TEXT NOT NULL,
	update_event_id TEXT NOT NULL DEFAULT '',
	media_type TEXT NOT NULL DEFAULT '',
	content_id TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Version:     5,
		Description: "share logs and audience statistics",
		SQL: `
CREATE TABLE IF NOT EXISTS user_share_log (
	id TEXT PRIMARY KEY,
	install_id TEXT NOT NULL,
	content_id TEXT NOT NULL,
	content_type TEXT NOT NULL,
	destination TEXT NOT NULL DEFAULT '',
	date_time TEXT NOT NULL,
	sent_to_server BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS audience_sharing_statistic (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content_id TEXT NOT NULL,
	content_type TEXT NOT NULL,
	share_count INTEGER NOT NULL DEFAULT 0,
	date_time TEXT NOT NULL
);`,
	},
	{
		Version:     6,
		Description: "pinned reactions",
		SQL: `
CREATE TABLE IF NOT EXISTS pinned_reaction (
	reaction_id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0,
	pinned_at TEXT NOT NULL
);`,
	},
	{
		Version:     7,
		Description: "podcast episodes and listening state",
		SQL: `
CREATE TABLE IF NOT EXISTS podcast_episode (
	id TEXT PRIMARY KEY,
	podcast_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	pub_date TEXT NOT NULL,
	duration REAL NOT NULL DEFAULT 0,
	remote_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS episode_bookmark (
	id TEXT PRIMARY KEY,
	episode_id TEXT NOT NULL,
	timestamp REAL NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS episode_favorite (
	episode_id TEXT PRIMARY KEY,
	date_added TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS episode_listen_log (
	id TEXT PRIMARY KEY,
	episode_id TEXT NOT NULL,
	podcast_id TEXT NOT NULL DEFAULT '',
	started_at TEXT NOT NULL,
	ended_at TEXT NOT NULL,
	listened_seconds REAL NOT NULL DEFAULT 0,
	did_finish BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS episode_played (
	episode_id TEXT PRIMARY KEY,
	date_time TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS episode_progress (
	episode_id TEXT PRIMARY KEY,
	playback_time REAL NOT NULL DEFAULT 0,
	duration REAL NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);`,
	},
	{
		Version:     8,
		Description: "folder sort preference and version",
		SQL: `
ALTER TABLE user_folder ADD COLUMN user_sort_preference INTEGER;
ALTER TABLE user_folder ADD COLUMN version TEXT NOT NULL DEFAULT '1';`,
	},
	{
		Version:     9,
		Description: "query indexes",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_user_share_log_date ON user_share_log(date_time);
CREATE INDEX IF NOT EXISTS idx_user_share_log_sent ON user_share_log(sent_to_server);
CREATE INDEX IF NOT EXISTS idx_audience_statistic_date ON audience_sharing_statistic(date_time);
CREATE INDEX IF NOT EXISTS idx_update_event_date ON update_event(date_time);
CREATE INDEX IF NOT EXISTS idx_sync_log_date ON sync_log(date_time);
CREATE INDEX IF NOT EXISTS idx_sound_author ON sound(author_id);
CREATE INDEX IF NOT EXISTS idx_song_genre ON song(genre_id);
CREATE INDEX IF NOT EXISTS idx_episode_listen_log_episode ON episode_listen_log(episode_id);`,
	},
	{
		Version:     10,
		Description: "settings",
		SQL: `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	},
}

// migrate creates the migrations table when missing and applies every
// pending migration in order, each in its own transaction.
func (db *DB) migrate() error {
	if _, err := db.root.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	pending, err := db.PendingMigrations()
	if err != nil {
		return err
	}

	for _, m := range pending {
		tx, err := db.root.Beginx()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback() //nolint:errcheck // already failing
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, domain.Now(),
		); err != nil {
			tx.Rollback() //nolint:errcheck // already failing
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version, or 0.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// PendingMigrations returns the migrations not yet recorded as applied.
func (db *DB) PendingMigrations() ([]Migration, error) {
	var applied []int
	if err := db.Select(&applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	var pending []Migration
	for _, m := range Migrations {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Version     int            `db:"version"`
	Description string         `db:"description"`
	AppliedAt   domain.ISOTime `db:"applied_at"`
}

// AppliedMigrations lists recorded migrations, oldest first.
func (db *DB) AppliedMigrations() ([]AppliedMigration, error) {
	var rows []AppliedMigration
	err := db.Select(&rows, "SELECT version, description, applied_at FROM schema_migrations ORDER BY version")
	return rows, err
}
