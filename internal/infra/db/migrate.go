package db

import (
	"database/sql"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS announcements (
    id           TEXT PRIMARY KEY,
    owner_id     TEXT NOT NULL,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    type         VARCHAR(16) NOT NULL,
    priority     VARCHAR(16) NOT NULL,
    status       VARCHAR(16) NOT NULL,
    timezone     TEXT NOT NULL DEFAULT 'UTC',
    image_url    TEXT NOT NULL DEFAULT '',
    link_url     TEXT NOT NULL DEFAULT '',
    link_text    TEXT NOT NULL DEFAULT '',
    scheduled_at TIMESTAMPTZ,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_announcement_status CHECK (status IN ('draft', 'scheduled', 'published', 'archived')),
    CONSTRAINT chk_announcement_type CHECK (type IN ('feature', 'update', 'news', 'bugfix')),
    CONSTRAINT chk_announcement_priority CHECK (priority IN ('low', 'medium', 'high'))
)`

// Times are stored as unix milliseconds in SQLite.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS announcements (
    id           TEXT PRIMARY KEY,
    owner_id     TEXT NOT NULL,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    type         TEXT NOT NULL CHECK (type IN ('feature', 'update', 'news', 'bugfix')),
    priority     TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
    status       TEXT NOT NULL CHECK (status IN ('draft', 'scheduled', 'published', 'archived')),
    timezone     TEXT NOT NULL DEFAULT 'UTC',
    image_url    TEXT NOT NULL DEFAULT '',
    link_url     TEXT NOT NULL DEFAULT '',
    link_text    TEXT NOT NULL DEFAULT '',
    scheduled_at INTEGER,
    published_at INTEGER,
    created_at   INTEGER NOT NULL,
    updated_at   INTEGER NOT NULL
)`

var indexes = []string{
	// owner listing, newest first
	`CREATE INDEX IF NOT EXISTS idx_announcements_owner_created ON announcements(owner_id, created_at DESC)`,
	// widget fetch: owner + published, ordered by published_at
	`CREATE INDEX IF NOT EXISTS idx_announcements_owner_status_published ON announcements(owner_id, status, published_at DESC)`,
	// publish job scan
	`CREATE INDEX IF NOT EXISTS idx_announcements_status_scheduled ON announcements(status, scheduled_at)`,
}

// MigrateUp creates the announcements table and its indexes for the dialect.
// It is idempotent.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	schema := postgresSchema
	switch dialect {
	case DialectPostgres:
	case DialectSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: create announcements: %w", err)
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
