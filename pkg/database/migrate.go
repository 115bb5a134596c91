package database

import (
	"database/sql"
	"fmt"
)

// schema holds all per-device reader state. No users, no auth: a device is
// identified by the UUID the server hands out on first contact.
const schema = `
CREATE TABLE IF NOT EXISTS library (
  device_id    TEXT NOT NULL,
  manga_id     TEXT NOT NULL,
  title        TEXT NOT NULL,
  cover_url    TEXT,
  last_chapter TEXT,
  added_at     TIMESTAMP NOT NULL,
  PRIMARY KEY (device_id, manga_id)
);

CREATE TABLE IF NOT EXISTS reading_progress (
  device_id  TEXT NOT NULL,
  manga_id   TEXT NOT NULL,
  source     TEXT NOT NULL,
  chapter_id TEXT NOT NULL,
  chapter    TEXT,
  page       INTEGER NOT NULL DEFAULT 0,
  updated_at TIMESTAMP NOT NULL,
  PRIMARY KEY (device_id, manga_id, source)
);

CREATE TABLE IF NOT EXISTS read_history (
  device_id  TEXT NOT NULL,
  manga_id   TEXT NOT NULL,
  title      TEXT NOT NULL,
  chapter_id TEXT NOT NULL,
  chapter    TEXT,
  source     TEXT NOT NULL,
  read_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_device_read_at
  ON read_history (device_id, read_at DESC);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
