package models

import "time"

// LibraryItem is one manga saved to a device's library. Devices are
// anonymous; DeviceID is a server-minted UUID the client echoes back.
type LibraryItem struct {
	DeviceID    string    `json:"device_id"`
	MangaID     string    `json:"manga_id"`
	Title       string    `json:"title"`
	CoverURL    string    `json:"cover_url,omitempty"`
	LastChapter string    `json:"last_chapter,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// ProgressEntry records the furthest chapter read per (device, manga, source).
type ProgressEntry struct {
	DeviceID  string    `json:"device_id"`
	MangaID   string    `json:"manga_id"`
	Source    string    `json:"source"`
	ChapterID string    `json:"chapter_id"`
	Chapter   string    `json:"chapter,omitempty"`
	Page      int       `json:"page"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one "recently read" row, newest first.
type HistoryEntry struct {
	DeviceID  string    `json:"device_id"`
	MangaID   string    `json:"manga_id"`
	Title     string    `json:"title"`
	ChapterID string    `json:"chapter_id"`
	Chapter   string    `json:"chapter,omitempty"`
	Source    string    `json:"source"`
	ReadAt    time.Time `json:"read_at"`
}
