package sync

import "time"

// Event is broadcast whenever a device's reader state changes.
// Type is one of "library.update", "library.delete", "progress.update".
type Event struct {
	Type     string    `json:"type"`
	DeviceID string    `json:"device_id"`
	MangaID  string    `json:"manga_id"`
	Source   string    `json:"source,omitempty"`
	Chapter  string    `json:"chapter,omitempty"`
	At       time.Time `json:"at"`
}
