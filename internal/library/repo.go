package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mangafuse/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// --- library ---

func (r *Repo) Upsert(ctx context.Context, item models.LibraryItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO library (device_id, manga_id, title, cover_url, last_chapter, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id, manga_id) DO UPDATE SET
		  title = excluded.title,
		  cover_url = excluded.cover_url,
		  last_chapter = excluded.last_chapter
	`, item.DeviceID, item.MangaID, item.Title, item.CoverURL, item.LastChapter, item.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert library: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, deviceID, mangaID string) (*models.LibraryItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT device_id, manga_id, title, cover_url, last_chapter, added_at
		FROM library
		WHERE device_id = ? AND manga_id = ?
	`, deviceID, mangaID)

	var (
		item        models.LibraryItem
		coverURL    sql.NullString
		lastChapter sql.NullString
	)
	if err := row.Scan(&item.DeviceID, &item.MangaID, &item.Title, &coverURL, &lastChapter, &item.AddedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan library item: %w", err)
	}
	item.CoverURL = coverURL.String
	item.LastChapter = lastChapter.String
	return &item, nil
}

func (r *Repo) List(ctx context.Context, deviceID string, limit, offset int) ([]models.LibraryItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM library WHERE device_id = ?`, deviceID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count library: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT device_id, manga_id, title, cover_url, last_chapter, added_at
		FROM library
		WHERE device_id = ?
		ORDER BY added_at DESC
		LIMIT ? OFFSET ?
	`, deviceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	out := make([]models.LibraryItem, 0, limit)
	for rows.Next() {
		var (
			item        models.LibraryItem
			coverURL    sql.NullString
			lastChapter sql.NullString
		)
		if err := rows.Scan(&item.DeviceID, &item.MangaID, &item.Title, &coverURL, &lastChapter, &item.AddedAt); err != nil {
			return nil, 0, fmt.Errorf("scan library item: %w", err)
		}
		item.CoverURL = coverURL.String
		item.LastChapter = lastChapter.String
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

func (r *Repo) Delete(ctx context.Context, deviceID, mangaID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM library WHERE device_id = ? AND manga_id = ?`, deviceID, mangaID)
	if err != nil {
		return false, fmt.Errorf("delete library item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// --- reading progress ---

func (r *Repo) UpsertProgress(ctx context.Context, entry models.ProgressEntry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reading_progress (device_id, manga_id, source, chapter_id, chapter, page, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id, manga_id, source) DO UPDATE SET
		  chapter_id = excluded.chapter_id,
		  chapter = excluded.chapter,
		  page = excluded.page,
		  updated_at = excluded.updated_at
	`, entry.DeviceID, entry.MangaID, entry.Source, entry.ChapterID, entry.Chapter, entry.Page, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// ListProgress returns the device's progress for one manga across all
// sources, most recently updated first.
func (r *Repo) ListProgress(ctx context.Context, deviceID, mangaID string) ([]models.ProgressEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT device_id, manga_id, source, chapter_id, chapter, page, updated_at
		FROM reading_progress
		WHERE device_id = ? AND manga_id = ?
		ORDER BY updated_at DESC
	`, deviceID, mangaID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []models.ProgressEntry
	for rows.Next() {
		var (
			entry   models.ProgressEntry
			chapter sql.NullString
		)
		if err := rows.Scan(&entry.DeviceID, &entry.MangaID, &entry.Source, &entry.ChapterID, &chapter, &entry.Page, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		entry.Chapter = chapter.String
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// --- read history ---

func (r *Repo) AddHistory(ctx context.Context, entry models.HistoryEntry) error {
	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO read_history (device_id, manga_id, title, chapter_id, chapter, source, read_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.DeviceID, entry.MangaID, entry.Title, entry.ChapterID, entry.Chapter, entry.Source, entry.ReadAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *Repo) ListHistory(ctx context.Context, deviceID string, limit, offset int) ([]models.HistoryEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM read_history WHERE device_id = ?`, deviceID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT device_id, manga_id, title, chapter_id, chapter, source, read_at
		FROM read_history
		WHERE device_id = ?
		ORDER BY read_at DESC
		LIMIT ? OFFSET ?
	`, deviceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry   models.HistoryEntry
			chapter sql.NullString
		)
		if err := rows.Scan(&entry.DeviceID, &entry.MangaID, &entry.Title, &entry.ChapterID, &chapter, &entry.Source, &entry.ReadAt); err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		entry.Chapter = chapter.String
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

func (r *Repo) ClearHistory(ctx context.Context, deviceID string) error {
	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM read_history WHERE device_id = ?`, deviceID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
