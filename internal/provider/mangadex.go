package provider

import (
	"context"

	"mangafuse/internal/matching"
	"mangafuse/pkg/mangadex"
	"mangafuse/pkg/models"
)

// MangaDex is the canonical provider: a thin adapter over the API client.
type MangaDex struct {
	client *mangadex.Client
}

func NewMangaDex(client *mangadex.Client) *MangaDex {
	return &MangaDex{client: client}
}

func (p *MangaDex) Name() string                    { return "mangadex" }
func (p *MangaDex) DisplayName() string             { return "MangaDex" }
func (p *MangaDex) Type() Type                      { return TypeManga }
func (p *MangaDex) NeedsImageProxy() bool           { return false }
func (p *MangaDex) ImageHeaders() map[string]string { return nil }

func (p *MangaDex) Search(ctx context.Context, query string) ([]models.ProviderSearchResult, error) {
	page, err := p.client.SearchManga(ctx, query, mangadex.SearchOptions{Limit: 10})
	if err != nil {
		return nil, err
	}

	out := make([]models.ProviderSearchResult, 0, len(page.Data))
	for _, m := range page.Data {
		out = append(out, mdSearchResult(m))
	}
	return out, nil
}

// mdSearchResult maps a canonical listing onto the provider search shape.
// LastChapter may be fractional ("12.5"); its integer part is the count.
func mdSearchResult(m models.Manga) models.ProviderSearchResult {
	image := ""
	if m.CoverFileName != "" {
		image = mangadex.CoverURL(m.ID, m.CoverFileName, "256")
	}
	return models.ProviderSearchResult{
		SourceID:     m.ID,
		Title:        m.Title,
		ChapterCount: matching.LeadingInt(m.LastChapter),
		Status:       m.Status,
		Image:        image,
	}
}

// GetChapters pages through the full feed. Used when a complete chapter list
// is needed (navigation over a paginated UI view); regular listing goes
// through the client's server-side pagination instead.
func (p *MangaDex) GetChapters(ctx context.Context, sourceID string) ([]models.Chapter, error) {
	var chapters []models.Chapter
	const limit = 100
	offset := 0

	for {
		page, err := p.client.GetMangaFeed(ctx, sourceID, mangadex.FeedOptions{
			Limit:  limit,
			Offset: offset,
			Order:  "desc",
		})
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, page.Data...)
		if len(chapters) >= page.Total || len(page.Data) < limit {
			break
		}
		offset += limit
	}
	return chapters, nil
}

func (p *MangaDex) GetChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error) {
	return p.client.GetChapterPages(ctx, chapterID)
}
