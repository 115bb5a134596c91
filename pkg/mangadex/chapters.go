package mangadex

import (
	"context"
	"net/url"
	"strconv"

	"mangafuse/pkg/models"
)

type FeedOptions struct {
	Limit              int
	Offset             int
	TranslatedLanguage string // default "en"
	Order              string // "asc" or "desc" (default)
}

// GetMangaFeed fetches one server-side page of a manga's chapter feed.
// Total in the result is the full chapter count for the title, which is why
// a limit-1 request doubles as a cheap count probe.
func (c *Client) GetMangaFeed(ctx context.Context, id string, opts FeedOptions) (*models.PaginatedChapters, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 30
	}
	lang := opts.TranslatedLanguage
	if lang == "" {
		lang = "en"
	}
	order := opts.Order
	if order == "" {
		order = "desc"
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("translatedLanguage[]", lang)
	params.Set("order[chapter]", order)
	params.Set("includes[]", "scanlation_group")
	appendContentRatings(params)

	var raw mdChapterList
	if err := c.getJSON(ctx, "/manga/"+id+"/feed", params, &raw); err != nil {
		return nil, err
	}

	out := make([]models.Chapter, 0, len(raw.Data))
	for _, item := range raw.Data {
		out = append(out, normalizeChapter(item))
	}
	return &models.PaginatedChapters{
		Data:   out,
		Total:  raw.Total,
		Offset: raw.Offset,
		Limit:  raw.Limit,
	}, nil
}

// GetChapterPages resolves a chapter's page file names via the at-home
// server endpoint.
func (c *Client) GetChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error) {
	var raw struct {
		BaseURL string `json:"baseUrl"`
		Chapter struct {
			Hash      string   `json:"hash"`
			Data      []string `json:"data"`
			DataSaver []string `json:"dataSaver"`
		} `json:"chapter"`
	}
	if err := c.getJSON(ctx, "/at-home/server/"+chapterID, nil, &raw); err != nil {
		return nil, err
	}

	return &models.ChapterPages{
		Source:    "mangadex",
		BaseURL:   raw.BaseURL,
		Hash:      raw.Chapter.Hash,
		Data:      raw.Chapter.Data,
		DataSaver: raw.Chapter.DataSaver,
	}, nil
}
