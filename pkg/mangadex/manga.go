package mangadex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"mangafuse/pkg/models"
)

var allContentRatings = []string{"safe", "suggestive", "erotica", "pornographic"}

func appendContentRatings(params url.Values) {
	for _, rating := range allContentRatings {
		params.Add("contentRating[]", rating)
	}
}

func appendIncludes(params url.Values) {
	params.Add("includes[]", "cover_art")
	params.Add("includes[]", "author")
	params.Add("includes[]", "artist")
}

type SearchOptions struct {
	Limit        int
	Offset       int
	IncludedTags []string
}

type MangaPage struct {
	Data   []models.Manga `json:"data"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

func (c *Client) SearchManga(ctx context.Context, query string, opts SearchOptions) (*MangaPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("title", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("order[relevance]", "desc")
	appendContentRatings(params)
	appendIncludes(params)
	for _, tag := range opts.IncludedTags {
		params.Add("includedTags[]", tag)
	}

	var raw mdMangaList
	if err := c.getJSON(ctx, "/manga", params, &raw); err != nil {
		return nil, err
	}
	return toMangaPage(raw), nil
}

func (c *Client) GetManga(ctx context.Context, id string) (*models.Manga, error) {
	params := url.Values{}
	appendContentRatings(params)
	appendIncludes(params)

	var raw struct {
		Data mdManga `json:"data"`
	}
	if err := c.getJSON(ctx, "/manga/"+id, params, &raw); err != nil {
		return nil, err
	}
	m := normalizeManga(raw.Data)
	return &m, nil
}

// listBy fetches a manga list sorted by the given order key.
func (c *Client) listBy(ctx context.Context, orderKey string, limit int, includedTags []string) ([]models.Manga, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", "0")
	params.Set(fmt.Sprintf("order[%s]", orderKey), "desc")
	appendContentRatings(params)
	appendIncludes(params)
	for _, tag := range includedTags {
		params.Add("includedTags[]", tag)
	}

	var raw mdMangaList
	if err := c.getJSON(ctx, "/manga", params, &raw); err != nil {
		return nil, err
	}
	return toMangaPage(raw).Data, nil
}

func (c *Client) GetPopular(ctx context.Context, limit int, includedTags []string) ([]models.Manga, error) {
	return c.listBy(ctx, "followedCount", limit, includedTags)
}

func (c *Client) GetLatest(ctx context.Context, limit int, includedTags []string) ([]models.Manga, error) {
	return c.listBy(ctx, "latestUploadedChapter", limit, includedTags)
}

func (c *Client) GetTrending(ctx context.Context, limit int, includedTags []string) ([]models.Manga, error) {
	return c.listBy(ctx, "rating", limit, includedTags)
}

func (c *Client) GetTags(ctx context.Context) ([]models.MangaTag, error) {
	var raw struct {
		Data []mdTag `json:"data"`
	}
	if err := c.getJSON(ctx, "/manga/tag", nil, &raw); err != nil {
		return nil, err
	}

	tags := make([]models.MangaTag, 0, len(raw.Data))
	for _, t := range raw.Data {
		tags = append(tags, models.MangaTag{
			ID:    t.ID,
			Name:  pickLang(t.Attributes.Name, "en"),
			Group: t.Attributes.Group,
		})
	}
	return tags, nil
}

func toMangaPage(raw mdMangaList) *MangaPage {
	out := make([]models.Manga, 0, len(raw.Data))
	for _, item := range raw.Data {
		if item.ID == "" {
			continue
		}
		out = append(out, normalizeManga(item))
	}
	return &MangaPage{Data: out, Total: raw.Total, Offset: raw.Offset, Limit: raw.Limit}
}
