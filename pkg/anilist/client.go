// Package anilist is a minimal AniList GraphQL client used to enrich
// canonical manga metadata and to recover alternate titles for search.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	baseURL   = "https://graphql.anilist.co"
	userAgent = "mangafuse/0.1"
)

const mangaQuery = `
query ($search: String) {
  Media(search: $search, type: MANGA) {
    id
    title { romaji english native }
    description(asHtml: false)
    averageScore
    meanScore
    genres
    tags { name rank }
    bannerImage
    coverImage { extraLarge large }
    status
    chapters
    volumes
    startDate { year month day }
    recommendations(perPage: 6, sort: RATING_DESC) {
      nodes {
        mediaRecommendation {
          id
          title { romaji english }
          coverImage { large }
        }
      }
    }
  }
}
`

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// SearchManga looks a title up on AniList. A title AniList doesn't know
// returns (nil, nil); only transport and decode problems are errors.
func (c *Client) SearchManga(ctx context.Context, title string) (*Media, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     mangaQuery,
		"variables": map[string]string{"search": title},
	})
	if err != nil {
		return nil, fmt.Errorf("anilist: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("anilist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anilist: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("anilist: status %d: %s", resp.StatusCode, string(body))
	}

	var raw wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("anilist: decode: %w", err)
	}
	if raw.Data.Media == nil {
		return nil, nil
	}
	return normalizeMedia(*raw.Data.Media), nil
}
