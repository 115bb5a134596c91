package mangadex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL   = "https://api.mangadex.org"
	userAgent = "mangafuse/0.1"
)

// MangaDex asks clients to stay under 5 requests per second.
const (
	rateLimitRequests = 5
	rateLimitDuration = time.Second
)

// Client is a minimal MangaDex API client covering the endpoints the reader
// needs: title search, title details, chapter feed, page server, tags.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 12 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
	}
}

// getJSON performs a rate-limited GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("mangadex: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mangadex: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mangadex: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mangadex: decode: %w", err)
	}
	return nil
}

// CoverURL builds the uploads URL for a cover file. size is "256", "512" or
// "original".
func CoverURL(mangaID, coverFileName, size string) string {
	suffix := ""
	if size != "original" && size != "" {
		suffix = "." + size + ".jpg"
	}
	return fmt.Sprintf("https://uploads.mangadex.org/covers/%s/%s%s", mangaID, coverFileName, suffix)
}
