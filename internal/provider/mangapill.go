package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"mangafuse/pkg/models"
)

const mangapillBase = "https://mangapill.com"

// MangaPill scrapes mangapill.com. There is no API contract: selectors here
// track the site's markup and break when it changes, which is why every call
// is bounded by a timeout and treated as best-effort by callers.
type MangaPill struct {
	client  *http.Client
	baseURL string
}

func NewMangaPill() *MangaPill {
	return &MangaPill{
		client:  &http.Client{Timeout: 8 * time.Second},
		baseURL: mangapillBase,
	}
}

func (p *MangaPill) Name() string          { return "mangapill" }
func (p *MangaPill) DisplayName() string   { return "MangaPill" }
func (p *MangaPill) Type() Type            { return TypeManga }
func (p *MangaPill) NeedsImageProxy() bool { return true }

func (p *MangaPill) ImageHeaders() map[string]string {
	return map[string]string{"Referer": mangapillBase + "/"}
}

func (p *MangaPill) fetchDoc(ctx context.Context, path string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("mangapill: build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; mangafuse/0.1)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mangapill: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mangapill: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mangapill: read body: %w", err)
	}

	doc, err := parseHTML(string(body))
	if err != nil {
		return nil, fmt.Errorf("mangapill: parse html: %w", err)
	}
	return doc, nil
}

// Search scrapes /search?q=. Results are anchors pointing at /manga/{id}/{slug}.
// The site never exposes chapter counts or status on search results, so those
// stay zero/empty — the match scorer compensates for that.
func (p *MangaPill) Search(ctx context.Context, query string) ([]models.ProviderSearchResult, error) {
	doc, err := p.fetchDoc(ctx, "/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	anchors := findAll(doc, func(n *html.Node) bool {
		return n.Data == "a" && strings.HasPrefix(attr(n, "href"), "/manga/")
	})

	seen := make(map[string]bool)
	var out []models.ProviderSearchResult
	for _, a := range anchors {
		href := attr(a, "href")
		id := strings.TrimPrefix(href, "/manga/")
		if id == "" || seen[id] {
			continue
		}

		title := nodeText(a)
		image := ""
		for _, img := range findAll(a, func(n *html.Node) bool { return n.Data == "img" }) {
			if src := attr(img, "data-src"); src != "" {
				image = src
			} else if src := attr(img, "src"); src != "" {
				image = src
			}
			// image-only anchors duplicate the title card; skip those
			if title == "" {
				title = attr(img, "alt")
			}
		}
		if title == "" {
			continue
		}

		seen[id] = true
		out = append(out, models.ProviderSearchResult{
			SourceID: id,
			Title:    title,
			Image:    image,
		})
	}
	return out, nil
}

var (
	chapterNumFromTitle = regexp.MustCompile(`(?i)chapter\s*(\d+(?:\.\d+)?)`)
	chapterNumFromID    = regexp.MustCompile(`chapter-(\d+(?:\.\d+)?)`)
)

// parseChapterNumber pulls a numeric chapter out of the link text or, failing
// that, the chapter id slug. Empty means unnumbered.
func parseChapterNumber(id, title string) string {
	if m := chapterNumFromTitle.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if m := chapterNumFromID.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return ""
}

func (p *MangaPill) GetChapters(ctx context.Context, sourceID string) ([]models.Chapter, error) {
	doc, err := p.fetchDoc(ctx, "/manga/"+sourceID)
	if err != nil {
		return nil, err
	}

	anchors := findAll(doc, func(n *html.Node) bool {
		return n.Data == "a" && strings.HasPrefix(attr(n, "href"), "/chapters/")
	})

	seen := make(map[string]bool)
	var out []models.Chapter
	for _, a := range anchors {
		id := strings.TrimPrefix(attr(a, "href"), "/chapters/")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		title := nodeText(a)
		out = append(out, models.Chapter{
			ID:                 id,
			Title:              title,
			Chapter:            parseChapterNumber(id, title),
			Pages:              0,
			TranslatedLanguage: "en",
			ScanlationGroup:    "MangaPill",
			Source:             "mangapill",
		})
	}
	return out, nil
}

func (p *MangaPill) GetChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error) {
	doc, err := p.fetchDoc(ctx, "/chapters/"+chapterID)
	if err != nil {
		return nil, err
	}

	imgs := findAll(doc, func(n *html.Node) bool {
		return n.Data == "img" && (attr(n, "data-src") != "" || attr(n, "src") != "")
	})

	var pages []models.PageImage
	for _, img := range imgs {
		src := attr(img, "data-src")
		if src == "" {
			src = attr(img, "src")
		}
		// page images live on the CDN; skip site chrome
		if !strings.Contains(src, "cdn") {
			continue
		}
		pages = append(pages, models.PageImage{Img: src, Page: len(pages) + 1})
	}

	return &models.ChapterPages{Source: "mangapill", Pages: pages}, nil
}
