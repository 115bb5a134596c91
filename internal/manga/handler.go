package manga

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"mangafuse/internal/discovery"
	"mangafuse/internal/provider"
	"mangafuse/pkg/anilist"
	"mangafuse/pkg/cache"
	"mangafuse/pkg/mangadex"
	"mangafuse/pkg/models"
)

type Handler struct {
	MD        *mangadex.Client
	AniList   *anilist.Client
	Registry  *provider.Registry
	Discovery *discovery.Service
	Chapters  *cache.TTL[[]models.Chapter] // full lists for non-canonical sources
}

func NewHandler(md *mangadex.Client, al *anilist.Client, registry *provider.Registry, disc *discovery.Service, chapters *cache.TTL[[]models.Chapter]) *Handler {
	return &Handler{MD: md, AniList: al, Registry: registry, Discovery: disc, Chapters: chapters}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
	rg.GET("/suggest", h.suggest)
	rg.GET("/popular", h.popular)
	rg.GET("/latest", h.latest)
	rg.GET("/trending", h.trending)
	rg.GET("/tags", h.tags)
	rg.GET("/:id", h.getByID)
	rg.GET("/:id/sources", h.sources)
	rg.GET("/:id/chapters", h.chapters)
}

// search runs the canonical search and, in parallel, asks AniList for the
// title. When AniList knows the work under a different canonical name, the
// name is re-searched and those results lead. AniList being down never fails
// a search.
func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q param required"})
		return
	}

	opts := mangadex.SearchOptions{
		Limit:        parseInt(c.Query("limit"), 20),
		Offset:       parseInt(c.Query("offset"), 0),
		IncludedTags: queryList(c, "tags"),
	}

	ctx := c.Request.Context()

	var (
		page  *mangadex.MangaPage
		mdErr error
		media *anilist.Media
	)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		page, mdErr = h.MD.SearchManga(ctx, q, opts)
	}()
	if h.AniList != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := h.AniList.SearchManga(ctx, q)
			if err != nil {
				log.Printf("[manga] anilist lookup failed for %q: %v", q, err)
				return
			}
			media = m
		}()
	}
	wg.Wait()

	if mdErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	if media != nil {
		for _, alt := range media.AltTitles(q) {
			altPage, err := h.MD.SearchManga(ctx, alt, opts)
			if err != nil || len(altPage.Data) == 0 {
				continue
			}
			if len(page.Data) == 0 {
				page = altPage
			} else {
				page = mergePages(altPage, page, opts.Limit)
			}
			break
		}
	}

	c.JSON(http.StatusOK, page)
}

// mergePages puts the primary page's entries first and appends the
// secondary's unique ones, capped at limit.
func mergePages(primary, secondary *mangadex.MangaPage, limit int) *mangadex.MangaPage {
	seen := make(map[string]bool, len(primary.Data))
	for _, m := range primary.Data {
		seen[m.ID] = true
	}

	merged := append([]models.Manga{}, primary.Data...)
	unique := 0
	for _, m := range secondary.Data {
		if seen[m.ID] {
			continue
		}
		merged = append(merged, m)
		unique++
	}
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	return &mangadex.MangaPage{
		Data:   merged,
		Total:  primary.Total + unique,
		Offset: primary.Offset,
		Limit:  primary.Limit,
	}
}

type suggestion struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CoverFileName string `json:"cover_file_name,omitempty"`
	AuthorName    string `json:"author_name,omitempty"`
	Year          int    `json:"year,omitempty"`
	Status        string `json:"status,omitempty"`
}

// suggest serves lightweight typeahead entries. Queries under two characters
// and upstream failures both yield an empty list, never an error status.
func (h *Handler) suggest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		c.JSON(http.StatusOK, gin.H{"suggestions": []suggestion{}})
		return
	}

	page, err := h.MD.SearchManga(c.Request.Context(), q, mangadex.SearchOptions{Limit: 20})
	if err != nil {
		log.Printf("[manga] suggest search failed for %q: %v", q, err)
		c.JSON(http.StatusOK, gin.H{"suggestions": []suggestion{}})
		return
	}

	out := make([]suggestion, 0, len(page.Data))
	for _, m := range page.Data {
		out = append(out, suggestion{
			ID:            m.ID,
			Title:         m.Title,
			CoverFileName: m.CoverFileName,
			AuthorName:    m.AuthorName,
			Year:          m.Year,
			Status:        m.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out})
}

func (h *Handler) popular(c *gin.Context) {
	h.listBy(c, h.MD.GetPopular)
}

func (h *Handler) latest(c *gin.Context) {
	h.listBy(c, h.MD.GetLatest)
}

func (h *Handler) trending(c *gin.Context) {
	h.listBy(c, h.MD.GetTrending)
}

func (h *Handler) listBy(c *gin.Context, fetch func(ctx context.Context, limit int, tags []string) ([]models.Manga, error)) {
	items, err := fetch(c.Request.Context(), parseInt(c.Query("limit"), 20), queryList(c, "tags"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) tags(c *gin.Context) {
	tags, err := h.MD.GetTags(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tags failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// getByID returns canonical details plus whatever AniList knows about the
// title (scores, genres, banner, recommendations). The anilist half is
// best-effort and null when the lookup fails.
func (h *Handler) getByID(c *gin.Context) {
	m, err := h.MD.GetManga(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}

	var media *anilist.Media
	if h.AniList != nil {
		media, err = h.AniList.SearchManga(c.Request.Context(), m.Title)
		if err != nil {
			log.Printf("[manga] anilist enrich failed for %q: %v", m.Title, err)
			media = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{"manga": m, "anilist": media})
}

// sources runs cross-provider discovery for a title. The UI passes the
// canonical title plus optional "||"-joined alt titles and lastChapter /
// status hints for the match scorer.
func (h *Handler) sources(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title param required"})
		return
	}

	var altTitles []string
	if raw := c.Query("altTitles"); raw != "" {
		for _, t := range strings.Split(raw, "||") {
			if t != "" {
				altTitles = append(altTitles, t)
			}
		}
	}

	sources := h.Discovery.Discover(c.Request.Context(), discovery.Request{
		MangaID:     c.Param("id"),
		Title:       title,
		AltTitles:   altTitles,
		LastChapter: c.Query("lastChapter"),
		Status:      c.Query("status"),
	})

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func queryList(c *gin.Context, key string) []string {
	vals := c.QueryArray(key)
	if len(vals) == 0 {
		if s := c.Query(key); s != "" {
			vals = strings.Split(s, ",")
		}
	}
	return vals
}
