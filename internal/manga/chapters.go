package manga

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mangafuse/internal/navigation"
	"mangafuse/pkg/mangadex"
	"mangafuse/pkg/models"
)

const pageSize = 30

// chapters serves a manga's chapter list from whichever source the client
// selected. The canonical provider is server-paginated; every other provider
// returns its full list (cached) and the client paginates. When a `nav`
// chapter id is supplied, prev/next navigation is computed over the complete
// chapter range and merged into the response.
func (h *Handler) chapters(c *gin.Context) {
	id := c.Param("id")
	source := c.Query("source")
	sourceID := c.Query("sourceId")
	navTarget := c.Query("nav")

	// no explicit source: open with the discovered default when discovery
	// has already run for this title, else the canonical provider
	if source == "" {
		if def := h.Discovery.DefaultSource(id, c.Query("lastChapter")); def != nil {
			source = def.Provider
			sourceID = def.SourceID
		} else {
			source = "mangadex"
		}
	}
	if sourceID == "" {
		sourceID = id
	}

	p, ok := h.Registry.Get(source)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider: " + source})
		return
	}

	if source == "mangadex" {
		h.canonicalChapters(c, id, navTarget)
		return
	}

	cacheKey := source + ":" + sourceID
	chapters, ok := h.Chapters.Get(cacheKey)
	if !ok {
		var err error
		chapters, err = p.GetChapters(c.Request.Context(), sourceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chapters"})
			return
		}
		h.Chapters.Set(cacheKey, chapters)
	}

	// discovery usually records 0 chapters for providers that don't report
	// counts in search results; patch the cached source now that we know
	h.Discovery.BackfillChapterCount(id, source, sourceID, len(chapters))

	resp := gin.H{"data": chapters, "total": len(chapters)}
	if navTarget != "" {
		resp["nav"] = navigation.Resolve(chapters, navTarget)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) canonicalChapters(c *gin.Context, id, navTarget string) {
	page := parseInt(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	lang := strings.TrimSpace(c.DefaultQuery("lang", "en"))

	result, err := h.MD.GetMangaFeed(c.Request.Context(), id, mangadex.FeedOptions{
		Limit:              pageSize,
		Offset:             (page - 1) * pageSize,
		TranslatedLanguage: lang,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chapters"})
		return
	}

	h.Discovery.BackfillChapterCount(id, "mangadex", id, result.Total)

	resp := gin.H{
		"data":   result.Data,
		"total":  result.Total,
		"offset": result.Offset,
		"limit":  result.Limit,
	}
	if navTarget != "" {
		// navigation needs the whole range in a stable order, not just the
		// page the UI is showing
		full, err := h.fullCanonicalWindow(c.Request.Context(), id, lang, result.Total)
		if err == nil {
			resp["nav"] = navigation.Resolve(full, navTarget)
		} else {
			resp["nav"] = nil
		}
	}
	c.JSON(http.StatusOK, resp)
}

// fullCanonicalWindow pages through the entire ascending feed for a title.
func (h *Handler) fullCanonicalWindow(ctx context.Context, id, lang string, total int) ([]models.Chapter, error) {
	const limit = 100
	chapters := make([]models.Chapter, 0, total)

	for offset := 0; ; offset += limit {
		page, err := h.MD.GetMangaFeed(ctx, id, mangadex.FeedOptions{
			Limit:              limit,
			Offset:             offset,
			TranslatedLanguage: lang,
			Order:              "asc",
		})
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, page.Data...)
		if len(chapters) >= page.Total || len(page.Data) < limit {
			break
		}
	}
	return chapters, nil
}
