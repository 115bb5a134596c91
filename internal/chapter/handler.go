package chapter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mangafuse/internal/provider"
	"mangafuse/pkg/mangadex"
)

type Handler struct {
	MD       *mangadex.Client
	Registry *provider.Registry
}

func NewHandler(md *mangadex.Client, registry *provider.Registry) *Handler {
	return &Handler{MD: md, Registry: registry}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resolve", h.resolve) // must come before /:id
	rg.GET("/:id", h.pages)
}

// pages serves a canonical (MangaDex) chapter's page list.
func (h *Handler) pages(c *gin.Context) {
	pages, err := h.MD.GetChapterPages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chapter pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}

// resolve serves any provider's chapter pages: ?source=...&chapterId=...
func (h *Handler) resolve(c *gin.Context) {
	source := c.Query("source")
	chapterID := c.Query("chapterId")
	if source == "" || chapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and chapterId params required"})
		return
	}

	p, ok := h.Registry.Get(source)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider: " + source})
		return
	}

	pages, err := p.GetChapterPages(c.Request.Context(), chapterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chapter pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}
