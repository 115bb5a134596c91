package library

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mangafuse/internal/sync"
	"mangafuse/pkg/models"
)

type Handler struct {
	Repo *Repo
	Hub  *sync.Hub
}

func NewHandler(repo *Repo, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/library", h.list)
	rg.PUT("/library/:manga_id", h.upsert)
	rg.GET("/library/:manga_id", h.getOne)
	rg.DELETE("/library/:manga_id", h.remove)

	rg.GET("/progress/:manga_id", h.listProgress)
	rg.PUT("/progress/:manga_id", h.saveProgress)

	rg.GET("/history", h.listHistory)
	rg.POST("/history", h.addHistory)
	rg.DELETE("/history", h.clearHistory)
}

type upsertReq struct {
	Title       string `json:"title"`
	CoverURL    string `json:"cover_url"`
	LastChapter string `json:"last_chapter"`
}

func (h *Handler) upsert(c *gin.Context) {
	deviceID := DeviceID(c)
	mangaID := strings.TrimSpace(c.Param("manga_id"))

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	item := models.LibraryItem{
		DeviceID:    deviceID,
		MangaID:     mangaID,
		Title:       req.Title,
		CoverURL:    req.CoverURL,
		LastChapter: req.LastChapter,
		AddedAt:     time.Now().UTC(),
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := sync.Event{
			Type:     "library.update",
			DeviceID: deviceID,
			MangaID:  mangaID,
			At:       time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) list(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), DeviceID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) getOne(c *gin.Context) {
	item, err := h.Repo.Get(c.Request.Context(), DeviceID(c), c.Param("manga_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) remove(c *gin.Context) {
	deviceID := DeviceID(c)
	mangaID := strings.TrimSpace(c.Param("manga_id"))

	ok, err := h.Repo.Delete(c.Request.Context(), deviceID, mangaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		ev := sync.Event{
			Type:     "library.delete",
			DeviceID: deviceID,
			MangaID:  mangaID,
			At:       time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.Status(http.StatusNoContent)
}

type progressReq struct {
	Source    string `json:"source"`
	ChapterID string `json:"chapter_id"`
	Chapter   string `json:"chapter"`
	Page      int    `json:"page"`
}

func (h *Handler) saveProgress(c *gin.Context) {
	deviceID := DeviceID(c)
	mangaID := strings.TrimSpace(c.Param("manga_id"))

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Source == "" || req.ChapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and chapter_id required"})
		return
	}
	if req.Page < 0 {
		req.Page = 0
	}

	entry := models.ProgressEntry{
		DeviceID:  deviceID,
		MangaID:   mangaID,
		Source:    req.Source,
		ChapterID: req.ChapterID,
		Chapter:   req.Chapter,
		Page:      req.Page,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.Repo.UpsertProgress(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := sync.Event{
			Type:     "progress.update",
			DeviceID: deviceID,
			MangaID:  mangaID,
			Source:   req.Source,
			Chapter:  req.Chapter,
			At:       time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) listProgress(c *gin.Context) {
	entries, err := h.Repo.ListProgress(c.Request.Context(), DeviceID(c), c.Param("manga_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

type historyReq struct {
	MangaID   string `json:"manga_id"`
	Title     string `json:"title"`
	ChapterID string `json:"chapter_id"`
	Chapter   string `json:"chapter"`
	Source    string `json:"source"`
}

func (h *Handler) addHistory(c *gin.Context) {
	var req historyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.MangaID == "" || req.ChapterID == "" || req.Source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_id, chapter_id and source required"})
		return
	}

	entry := models.HistoryEntry{
		DeviceID:  DeviceID(c),
		MangaID:   req.MangaID,
		Title:     req.Title,
		ChapterID: req.ChapterID,
		Chapter:   req.Chapter,
		Source:    req.Source,
		ReadAt:    time.Now().UTC(),
	}
	if err := h.Repo.AddHistory(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) listHistory(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.ListHistory(c.Request.Context(), DeviceID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.Repo.ClearHistory(c.Request.Context(), DeviceID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	c.Status(http.StatusNoContent)
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
