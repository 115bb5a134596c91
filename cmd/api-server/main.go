package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mangafuse/internal/chapter"
	"mangafuse/internal/discovery"
	"mangafuse/internal/library"
	"mangafuse/internal/manga"
	"mangafuse/internal/provider"
	synchub "mangafuse/internal/sync"
	"mangafuse/pkg/anilist"
	"mangafuse/pkg/cache"
	"mangafuse/pkg/database"
	"mangafuse/pkg/mangadex"
	"mangafuse/pkg/models"
)

func main() {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	cfg := database.DefaultConfig()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	md := mangadex.NewClient()
	al := anilist.NewClient()

	// Providers are registered once here, before any request traffic; the
	// registry is read-only afterwards.
	registry := provider.NewRegistry()
	registry.Register(provider.NewMangaDex(md))
	registry.Register(provider.NewMangaPill())

	sourceCache := cache.NewTTL[[]models.MangaSource](500, 30*time.Minute)
	chapterCache := cache.NewTTL[[]models.Chapter](200, time.Hour)

	probe := func(ctx context.Context, sourceID string) (int, error) {
		feed, err := md.GetMangaFeed(ctx, sourceID, mangadex.FeedOptions{Limit: 1})
		if err != nil {
			return 0, err
		}
		return feed.Total, nil
	}
	disc := discovery.NewService(registry, "mangadex", probe, sourceCache)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := synchub.NewHub()
	router.GET("/ws", synchub.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": hub.Stats().Clients,
		})
	})

	mangaHandler := manga.NewHandler(md, al, registry, disc, chapterCache)
	mangaHandler.RegisterRoutes(router.Group("/manga"))

	chapterHandler := chapter.NewHandler(md, registry)
	chapterHandler.RegisterRoutes(router.Group("/chapter"))

	libRepo := library.NewRepo(db)
	libHandler := library.NewHandler(libRepo, hub)
	device := router.Group("/device")
	device.Use(library.DeviceMiddleware())
	libHandler.RegisterRoutes(device)

	addr := os.Getenv("MANGAFUSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
