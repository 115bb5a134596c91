package provider

import (
	"context"

	"mangafuse/pkg/models"
)

// Type classifies what kind of content a provider serves.
type Type string

const (
	TypeManga      Type = "manga"
	TypeAnime      Type = "anime"
	TypeLightNovel Type = "lightnovel"
)

// Provider is implemented by each external content source (API or scraped
// site). Providers may be slow, rate-limited or flaky; callers treat every
// one of them as equally untrustworthy and bound each call with the request
// context.
type Provider interface {
	Name() string
	DisplayName() string
	Type() Type

	Search(ctx context.Context, query string) ([]models.ProviderSearchResult, error)
	GetChapters(ctx context.Context, sourceID string) ([]models.Chapter, error)
	GetChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error)

	// NeedsImageProxy reports whether page images require proxying with
	// ImageHeaders (hotlink-protected sites).
	NeedsImageProxy() bool
	ImageHeaders() map[string]string
}
