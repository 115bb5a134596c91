package provider

import (
	"testing"

	"mangafuse/pkg/models"
)

func TestMDSearchResult(t *testing.T) {
	got := mdSearchResult(models.Manga{
		ID:            "m1",
		Title:         "One Piece",
		Status:        "ongoing",
		LastChapter:   "1066.5",
		CoverFileName: "cover.jpg",
	})

	// fractional chapter numbers keep their integer part
	if got.ChapterCount != 1066 {
		t.Errorf("chapter count = %d, want 1066", got.ChapterCount)
	}
	if got.SourceID != "m1" || got.Title != "One Piece" || got.Status != "ongoing" {
		t.Errorf("result = %+v", got)
	}
	if got.Image != "https://uploads.mangadex.org/covers/m1/cover.jpg.256.jpg" {
		t.Errorf("image = %q", got.Image)
	}
}

func TestMDSearchResultSparse(t *testing.T) {
	got := mdSearchResult(models.Manga{ID: "m2", Title: "Oneshot"})
	if got.ChapterCount != 0 {
		t.Errorf("chapter count without lastChapter = %d, want 0", got.ChapterCount)
	}
	if got.Image != "" {
		t.Errorf("image without cover = %q, want empty", got.Image)
	}
}
