package navigation

import (
	"testing"

	"mangafuse/pkg/models"
)

func chapterList(numbers ...string) []models.Chapter {
	out := make([]models.Chapter, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, models.Chapter{ID: "ch-" + n, Chapter: n, Source: "mangadex"})
	}
	return out
}

func TestResolveAscendingEdges(t *testing.T) {
	chapters := chapterList("1", "2", "3", "4", "5")

	nav := Resolve(chapters, "ch-1")
	if nav == nil {
		t.Fatal("expected nav for first chapter")
	}
	if nav.PrevChapterID != "" {
		t.Errorf("first chapter prev = %q, want empty", nav.PrevChapterID)
	}
	if nav.NextChapterID != "ch-2" {
		t.Errorf("first chapter next = %q, want ch-2", nav.NextChapterID)
	}

	nav = Resolve(chapters, "ch-5")
	if nav == nil {
		t.Fatal("expected nav for last chapter")
	}
	if nav.PrevChapterID != "ch-4" {
		t.Errorf("last chapter prev = %q, want ch-4", nav.PrevChapterID)
	}
	if nav.NextChapterID != "" {
		t.Errorf("last chapter next = %q, want empty", nav.NextChapterID)
	}
}

func TestResolveAscendingMiddle(t *testing.T) {
	nav := Resolve(chapterList("1", "2", "3", "4", "5"), "ch-3")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.PrevChapterID != "ch-2" || nav.NextChapterID != "ch-4" {
		t.Errorf("middle nav = (%q, %q), want (ch-2, ch-4)", nav.PrevChapterID, nav.NextChapterID)
	}
	if nav.ChapterNumber != "3" {
		t.Errorf("chapter number = %q, want 3", nav.ChapterNumber)
	}
}

func TestResolveDescendingSwapsNeighbors(t *testing.T) {
	// newest-first list, as MangaDex feeds usually arrive
	chapters := chapterList("5", "4", "3", "2", "1")

	// chapter 5 is the newest: nothing to read next, 4 came before it
	nav := Resolve(chapters, "ch-5")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.NextChapterID != "" {
		t.Errorf("newest chapter next = %q, want empty", nav.NextChapterID)
	}
	if nav.PrevChapterID != "ch-4" {
		t.Errorf("newest chapter prev = %q, want ch-4", nav.PrevChapterID)
	}

	// chapter 3 in the middle: array neighbors swap roles
	nav = Resolve(chapters, "ch-3")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.PrevChapterID != "ch-2" || nav.NextChapterID != "ch-4" {
		t.Errorf("middle nav = (%q, %q), want (ch-2, ch-4)", nav.PrevChapterID, nav.NextChapterID)
	}

	// chapter 1 is the oldest: nothing before it
	nav = Resolve(chapters, "ch-1")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.PrevChapterID != "" {
		t.Errorf("oldest chapter prev = %q, want empty", nav.PrevChapterID)
	}
	if nav.NextChapterID != "ch-2" {
		t.Errorf("oldest chapter next = %q, want ch-2", nav.NextChapterID)
	}
}

func TestResolveUnknownTarget(t *testing.T) {
	if nav := Resolve(chapterList("1", "2", "3"), "nope"); nav != nil {
		t.Errorf("unknown target returned nav: %+v", nav)
	}
}

func TestResolveEmptyList(t *testing.T) {
	if nav := Resolve(nil, "ch-1"); nav != nil {
		t.Errorf("empty list returned nav: %+v", nav)
	}
}

func TestResolveMalformedNumbers(t *testing.T) {
	// unparseable numbers count as 0 for direction only; identity still works
	chapters := []models.Chapter{
		{ID: "a", Chapter: "oneshot"},
		{ID: "b", Chapter: "2"},
		{ID: "c", Chapter: "3"},
	}
	nav := Resolve(chapters, "b")
	if nav == nil {
		t.Fatal("expected nav")
	}
	// first parses as 0, last as 3: ascending
	if nav.PrevChapterID != "a" || nav.NextChapterID != "c" {
		t.Errorf("nav = (%q, %q), want (a, c)", nav.PrevChapterID, nav.NextChapterID)
	}
}

func TestResolveFractionalNumbers(t *testing.T) {
	chapters := chapterList("12", "12.5", "13")
	nav := Resolve(chapters, "ch-12.5")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.PrevChapterID != "ch-12" || nav.NextChapterID != "ch-13" {
		t.Errorf("nav = (%q, %q), want (ch-12, ch-13)", nav.PrevChapterID, nav.NextChapterID)
	}
}

func TestResolveSingleChapter(t *testing.T) {
	nav := Resolve(chapterList("1"), "ch-1")
	if nav == nil {
		t.Fatal("expected nav")
	}
	if nav.PrevChapterID != "" || nav.NextChapterID != "" {
		t.Errorf("single chapter nav = (%q, %q), want both empty", nav.PrevChapterID, nav.NextChapterID)
	}
}
