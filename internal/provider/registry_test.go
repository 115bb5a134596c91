package provider

import (
	"context"
	"testing"

	"mangafuse/pkg/models"
)

type stubProvider struct {
	name  string
	kind  Type
	label string
}

func (s *stubProvider) Name() string        { return s.name }
func (s *stubProvider) DisplayName() string { return s.label }
func (s *stubProvider) Type() Type          { return s.kind }

func (s *stubProvider) Search(ctx context.Context, query string) ([]models.ProviderSearchResult, error) {
	return nil, nil
}

func (s *stubProvider) GetChapters(ctx context.Context, sourceID string) ([]models.Chapter, error) {
	return nil, nil
}

func (s *stubProvider) GetChapterPages(ctx context.Context, chapterID string) (*models.ChapterPages, error) {
	return nil, nil
}

func (s *stubProvider) NeedsImageProxy() bool          { return false }
func (s *stubProvider) ImageHeaders() map[string]string { return nil }

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "mangadex", kind: TypeManga})

	p, ok := r.Get("mangadex")
	if !ok {
		t.Fatal("expected mangadex to be registered")
	}
	if p.Name() != "mangadex" {
		t.Errorf("got provider %q", p.Name())
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("unregistered name reported as present")
	}
}

func TestRegistryListByTypeOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "mangadex", kind: TypeManga})
	r.Register(&stubProvider{name: "gogoanime", kind: TypeAnime})
	r.Register(&stubProvider{name: "mangapill", kind: TypeManga})

	names := func() []string {
		var out []string
		for _, p := range r.ListByType(TypeManga) {
			out = append(out, p.Name())
		}
		return out
	}

	want := []string{"mangadex", "mangapill"}
	got := names()
	if len(got) != len(want) {
		t.Fatalf("ListByType returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListByType returned %v, want %v", got, want)
		}
	}

	// listing is idempotent
	again := names()
	for i := range want {
		if again[i] != want[i] {
			t.Fatalf("second listing %v differs from first %v", again, got)
		}
	}
}

func TestRegistryReRegisterKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "mangadex", kind: TypeManga, label: "old"})
	r.Register(&stubProvider{name: "mangapill", kind: TypeManga})
	r.Register(&stubProvider{name: "mangadex", kind: TypeManga, label: "new"})

	listed := r.ListByType(TypeManga)
	if len(listed) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(listed))
	}
	if listed[0].Name() != "mangadex" || listed[0].DisplayName() != "new" {
		t.Errorf("re-registration should replace in place, got %q/%q",
			listed[0].Name(), listed[0].DisplayName())
	}
}
