package mangadex

import "testing"

func TestPickTitle(t *testing.T) {
	tests := []struct {
		name      string
		titles    map[string]string
		altTitles []map[string]string
		wantTitle string
		wantAlt   string
	}{
		{
			name:      "english with romanized alt",
			titles:    map[string]string{"en": "Jujutsu Kaisen", "ja-ro": "Juujutsu Kaisen"},
			wantTitle: "Jujutsu Kaisen",
			wantAlt:   "Juujutsu Kaisen",
		},
		{
			name:      "romanized only",
			titles:    map[string]string{"ja-ro": "Berserk"},
			wantTitle: "Berserk",
		},
		{
			name:      "identical forms give no alt",
			titles:    map[string]string{"en": "Berserk", "ja-ro": "Berserk"},
			wantTitle: "Berserk",
		},
		{
			name:      "alt pulled from altTitles list",
			titles:    map[string]string{"en": "My Hero Academia"},
			altTitles: []map[string]string{{"ja-ro": "Boku no Hero Academia"}},
			wantTitle: "My Hero Academia",
			wantAlt:   "Boku no Hero Academia",
		},
		{
			name:      "no usable language falls back to anything",
			titles:    map[string]string{"ko": "나 혼자만 레벨업"},
			wantTitle: "나 혼자만 레벨업",
		},
		{
			name:      "empty map",
			titles:    map[string]string{},
			wantTitle: "Untitled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, alt := pickTitle(tt.titles, tt.altTitles)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if alt != tt.wantAlt {
				t.Errorf("alt = %q, want %q", alt, tt.wantAlt)
			}
		})
	}
}

func TestRelAttrString(t *testing.T) {
	rels := []mdRelationship{
		{Type: "author", Attributes: map[string]any{"name": "Kentaro Miura"}},
		{Type: "cover_art", Attributes: map[string]any{"fileName": "abc.jpg"}},
		{Type: "artist"}, // nil attributes
	}

	if got := relAttrString(rels, "cover_art", "fileName"); got != "abc.jpg" {
		t.Errorf("cover fileName = %q", got)
	}
	if got := relAttrString(rels, "author", "name"); got != "Kentaro Miura" {
		t.Errorf("author name = %q", got)
	}
	if got := relAttrString(rels, "artist", "name"); got != "" {
		t.Errorf("artist with nil attributes = %q, want empty", got)
	}
	if got := relAttrString(rels, "scanlation_group", "name"); got != "" {
		t.Errorf("missing relationship = %q, want empty", got)
	}
}

func TestCoverURL(t *testing.T) {
	if got := CoverURL("m1", "f.jpg", "256"); got != "https://uploads.mangadex.org/covers/m1/f.jpg.256.jpg" {
		t.Errorf("thumbnail url = %q", got)
	}
	if got := CoverURL("m1", "f.jpg", "original"); got != "https://uploads.mangadex.org/covers/m1/f.jpg" {
		t.Errorf("original url = %q", got)
	}
}
