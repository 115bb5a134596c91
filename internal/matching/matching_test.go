package matching

import (
	"testing"

	"mangafuse/pkg/models"
)

func TestTitleScoreExactMatch(t *testing.T) {
	for _, title := range []string{"berserk", "one piece", "a"} {
		if got := titleScore(title, title); got != 50 {
			t.Errorf("titleScore(%q, %q) = %d, want 50", title, title, got)
		}
	}
}

func TestTitleScoreContainment(t *testing.T) {
	if got := titleScore("one piece", "one piece: strong world"); got != 30 {
		t.Errorf("containment score = %d, want 30", got)
	}
	// symmetric
	a, b := "one piece", "one piece: strong world"
	if titleScore(a, b) != titleScore(b, a) {
		t.Errorf("containment score not symmetric: %d vs %d", titleScore(a, b), titleScore(b, a))
	}
}

func TestTitleScoreEditDistance(t *testing.T) {
	// one substitution over 12 chars: similarity 0.917
	if got := titleScore("demon slayer", "demon slayar"); got != 20 {
		t.Errorf("near-match score = %d, want 20", got)
	}
}

func TestTitleScorePrefixSimilarity(t *testing.T) {
	// abbreviated form: whole-string similarity is too low but the
	// same-length prefix comparison clears 0.85
	got := titleScore("fullmetal alchemist bh", "fullmetal alchemist brotherhood")
	if got != 30 {
		t.Errorf("prefix-similarity score = %d, want 30", got)
	}
}

func TestTitleScoreNoMatch(t *testing.T) {
	if got := titleScore("berserk", "yotsuba to!"); got != 0 {
		t.Errorf("unrelated titles score = %d, want 0", got)
	}
}

func TestLevenshteinSimilarityEmptyInput(t *testing.T) {
	if got := levenshteinSimilarity("", "anything"); got != 0 {
		t.Errorf("similarity with empty side = %v, want 0", got)
	}
	if got := levenshteinSimilarity("", ""); got != 0 {
		t.Errorf("similarity of two empties = %v, want 0", got)
	}
}

func TestNormalizeRomanization(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"juujutsu kaisen", "jujutsu kaisen"},
		{"toukyou", "tokyo"},
		{"boku wo suki", "boku o suki"},
		{"wonder woman", "wonder woman"}, // "wo" only as a standalone word
		{"k'on", "kon"},
		{"re–zero", "re-zero"},
		{"spaced   out", "spaced out"},
	}
	for _, tt := range tests {
		if got := normalizeRomanization(tt.in); got != tt.want {
			t.Errorf("normalizeRomanization(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreMatchRomanizationVariant(t *testing.T) {
	// raw strings only manage the edit-distance branch; the normalized
	// variants are identical, so the exact branch wins overall
	got := ScoreMatch("Juujutsu Kaisen",
		models.ProviderSearchResult{Title: "Jujutsu Kaisen"},
		Reference{})
	if got != 60 { // 50 title + 10 benefit of the doubt
		t.Errorf("score = %d, want 60", got)
	}
}

func TestScoreMatchChapterCountBands(t *testing.T) {
	ref := Reference{LastChapter: "100"}
	tests := []struct {
		count int
		want  int
	}{
		{100, 80}, // 0% deviation: 50 + 30
		{115, 70}, // 15%: 50 + 20
		{140, 60}, // 40%: 50 + 10
		{200, 50}, // 100%: 50 + 0
	}
	prev := 81
	for _, tt := range tests {
		got := ScoreMatch("berserk", models.ProviderSearchResult{Title: "berserk", ChapterCount: tt.count}, ref)
		if got != tt.want {
			t.Errorf("count %d: score = %d, want %d", tt.count, got, tt.want)
		}
		if got > prev {
			t.Errorf("count %d: bonus not monotonically non-increasing", tt.count)
		}
		prev = got
	}
}

func TestScoreMatchBenefitOfTheDoubt(t *testing.T) {
	// provider reports no count at all: +10 instead of a band
	got := ScoreMatch("berserk", models.ProviderSearchResult{Title: "berserk"}, Reference{LastChapter: "100"})
	if got != 60 {
		t.Errorf("score = %d, want 60 (50 title + 10 benefit)", got)
	}

	// no benefit when the title didn't match at all
	got = ScoreMatch("berserk", models.ProviderSearchResult{Title: "yotsuba to!"}, Reference{})
	if got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestScoreMatchStatusAgreement(t *testing.T) {
	base := ScoreMatch("berserk", models.ProviderSearchResult{Title: "berserk"}, Reference{})
	withStatus := ScoreMatch("berserk",
		models.ProviderSearchResult{Title: "berserk", Status: "Ongoing"},
		Reference{Status: "ongoing"})
	if withStatus != base+10 {
		t.Errorf("status agreement: %d vs base %d, want +10", withStatus, base)
	}

	mismatched := ScoreMatch("berserk",
		models.ProviderSearchResult{Title: "berserk", Status: "completed"},
		Reference{Status: "ongoing"})
	if mismatched != base {
		t.Errorf("status mismatch changed score: %d vs %d", mismatched, base)
	}
}

func TestScoreMatchEditionPenalty(t *testing.T) {
	// titles engineered to score 0 on every branch, isolating the penalty
	plain := ScoreMatch("aaaa bbbb", models.ProviderSearchResult{Title: "zzzz qqqq", ChapterCount: 5}, Reference{})
	marked := ScoreMatch("aaaa bbbb (colored)", models.ProviderSearchResult{Title: "zzzz qqqq", ChapterCount: 5}, Reference{})
	if marked != plain-20 {
		t.Errorf("edition mismatch penalty: %d vs %d, want exactly -20", marked, plain)
	}

	// both sides marked is neutral
	bothMarked := ScoreMatch("berserk (colored)",
		models.ProviderSearchResult{Title: "Berserk (Colored)"}, Reference{})
	if bothMarked != 60 {
		t.Errorf("both-marked score = %d, want 60", bothMarked)
	}
}

func TestScoreMatchNeverPanicsOnSparseData(t *testing.T) {
	// all-optional fields absent, fractional and garbage chapter hints
	refs := []Reference{
		{},
		{LastChapter: "12.5"},
		{LastChapter: "not-a-number"},
		{LastChapter: "0"},
		{Status: "ongoing"},
	}
	for _, ref := range refs {
		_ = ScoreMatch("", models.ProviderSearchResult{}, ref)
		_ = ScoreMatch("title", models.ProviderSearchResult{Title: "title", ChapterCount: 3}, ref)
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"100", 100},
		{"12.5", 12},
		{" 7 ", 7},
		{"abc", 0},
		{"", 0},
		{"-3", 0},
	}
	for _, tt := range tests {
		if got := LeadingInt(tt.in); got != tt.want {
			t.Errorf("LeadingInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
