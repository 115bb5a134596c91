// Package matching scores provider search results against a reference manga.
//
// The confidence scale is additive: up to 50 points for the title, up to 30
// for chapter-count agreement, 10 for status agreement, minus 20 when only
// one side carries an edition marker like "(colored)". Discovery treats 40
// as the minimum passing score.
package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"mangafuse/pkg/models"
)

var editionKeywords = []string{"(colored)", "(full color)", "(digital)", "(official)"}

// Reference carries the hints the canonical listing provides about a title.
// Both fields are optional; a bare reference degrades scoring to title-only.
type Reference struct {
	LastChapter string // numeric-as-string, may be fractional ("12.5")
	Status      string
}

var (
	particleWo = regexp.MustCompile(`\bwo\b`)
	apostrophe = regexp.MustCompile("['’`]")
	longDash   = regexp.MustCompile(`[–—]`)
	spaces     = regexp.MustCompile(`\s+`)
)

// normalizeRomanization collapses common Japanese-to-Latin transliteration
// variants so that e.g. "Boku wo" and "Boku o", or "Toukyou" and "Tokyo",
// compare as more similar. Order of the replacements matters.
func normalizeRomanization(s string) string {
	s = particleWo.ReplaceAllString(s, "o") // particle を
	s = strings.ReplaceAll(s, "ou", "o")    // long vowel おう → お
	s = strings.ReplaceAll(s, "uu", "u")    // long vowel うう → う
	s = apostrophe.ReplaceAllString(s, "")
	s = longDash.ReplaceAllString(s, "-")
	s = spaces.ReplaceAllString(s, " ")
	return s
}

// levenshteinSimilarity maps edit distance onto [0,1]. Zero-length input on
// either side is defined as 0 similarity, never a division by zero.
func levenshteinSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

// titleScore rates two lowercased, trimmed titles on a 0–50 scale. Branches
// are tried in order and the first qualifying one wins:
//
//	exact match               → 50
//	substring either way      → 30
//	whole-string similarity   → 20 (similarity > 0.8)
//	prefix similarity         → 30 (shorter vs same-length prefix, > 0.85)
//
// The prefix branch catches truncated or abbreviated forms of a longer title.
func titleScore(qLower, rLower string) int {
	if qLower == rLower {
		return 50
	}
	if strings.Contains(rLower, qLower) || strings.Contains(qLower, rLower) {
		return 30
	}

	if levenshteinSimilarity(qLower, rLower) > 0.8 {
		return 20
	}

	shorter, longer := qLower, rLower
	if len([]rune(qLower)) > len([]rune(rLower)) {
		shorter, longer = rLower, qLower
	}
	prefix := string([]rune(longer)[:len([]rune(shorter))])
	if levenshteinSimilarity(shorter, prefix) > 0.85 {
		return 30
	}

	return 0
}

// LeadingInt parses the integer prefix of a numeric-as-string chapter number,
// so "12.5" counts as 12. Returns 0 when there is no usable prefix.
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func hasEditionKeyword(s string) bool {
	for _, kw := range editionKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ScoreMatch computes the confidence that result is the same manga the
// reference describes. It never fails: missing reference fields simply skip
// their contribution.
func ScoreMatch(query string, result models.ProviderSearchResult, ref Reference) int {
	score := 0
	qRaw := strings.TrimSpace(strings.ToLower(query))
	rRaw := strings.TrimSpace(strings.ToLower(result.Title))

	qNorm := normalizeRomanization(qRaw)
	rNorm := normalizeRomanization(rRaw)

	title := titleScore(qRaw, rRaw)
	if norm := titleScore(qNorm, rNorm); norm > title {
		title = norm
	}
	score += title

	if ref.LastChapter != "" && result.ChapterCount != 0 {
		if expected := LeadingInt(ref.LastChapter); expected > 0 {
			deviation := result.ChapterCount - expected
			if deviation < 0 {
				deviation = -deviation
			}
			ratio := float64(deviation) / float64(expected)
			switch {
			case ratio <= 0.1:
				score += 30
			case ratio <= 0.3:
				score += 20
			case ratio <= 0.5:
				score += 10
			}
		}
	} else if result.ChapterCount == 0 && score > 0 {
		// Provider doesn't report chapter counts in search — benefit of
		// the doubt, so it isn't penalized against providers that do.
		score += 10
	}

	if ref.Status != "" && result.Status != "" &&
		strings.EqualFold(ref.Status, result.Status) {
		score += 10
	}

	if hasEditionKeyword(qRaw) != hasEditionKeyword(rRaw) {
		score -= 20
	}

	return score
}
