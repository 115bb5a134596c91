// Package navigation computes prev/next chapter links from a provider's
// chapter list.
package navigation

import (
	"strconv"

	"mangafuse/pkg/models"
)

// chapterNumber parses a chapter's numeric field for ordering purposes only.
// Absent or malformed numbers count as 0; identity lookup is by id and is
// never affected.
func chapterNumber(c models.Chapter) float64 {
	if c.Chapter == "" {
		return 0
	}
	n, err := strconv.ParseFloat(c.Chapter, 64)
	if err != nil {
		return 0
	}
	return n
}

// Resolve finds targetID in chapters and returns its prev/next neighbors in
// reading order. Providers return lists in either direction, so the
// direction is detected from the data: if the first entry's number is higher
// than the last's, the list is newest-first and the array neighbors swap
// roles. Returns nil when the target isn't in the list or the list is empty;
// edge chapters leave the missing side empty, never wrapping around.
func Resolve(chapters []models.Chapter, targetID string) *models.ChapterNav {
	if len(chapters) == 0 {
		return nil
	}

	idx := -1
	for i := range chapters {
		if chapters[i].ID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	descending := chapterNumber(chapters[0]) > chapterNumber(chapters[len(chapters)-1])

	nav := &models.ChapterNav{
		ChapterNumber: chapters[idx].Chapter,
		ChapterTitle:  chapters[idx].Title,
	}

	var before, after string
	if idx > 0 {
		before = chapters[idx-1].ID
	}
	if idx < len(chapters)-1 {
		after = chapters[idx+1].ID
	}

	if descending {
		// newest-first: the array predecessor is the higher-numbered chapter
		nav.PrevChapterID = after
		nav.NextChapterID = before
	} else {
		nav.PrevChapterID = before
		nav.NextChapterID = after
	}

	return nav
}
