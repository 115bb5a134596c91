package mangadex

import (
	"mangafuse/pkg/models"
)

// Raw MangaDex wire shapes (internal).

type mdRelationship struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
}

type mdTag struct {
	ID         string `json:"id"`
	Attributes struct {
		Name  map[string]string `json:"name"`
		Group string            `json:"group"`
	} `json:"attributes"`
}

type mdManga struct {
	ID         string `json:"id"`
	Attributes struct {
		Title         map[string]string   `json:"title"`
		AltTitles     []map[string]string `json:"altTitles"`
		Description   map[string]string   `json:"description"`
		Status        string              `json:"status"`
		Year          int                 `json:"year"`
		ContentRating string              `json:"contentRating"`
		Tags          []mdTag             `json:"tags"`
		LastChapter   string              `json:"lastChapter"`
		LastVolume    string              `json:"lastVolume"`
	} `json:"attributes"`
	Relationships []mdRelationship `json:"relationships"`
}

type mdMangaList struct {
	Data   []mdManga `json:"data"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Total  int       `json:"total"`
}

type mdChapter struct {
	ID         string `json:"id"`
	Attributes struct {
		Title              string `json:"title"`
		Chapter            string `json:"chapter"`
		Volume             string `json:"volume"`
		Pages              int    `json:"pages"`
		TranslatedLanguage string `json:"translatedLanguage"`
		PublishAt          string `json:"publishAt"`
	} `json:"attributes"`
	Relationships []mdRelationship `json:"relationships"`
}

type mdChapterList struct {
	Data   []mdChapter `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int         `json:"total"`
}

func relAttrString(rels []mdRelationship, relType, key string) string {
	for _, r := range rels {
		if r.Type != relType || r.Attributes == nil {
			continue
		}
		if v, ok := r.Attributes[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// pickLang returns m[lang], falling back to any value when lang is absent.
func pickLang(m map[string]string, lang string) string {
	if v := m[lang]; v != "" {
		return v
	}
	for _, v := range m {
		return v
	}
	return ""
}

// pickTitle chooses the display title (English, then romanized Japanese,
// then anything) and a romanization alt title when both forms exist.
func pickTitle(titles map[string]string, altTitles []map[string]string) (title, altTitle string) {
	en := titles["en"]
	jaRo := titles["ja-ro"]
	if jaRo == "" {
		jaRo = titles["ja"]
	}

	title = en
	if title == "" {
		title = jaRo
	}
	if title == "" {
		title = pickLang(titles, "en")
	}
	if title == "" {
		title = "Untitled"
	}

	if en != "" && jaRo != "" && en != jaRo {
		altTitle = jaRo
		return title, altTitle
	}
	for _, alt := range altTitles {
		if alt["ja-ro"] != "" || alt["ja"] != "" || alt["en"] != "" {
			altTitle = pickLang(alt, "en")
			return title, altTitle
		}
	}
	return title, ""
}

func normalizeManga(item mdManga) models.Manga {
	a := item.Attributes
	title, altTitle := pickTitle(a.Title, a.AltTitles)

	tags := make([]models.MangaTag, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, models.MangaTag{
			ID:    t.ID,
			Name:  pickLang(t.Attributes.Name, "en"),
			Group: t.Attributes.Group,
		})
	}

	return models.Manga{
		ID:            item.ID,
		Title:         title,
		AltTitle:      altTitle,
		Description:   pickLang(a.Description, "en"),
		Status:        a.Status,
		Year:          a.Year,
		ContentRating: a.ContentRating,
		Tags:          tags,
		CoverFileName: relAttrString(item.Relationships, "cover_art", "fileName"),
		AuthorName:    relAttrString(item.Relationships, "author", "name"),
		ArtistName:    relAttrString(item.Relationships, "artist", "name"),
		LastChapter:   a.LastChapter,
		LastVolume:    a.LastVolume,
	}
}

func normalizeChapter(item mdChapter) models.Chapter {
	a := item.Attributes
	return models.Chapter{
		ID:                 item.ID,
		Title:              a.Title,
		Chapter:            a.Chapter,
		Volume:             a.Volume,
		Pages:              a.Pages,
		TranslatedLanguage: a.TranslatedLanguage,
		PublishAt:          a.PublishAt,
		ScanlationGroup:    relAttrString(item.Relationships, "scanlation_group", "name"),
		Source:             "mangadex",
	}
}
