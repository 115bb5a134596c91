package models

// Chapter is one chapter entry from any provider. Chapter and Volume are
// numeric-as-string ("12.5" is valid) and may be empty when the provider
// doesn't number its chapters. Ordering inside a list is whatever the
// provider returned; callers must not assume a direction.
type Chapter struct {
	ID                 string `json:"id"`
	Title              string `json:"title,omitempty"`
	Chapter            string `json:"chapter,omitempty"`
	Volume             string `json:"volume,omitempty"`
	Pages              int    `json:"pages"`
	TranslatedLanguage string `json:"translated_language"`
	PublishAt          string `json:"publish_at"` // ISO-8601, "" if unknown
	ScanlationGroup    string `json:"scanlation_group,omitempty"`
	Source             string `json:"source"`
}

// PaginatedChapters mirrors the MangaDex feed response shape.
type PaginatedChapters struct {
	Data   []Chapter `json:"data"`
	Total  int       `json:"total"`
	Offset int       `json:"offset"`
	Limit  int       `json:"limit"`
}

// ChapterPages carries a chapter's page images. Canonical (MangaDex) chapters
// use BaseURL/Hash/Data/DataSaver; scraped providers fill Pages with direct
// image URLs instead.
type ChapterPages struct {
	Source    string      `json:"source"`
	BaseURL   string      `json:"base_url,omitempty"`
	Hash      string      `json:"hash,omitempty"`
	Data      []string    `json:"data,omitempty"`
	DataSaver []string    `json:"data_saver,omitempty"`
	Pages     []PageImage `json:"pages,omitempty"`
}

type PageImage struct {
	Img  string `json:"img"`
	Page int    `json:"page"`
}

// ChapterNav holds prev/next chapter ids for reader controls. A nil *ChapterNav
// means "no navigation available" (unknown chapter, empty list).
type ChapterNav struct {
	PrevChapterID string `json:"prev_chapter_id,omitempty"`
	NextChapterID string `json:"next_chapter_id,omitempty"`
	ChapterNumber string `json:"chapter_number,omitempty"`
	ChapterTitle  string `json:"chapter_title,omitempty"`
}
