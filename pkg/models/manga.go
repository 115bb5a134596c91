package models

// Manga is the normalized form of a manga entry as served by the API.
// Every upstream provider's shape is mapped into this structure first.
type Manga struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	AltTitle      string     `json:"alt_title,omitempty"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Year          int        `json:"year,omitempty"`
	ContentRating string     `json:"content_rating,omitempty"`
	Tags          []MangaTag `json:"tags"`
	CoverFileName string     `json:"cover_file_name,omitempty"`
	AuthorName    string     `json:"author_name,omitempty"`
	ArtistName    string     `json:"artist_name,omitempty"`
	LastChapter   string     `json:"last_chapter,omitempty"`
	LastVolume    string     `json:"last_volume,omitempty"`
}

type MangaTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// ProviderSearchResult is one hit from a provider's search endpoint.
// SourceID is provider-scoped: the same value can show up on two different
// providers for unrelated titles, so it is only meaningful paired with the
// provider name.
type ProviderSearchResult struct {
	SourceID     string `json:"source_id"`
	Title        string `json:"title"`
	ChapterCount int    `json:"chapter_count,omitempty"` // 0 = provider did not report one
	Status       string `json:"status,omitempty"`
	Image        string `json:"image,omitempty"`
}

// MangaSource is one (provider, sourceId) listing of a manga discovered by
// cross-provider matching. ChapterCount may start at 0 and be backfilled
// later once a real chapter list has been fetched for the source.
type MangaSource struct {
	Provider     string `json:"provider"`
	DisplayName  string `json:"display_name"`
	SourceID     string `json:"source_id"`
	MatchedTitle string `json:"matched_title"`
	ChapterCount int    `json:"chapter_count"`
	Confidence   int    `json:"confidence"`
}
