package anilist

import "strings"

// Raw AniList wire shapes (internal).

type wireTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type wireCover struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
}

type wireMedia struct {
	ID           int        `json:"id"`
	Title        wireTitle  `json:"title"`
	Description  string     `json:"description"`
	AverageScore int        `json:"averageScore"`
	MeanScore    int        `json:"meanScore"`
	Genres       []string   `json:"genres"`
	Tags         []Tag      `json:"tags"`
	BannerImage  string     `json:"bannerImage"`
	CoverImage   *wireCover `json:"coverImage"`
	Status       string     `json:"status"`
	Chapters     int        `json:"chapters"`
	Volumes      int        `json:"volumes"`
	StartDate    *Date      `json:"startDate"`

	Recommendations *struct {
		Nodes []struct {
			MediaRecommendation *struct {
				ID         int        `json:"id"`
				Title      wireTitle  `json:"title"`
				CoverImage *wireCover `json:"coverImage"`
			} `json:"mediaRecommendation"`
		} `json:"nodes"`
	} `json:"recommendations"`
}

type wireResponse struct {
	Data struct {
		Media *wireMedia `json:"Media"`
	} `json:"data"`
}

type Tag struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Recommendation is one related title, flattened out of the nested
// recommendation nodes.
type Recommendation struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	CoverImage string `json:"cover_image,omitempty"`
}

// Media is the normalized AniList entry served alongside canonical metadata.
type Media struct {
	ID              int              `json:"id"`
	TitleRomaji     string           `json:"title_romaji,omitempty"`
	TitleEnglish    string           `json:"title_english,omitempty"`
	TitleNative     string           `json:"title_native,omitempty"`
	Description     string           `json:"description,omitempty"`
	AverageScore    int              `json:"average_score,omitempty"`
	MeanScore       int              `json:"mean_score,omitempty"`
	Genres          []string         `json:"genres,omitempty"`
	Tags            []Tag            `json:"tags,omitempty"`
	BannerImage     string           `json:"banner_image,omitempty"`
	CoverImage      string           `json:"cover_image,omitempty"`
	Status          string           `json:"status,omitempty"`
	Chapters        int              `json:"chapters,omitempty"`
	Volumes         int              `json:"volumes,omitempty"`
	StartDate       *Date            `json:"start_date,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// AltTitles returns the romaji and english forms that differ from query
// (case-insensitive), in that order. These are the titles worth re-running a
// canonical search with.
func (m *Media) AltTitles(query string) []string {
	var out []string
	for _, t := range []string{m.TitleRomaji, m.TitleEnglish} {
		if t != "" && !strings.EqualFold(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func normalizeMedia(item wireMedia) *Media {
	m := &Media{
		ID:           item.ID,
		TitleRomaji:  item.Title.Romaji,
		TitleEnglish: item.Title.English,
		TitleNative:  item.Title.Native,
		Description:  item.Description,
		AverageScore: item.AverageScore,
		MeanScore:    item.MeanScore,
		Genres:       item.Genres,
		Tags:         item.Tags,
		BannerImage:  item.BannerImage,
		Status:       item.Status,
		Chapters:     item.Chapters,
		Volumes:      item.Volumes,
		StartDate:    item.StartDate,
	}

	if item.CoverImage != nil {
		m.CoverImage = item.CoverImage.ExtraLarge
		if m.CoverImage == "" {
			m.CoverImage = item.CoverImage.Large
		}
	}

	if item.Recommendations != nil {
		for _, node := range item.Recommendations.Nodes {
			rec := node.MediaRecommendation
			if rec == nil {
				continue
			}
			title := rec.Title.English
			if title == "" {
				title = rec.Title.Romaji
			}
			cover := ""
			if rec.CoverImage != nil {
				cover = rec.CoverImage.Large
			}
			m.Recommendations = append(m.Recommendations, Recommendation{
				ID:         rec.ID,
				Title:      title,
				CoverImage: cover,
			})
		}
	}
	return m
}
