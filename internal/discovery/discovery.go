// Package discovery finds equivalent listings of a manga across every
// registered provider and ranks them by match confidence.
package discovery

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"mangafuse/internal/matching"
	"mangafuse/internal/provider"
	"mangafuse/pkg/cache"
	"mangafuse/pkg/models"
)

// minConfidence is the gate a scored search result must clear to count as a
// match for the reference manga.
const minConfidence = 40

// defaultSourceRatio: the canonical provider is kept as default when it
// carries at least this fraction of the expected chapter count.
const defaultSourceRatio = 0.8

// ProbeFunc cheaply obtains the canonical provider's total chapter count for
// a title (a feed request with limit 1 carries the total).
type ProbeFunc func(ctx context.Context, sourceID string) (int, error)

// Request is the canonical identity discovery matches against.
type Request struct {
	MangaID     string   // canonical (primary-provider) id
	Title       string
	AltTitles   []string
	LastChapter string // numeric-as-string hint, may be empty
	Status      string // may be empty
}

// Service fans a reference manga out to all non-primary providers, scores
// every candidate and returns the listings that pass the confidence gate.
// The primary provider is always present and never scored.
type Service struct {
	registry        *provider.Registry
	primary         string
	probe           ProbeFunc
	sources         *cache.TTL[[]models.MangaSource]
	providerTimeout time.Duration
}

func NewService(registry *provider.Registry, primary string, probe ProbeFunc, sources *cache.TTL[[]models.MangaSource]) *Service {
	return &Service{
		registry:        registry,
		primary:         primary,
		probe:           probe,
		sources:         sources,
		providerTimeout: 10 * time.Second,
	}
}

// Discover returns every qualifying source for the request, primary first.
// A provider that errors or times out contributes nothing; discovery itself
// never fails.
func (s *Service) Discover(ctx context.Context, req Request) []models.MangaSource {
	if cached, ok := s.sources.Get(req.MangaID); ok {
		return cached
	}

	sources := []models.MangaSource{s.primarySource(ctx, req)}

	others := s.otherProviders()
	results := make([][]models.MangaSource, len(others))

	var wg sync.WaitGroup
	for i, p := range others {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			results[i] = s.searchProvider(ctx, p, req)
		}(i, p)
	}
	wg.Wait()

	for _, r := range results {
		sources = append(sources, r...)
	}

	s.sources.Set(req.MangaID, sources)
	return sources
}

// primarySource synthesizes the always-trusted canonical entry. The count
// probe failing only costs the count, never the entry.
func (s *Service) primarySource(ctx context.Context, req Request) models.MangaSource {
	displayName := s.primary
	if p, ok := s.registry.Get(s.primary); ok {
		displayName = p.DisplayName()
	}

	count, err := s.probe(ctx, req.MangaID)
	if err != nil {
		log.Printf("[discovery] primary count probe failed for %s: %v", req.MangaID, err)
		count = 0
	}

	return models.MangaSource{
		Provider:     s.primary,
		DisplayName:  displayName,
		SourceID:     req.MangaID,
		MatchedTitle: req.Title,
		ChapterCount: count,
		Confidence:   100,
	}
}

func (s *Service) otherProviders() []provider.Provider {
	all := s.registry.ListByType(provider.TypeManga)
	out := make([]provider.Provider, 0, len(all))
	for _, p := range all {
		if p.Name() != s.primary {
			out = append(out, p)
		}
	}
	return out
}

// searchProvider tries the title and then each alt title in order, stopping
// at the first query with any passing result. Later queries are fallbacks
// only: issuing them all would just burn upstream rate-limit budget. A search
// error abandons the provider for this discovery.
func (s *Service) searchProvider(ctx context.Context, p provider.Provider, req Request) []models.MangaSource {
	pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	ref := matching.Reference{LastChapter: req.LastChapter, Status: req.Status}

	for _, query := range searchQueries(req.Title, req.AltTitles) {
		results, err := p.Search(pctx, query)
		if err != nil {
			log.Printf("[discovery] provider %s search failed: %v", p.Name(), err)
			return nil
		}
		if len(results) == 0 {
			continue
		}

		type scored struct {
			result models.ProviderSearchResult
			score  int
		}
		passing := make([]scored, 0, len(results))
		for _, r := range results {
			if sc := matching.ScoreMatch(query, r, ref); sc >= minConfidence {
				passing = append(passing, scored{result: r, score: sc})
			}
		}
		if len(passing) == 0 {
			continue
		}

		// descending score; ties keep the provider's result order
		sort.SliceStable(passing, func(i, j int) bool {
			return passing[i].score > passing[j].score
		})

		out := make([]models.MangaSource, 0, len(passing))
		for _, sc := range passing {
			out = append(out, models.MangaSource{
				Provider:     p.Name(),
				DisplayName:  p.DisplayName(),
				SourceID:     sc.result.SourceID,
				MatchedTitle: sc.result.Title,
				ChapterCount: sc.result.ChapterCount,
				Confidence:   sc.score,
			})
		}
		return out
	}
	return nil
}

// searchQueries builds the ordered query list: primary title first, then each
// distinct alt title.
func searchQueries(title string, altTitles []string) []string {
	queries := []string{title}
	seen := map[string]bool{title: true}
	for _, alt := range altTitles {
		if alt == "" || seen[alt] {
			continue
		}
		seen[alt] = true
		queries = append(queries, alt)
	}
	return queries
}

// PickDefault chooses which discovered source a chapter list should open
// with: the primary provider when it holds at least 80% of the expected
// chapters, otherwise the highest-confidence source, ties broken by the
// larger chapter count.
func PickDefault(sources []models.MangaSource, primary, lastChapter string) *models.MangaSource {
	if len(sources) == 0 {
		return nil
	}

	expected := 0
	if lastChapter != "" {
		expected = matching.LeadingInt(lastChapter)
	}
	for i := range sources {
		if sources[i].Provider == primary {
			if expected > 0 && float64(sources[i].ChapterCount) >= float64(expected)*defaultSourceRatio {
				return &sources[i]
			}
			break
		}
	}

	sorted := make([]models.MangaSource, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].ChapterCount > sorted[j].ChapterCount
	})
	return &sorted[0]
}

// DefaultSource applies PickDefault to the cached discovery results for
// mangaID. Returns nil when discovery hasn't run (or has expired) for the
// title; callers fall back to the primary provider.
func (s *Service) DefaultSource(mangaID, lastChapter string) *models.MangaSource {
	sources, ok := s.sources.Get(mangaID)
	if !ok {
		return nil
	}
	return PickDefault(sources, s.primary, lastChapter)
}

// BackfillChapterCount replaces a cached source's chapter count once a real
// chapter list has revealed it. Discovery often records 0 for providers that
// don't expose counts in search results.
func (s *Service) BackfillChapterCount(mangaID, providerName, sourceID string, count int) {
	if count <= 0 {
		return
	}
	s.sources.Update(mangaID, func(sources []models.MangaSource) []models.MangaSource {
		for i := range sources {
			if sources[i].Provider == providerName && sources[i].SourceID == sourceID && sources[i].ChapterCount == 0 {
				sources[i].ChapterCount = count
			}
		}
		return sources
	})
}
