package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tripmind/travel-concierge/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes category searches over the open web. Every method
// degrades to an empty result on failure; callers decide what "no data"
// means for their category.
type Service interface {
	SearchAttractions(ctx context.Context, city string) types.PlaceResult
	SearchRestaurants(ctx context.Context, city string) types.PlaceResult
	SearchHotels(ctx context.Context, city string) types.PlaceResult
	SearchWeather(ctx context.Context, city string) types.TextResult
	SearchTravelTips(ctx context.Context, destination string) types.TextResult
}

// searchClient is what the service needs from the fetcher.
type searchClient interface {
	Search(ctx context.Context, query string, maxResults int) []types.SearchResult
	FetchPage(ctx context.Context, url string) (string, error)
}

type ServiceImpl struct {
	logger         *slog.Logger
	fetcher        searchClient
	pageFetchLimit int
	maxResults     int
}

func NewServiceImpl(fetcher searchClient, pageFetchLimit, maxResults int, logger *slog.Logger) *ServiceImpl {
	if pageFetchLimit <= 0 {
		pageFetchLimit = 2
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &ServiceImpl{
		logger:         logger,
		fetcher:        fetcher,
		pageFetchLimit: pageFetchLimit,
		maxResults:     maxResults,
	}
}

func (s *ServiceImpl) SearchAttractions(ctx context.Context, city string) types.PlaceResult {
	query := fmt.Sprintf("top attractions things to do in %s", city)
	return types.PlaceResult{
		City:      city,
		Query:     query,
		Places:    s.searchWithExtraction(ctx, query),
		Timestamp: time.Now(),
	}
}

func (s *ServiceImpl) SearchRestaurants(ctx context.Context, city string) types.PlaceResult {
	query := fmt.Sprintf("best restaurants where to eat in %s", city)
	return types.PlaceResult{
		City:      city,
		Query:     query,
		Places:    s.searchWithExtraction(ctx, query),
		Timestamp: time.Now(),
	}
}

func (s *ServiceImpl) SearchHotels(ctx context.Context, city string) types.PlaceResult {
	query := fmt.Sprintf("best hotels where to stay in %s", city)
	return types.PlaceResult{
		City:      city,
		Query:     query,
		Places:    s.searchWithExtraction(ctx, query),
		Timestamp: time.Now(),
	}
}

func (s *ServiceImpl) SearchWeather(ctx context.Context, city string) types.TextResult {
	query := fmt.Sprintf("weather in %s today", city)
	return types.TextResult{
		City:      city,
		Query:     query,
		Summary:   s.snippetSummary(ctx, query, 2),
		Timestamp: time.Now(),
	}
}

func (s *ServiceImpl) SearchTravelTips(ctx context.Context, destination string) types.TextResult {
	query := fmt.Sprintf("travel guide tips %s", destination)
	return types.TextResult{
		City:      destination,
		Query:     query,
		Summary:   s.snippetSummary(ctx, query, 2),
		Timestamp: time.Now(),
	}
}

// searchWithExtraction searches, scrapes the top result pages for place
// names, and falls back to snippet extraction for pages that cannot be
// fetched. A total search failure yields an empty list.
func (s *ServiceImpl) searchWithExtraction(ctx context.Context, query string) []types.Place {
	results := s.fetcher.Search(ctx, query, s.maxResults)
	if len(results) == 0 {
		s.logger.WarnContext(ctx, "search returned no results", slog.String("query", query))
		return nil
	}

	var places []types.Place
	fetched := 0
	for _, result := range results {
		if fetched == s.pageFetchLimit {
			break
		}
		fetched++

		page, err := s.fetcher.FetchPage(ctx, result.URL)
		if err != nil {
			s.logger.DebugContext(ctx, "page fetch failed, extracting from snippet",
				slog.String("url", result.URL),
				slog.Any("error", err),
			)
			snippetPlaces := ExtractPlacesFromText(result.Snippet)
			if len(snippetPlaces) > maxSnippetPlaces {
				snippetPlaces = snippetPlaces[:maxSnippetPlaces]
			}
			places = append(places, snippetPlaces...)
			continue
		}

		extracted := ExtractPlacesFromHTML(page, result.URL)
		if len(extracted) > 5 {
			extracted = extracted[:5]
		}
		places = append(places, extracted...)
	}

	return DedupePlaces(places, maxExtractedPlaces)
}

// snippetSummary joins the top result snippets into one text block.
func (s *ServiceImpl) snippetSummary(ctx context.Context, query string, maxResults int) string {
	results := s.fetcher.Search(ctx, query, maxResults)
	if len(results) == 0 {
		return ""
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
	}
	return strings.Join(parts, " ")
}
