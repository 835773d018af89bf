package gatherer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tripmind/travel-concierge/internal/api/knowledge"
	"github.com/tripmind/travel-concierge/internal/api/session"
	"github.com/tripmind/travel-concierge/internal/api/websearch"
	"github.com/tripmind/travel-concierge/internal/types"
)

// defaultTopK is how many document excerpts a query pulls from session
// memory.
const defaultTopK = 3

var _ Service = (*ServiceImpl)(nil)

// Service assembles the per-request ContextBundle: it reads the intent,
// fans out to the sources the intent asks for, and collects every non-empty
// result with a provenance record.
type Service interface {
	Gather(ctx context.Context, sessionID, query string, intent types.Intent) types.ContextBundle
	GatherForPlanning(ctx context.Context, destination string) types.ContextBundle
}

type ServiceImpl struct {
	logger    *slog.Logger
	knowledge knowledge.Service
	web       websearch.Service
	sessions  session.Service
}

// NewServiceImpl wires the gatherer's sources. web may be nil; when set it
// serves as the fallback for any category the knowledge lookup returned
// empty, trading the fetcher's throttle delay for a second shot at data.
func NewServiceImpl(knowledgeService knowledge.Service, webService websearch.Service, sessionStore session.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		knowledge: knowledgeService,
		web:       webService,
		sessions:  sessionStore,
	}
}

// categoryLookup is one category's outcome plus which source produced it,
// recorded as the provenance type.
type categoryLookup struct {
	result types.PlaceResult
	source string
}

// Gather runs the category lookups for one conversational turn. Lookups are
// issued concurrently; the web fetcher's own throttling remains the only
// serialization point. Every lookup degrades to empty on failure, so the
// group never returns an error.
func (s *ServiceImpl) Gather(ctx context.Context, sessionID, query string, intent types.Intent) types.ContextBundle {
	bundle := types.ContextBundle{
		CategoryPlaces: make(map[string][]types.Place),
	}

	var (
		docs          []types.DocumentExcerpt
		weather       types.TextResult
		weatherSource string
		hotels        categoryLookup
		attractions   categoryLookup
		restaurants   categoryLookup
	)

	g, gctx := errgroup.WithContext(ctx)

	if intent.NeedsDocuments {
		g.Go(func() error {
			docs = s.sessions.Search(sessionID, query, defaultTopK)
			return nil
		})
	}

	if intent.HasLocation() {
		city := intent.Location
		if intent.NeedsWeather {
			g.Go(func() error {
				weather, weatherSource = s.lookupWeather(gctx, city)
				return nil
			})
		}
		if intent.NeedsHotels {
			g.Go(func() error {
				hotels = s.lookupPlaces(gctx, city, s.knowledge.GetHotels, webSearch(s.web, websearch.Service.SearchHotels))
				return nil
			})
		}
		if intent.NeedsAttractions {
			g.Go(func() error {
				attractions = s.lookupPlaces(gctx, city, s.knowledge.GetAttractions, webSearch(s.web, websearch.Service.SearchAttractions))
				return nil
			})
		}
		if intent.NeedsRestaurants {
			g.Go(func() error {
				restaurants = s.lookupPlaces(gctx, city, s.knowledge.GetRestaurants, webSearch(s.web, websearch.Service.SearchRestaurants))
				return nil
			})
		}
	}

	_ = g.Wait()

	// Assemble in a fixed order so provenance stays stable across runs.
	if len(docs) > 0 {
		bundle.DocumentExcerpts = docs
		for _, doc := range docs {
			bundle.SourcesUsed = append(bundle.SourcesUsed, types.SourceRecord{
				Type:    "document",
				Content: truncate(doc.Content, 200),
			})
		}
		bundle.ToolCalls = append(bundle.ToolCalls, "document_search")
	}

	if !weather.Empty() {
		bundle.WeatherSummary = weather.Summary
		bundle.SourcesUsed = append(bundle.SourcesUsed, types.SourceRecord{
			Type:  weatherSource,
			Query: fmt.Sprintf("Weather for %s", intent.Location),
		})
		bundle.ToolCalls = append(bundle.ToolCalls, "weather_search")
	}

	s.addPlaces(&bundle, types.CategoryHotels, hotels, "hotel_search",
		fmt.Sprintf("Hotels in %s", intent.Location))
	s.addPlaces(&bundle, types.CategoryAttractions, attractions, "attractions_search",
		fmt.Sprintf("Attractions in %s", intent.Location))
	s.addPlaces(&bundle, types.CategoryRestaurants, restaurants, "restaurants_search",
		fmt.Sprintf("Restaurants in %s", intent.Location))

	if intent.NeedsGeneralKnowledge {
		// No fetch: the synthesizer leans on the model's own knowledge.
		bundle.ToolCalls = append(bundle.ToolCalls, "llm_knowledge")
	}

	return bundle
}

// GatherForPlanning collects the place lists an itinerary needs. Planning
// always wants attractions, restaurants and hotels for the destination, so
// no intent pass is involved.
func (s *ServiceImpl) GatherForPlanning(ctx context.Context, destination string) types.ContextBundle {
	bundle := types.ContextBundle{
		CategoryPlaces: make(map[string][]types.Place),
	}

	var (
		attractions, restaurants, hotels categoryLookup
		tips                             types.TextResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attractions = s.lookupPlaces(gctx, destination, s.knowledge.GetAttractions, webSearch(s.web, websearch.Service.SearchAttractions))
		return nil
	})
	g.Go(func() error {
		restaurants = s.lookupPlaces(gctx, destination, s.knowledge.GetRestaurants, webSearch(s.web, websearch.Service.SearchRestaurants))
		return nil
	})
	g.Go(func() error {
		hotels = s.lookupPlaces(gctx, destination, s.knowledge.GetHotels, webSearch(s.web, websearch.Service.SearchHotels))
		return nil
	})
	g.Go(func() error {
		tips = s.knowledge.GetTravelTips(gctx, destination)
		if tips.Empty() && s.web != nil {
			tips = s.web.SearchTravelTips(gctx, destination)
		}
		return nil
	})
	_ = g.Wait()

	if !tips.Empty() {
		bundle.TravelTips = tips.Summary
	}

	s.addPlaces(&bundle, types.CategoryAttractions, attractions, "attractions_search",
		fmt.Sprintf("Attractions in %s", destination))
	s.addPlaces(&bundle, types.CategoryRestaurants, restaurants, "restaurants_search",
		fmt.Sprintf("Restaurants in %s", destination))
	s.addPlaces(&bundle, types.CategoryHotels, hotels, "hotel_search",
		fmt.Sprintf("Hotels in %s", destination))

	return bundle
}

// lookupPlaces tries the knowledge requester and, only when it came back
// empty, the web search path.
func (s *ServiceImpl) lookupPlaces(ctx context.Context, city string, get, search func(context.Context, string) types.PlaceResult) categoryLookup {
	result := get(ctx, city)
	if len(result.Places) > 0 || search == nil {
		return categoryLookup{result: result, source: "llm_search"}
	}
	s.logger.DebugContext(ctx, "Knowledge lookup empty, trying web search",
		slog.String("city", city),
	)
	return categoryLookup{result: search(ctx, city), source: "web_search"}
}

func (s *ServiceImpl) lookupWeather(ctx context.Context, city string) (types.TextResult, string) {
	result := s.knowledge.GetWeather(ctx, city)
	if !result.Empty() || s.web == nil {
		return result, "llm_search"
	}
	return s.web.SearchWeather(ctx, city), "web_search"
}

// webSearch adapts a method on the web service into a plain lookup func,
// nil when no web service is configured.
func webSearch(web websearch.Service, method func(websearch.Service, context.Context, string) types.PlaceResult) func(context.Context, string) types.PlaceResult {
	if web == nil {
		return nil
	}
	return func(ctx context.Context, city string) types.PlaceResult {
		return method(web, ctx, city)
	}
}

func (s *ServiceImpl) addPlaces(bundle *types.ContextBundle, category string, lookup categoryLookup, toolCall, query string) {
	if len(lookup.result.Places) == 0 {
		return
	}
	bundle.CategoryPlaces[category] = lookup.result.Places
	bundle.SourcesUsed = append(bundle.SourcesUsed, types.SourceRecord{
		Type:  lookup.source,
		Query: query,
	})
	bundle.ToolCalls = append(bundle.ToolCalls, toolCall)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
