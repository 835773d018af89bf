package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"github.com/tripmind/travel-concierge/app/observability/metrics"
	generativeAI "github.com/tripmind/travel-concierge/internal/api/generative_ai"
	"github.com/tripmind/travel-concierge/internal/types"
)

// Factual lookups run cold so repeat queries for the same city stay stable.
const lookupTemperature = float32(0.3)

var _ Service = (*ServiceImpl)(nil)

// Service asks the generative backend for categorized travel facts. Every
// method returns a well-formed result: a backend failure or unparseable
// response yields an empty result tagged with the query and a timestamp,
// never an error.
type Service interface {
	GetAttractions(ctx context.Context, city string) types.PlaceResult
	GetRestaurants(ctx context.Context, city string) types.PlaceResult
	GetHotels(ctx context.Context, city string) types.PlaceResult
	GetWeather(ctx context.Context, city string) types.TextResult
	GetTravelTips(ctx context.Context, destination string) types.TextResult
}

type ServiceImpl struct {
	logger  *slog.Logger
	ai      generativeAI.Provider
	cache   *cache.Cache
	metrics *metrics.AppMetrics
}

func NewServiceImpl(ai generativeAI.Provider, resultCache *cache.Cache, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		ai:      ai,
		cache:   resultCache,
		metrics: appMetrics,
	}
}

func (s *ServiceImpl) GetAttractions(ctx context.Context, city string) types.PlaceResult {
	return s.placeLookup(ctx, city, fmt.Sprintf("attractions in %s", city),
		getAttractionsPrompt(city), attractionsSystemPrompt)
}

func (s *ServiceImpl) GetRestaurants(ctx context.Context, city string) types.PlaceResult {
	return s.placeLookup(ctx, city, fmt.Sprintf("restaurants in %s", city),
		getRestaurantsPrompt(city), restaurantsSystemPrompt)
}

func (s *ServiceImpl) GetHotels(ctx context.Context, city string) types.PlaceResult {
	return s.placeLookup(ctx, city, fmt.Sprintf("hotels in %s", city),
		getHotelsPrompt(city), hotelsSystemPrompt)
}

func (s *ServiceImpl) GetWeather(ctx context.Context, city string) types.TextResult {
	return s.textLookup(ctx, city, fmt.Sprintf("weather in %s", city),
		getWeatherPrompt(city), weatherSystemPrompt, 200)
}

func (s *ServiceImpl) GetTravelTips(ctx context.Context, destination string) types.TextResult {
	return s.textLookup(ctx, destination, fmt.Sprintf("travel tips for %s", destination),
		getTravelTipsPrompt(destination), tipsSystemPrompt, 400)
}

// placeLookup asks for a JSON place list and defensively parses the answer.
// The empty PlaceResult on every failure path is the component's contract:
// a truncated model response means "no data for this category", nothing
// more.
func (s *ServiceImpl) placeLookup(ctx context.Context, city, query, prompt, system string) types.PlaceResult {
	result := types.PlaceResult{
		City:      city,
		Query:     query,
		Timestamp: time.Now(),
	}

	if cached, found := s.cacheGet(query); found {
		if places, ok := cached.([]types.Place); ok {
			result.Places = places
			return result
		}
	}

	response, err := s.generate(ctx, prompt, system, 3000)
	if err != nil {
		s.logger.WarnContext(ctx, "knowledge lookup failed", slog.String("query", query), slog.Any("error", err))
		return result
	}

	var payload struct {
		Places []types.Place `json:"places"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &payload); err != nil {
		s.logger.WarnContext(ctx, "knowledge response did not parse",
			slog.String("query", query),
			slog.Any("error", err),
		)
		if s.metrics != nil {
			s.metrics.LLMParseFailuresTotal.Add(ctx, 1)
		}
		return result
	}

	// Drop entries the model returned without a name; Place.name is the
	// dedup key and must never be empty.
	places := make([]types.Place, 0, len(payload.Places))
	for _, p := range payload.Places {
		if p.Name != "" {
			places = append(places, p)
		}
	}

	result.Places = places
	s.cacheSet(query, places)
	return result
}

func (s *ServiceImpl) textLookup(ctx context.Context, city, query, prompt, system string, maxTokens int32) types.TextResult {
	result := types.TextResult{
		City:      city,
		Query:     query,
		Timestamp: time.Now(),
	}

	if cached, found := s.cacheGet(query); found {
		if summary, ok := cached.(string); ok {
			result.Summary = summary
			return result
		}
	}

	response, err := s.generate(ctx, prompt, system, maxTokens)
	if err != nil {
		s.logger.WarnContext(ctx, "knowledge lookup failed", slog.String("query", query), slog.Any("error", err))
		return result
	}

	result.Summary = response
	s.cacheSet(query, response)
	return result
}

func (s *ServiceImpl) generate(ctx context.Context, prompt, system string, maxTokens int32) (string, error) {
	start := time.Now()
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](lookupTemperature),
		MaxOutputTokens:   maxTokens,
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	response, err := s.ai.GenerateText(ctx, prompt, config)
	if s.metrics != nil {
		s.metrics.LLMRequestsTotal.Add(ctx, 1)
		s.metrics.LLMRequestDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	return response, err
}

func (s *ServiceImpl) cacheGet(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *ServiceImpl) cacheSet(key string, value interface{}) {
	if s.cache == nil {
		return
	}
	s.cache.Set(key, value, cache.DefaultExpiration)
}
