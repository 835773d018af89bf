package planner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/tripmind/travel-concierge/app/observability/metrics"
	generativeAI "github.com/tripmind/travel-concierge/internal/api/generative_ai"
	"github.com/tripmind/travel-concierge/internal/api/gatherer"
	"github.com/tripmind/travel-concierge/internal/types"
)

const (
	planTemperature = float32(0.7)
	maxPlanTokens   = 3000

	defaultPlanTimeout = 60 * time.Second
)

var _ Service = (*ServiceImpl)(nil)

// Service builds a day-by-day trip plan. PlanTrip never fails: when the
// model's structured output does not parse, a deterministic fallback
// itinerary is assembled from whatever places were gathered.
type Service interface {
	PlanTrip(ctx context.Context, req types.TripPlanRequest) *types.TripPlanResponse
}

type ServiceImpl struct {
	logger            *slog.Logger
	ai                generativeAI.Provider
	gatherer          gatherer.Service
	metrics           *metrics.AppMetrics
	generationTimeout time.Duration
}

func NewServiceImpl(ai generativeAI.Provider, contextGatherer gatherer.Service, appMetrics *metrics.AppMetrics, generationTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	if generationTimeout <= 0 {
		generationTimeout = defaultPlanTimeout
	}
	return &ServiceImpl{
		logger:            logger,
		ai:                ai,
		gatherer:          contextGatherer,
		metrics:           appMetrics,
		generationTimeout: generationTimeout,
	}
}

// planPayload is the JSON shape the model is instructed to emit. The total
// cost is deliberately absent: it is always recomputed from the days.
type planPayload struct {
	Days                     []types.DayPlan `json:"days"`
	AccommodationSuggestions []string        `json:"accommodation_suggestions"`
	PackingList              []string        `json:"packing_list"`
	Tips                     []string        `json:"tips"`
}

func (s *ServiceImpl) PlanTrip(ctx context.Context, req types.TripPlanRequest) *types.TripPlanResponse {
	if req.Currency == "" {
		req.Currency = "USD"
	}

	l := s.logger.With(
		slog.String("destination", req.Destination),
		slog.Int("duration_days", req.DurationDays),
	)

	bundle := s.gatherer.GatherForPlanning(ctx, req.Destination)

	attractions := bundle.Places(types.CategoryAttractions)
	if len(attractions) == 0 {
		l.InfoContext(ctx, "No attractions gathered, using curated standbys")
		attractions = fallbackAttractions(req.Destination)
	}
	restaurants := bundle.Places(types.CategoryRestaurants)
	if len(restaurants) == 0 {
		restaurants = fallbackRestaurants(req.Destination)
	}
	hotels := bundle.Places(types.CategoryHotels)
	if len(hotels) == 0 {
		hotels = fallbackHotels(req.Destination)
	}

	itinerary, ok := s.generateItinerary(ctx, req, attractions, bundle.TravelTips)
	if !ok {
		l.WarnContext(ctx, "Itinerary generation failed, building fallback plan")
		if s.metrics != nil {
			s.metrics.FallbackItinerariesTotal.Add(ctx, 1)
		}
		itinerary = buildFallbackItinerary(req, attractions, restaurants, hotels)
	}

	return &types.TripPlanResponse{
		Destination: req.Destination,
		Duration:    req.DurationDays,
		Itinerary:   itinerary,
		MapLink:     "https://www.google.com/maps/search/" + strings.ReplaceAll(req.Destination, " ", "+"),
	}
}

// generateItinerary runs one generation call and parses the result. A day
// count that disagrees with the requested duration is treated the same as
// malformed JSON: the caller falls back.
func (s *ServiceImpl) generateItinerary(ctx context.Context, req types.TripPlanRequest, attractions []types.Place, travelTips string) (types.Itinerary, bool) {
	prompt := buildItineraryPrompt(req, attractions, travelTips)

	genCtx, cancel := context.WithTimeout(ctx, s.generationTimeout)
	defer cancel()

	response, err := s.ai.GenerateText(genCtx, prompt, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](planTemperature),
		MaxOutputTokens:   maxPlanTokens,
		SystemInstruction: genai.NewContentFromText(plannerSystemPrompt, genai.RoleUser),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Itinerary generation call failed", slog.Any("error", err))
		return types.Itinerary{}, false
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(cleanPlanResponse(response)), &payload); err != nil {
		s.logger.WarnContext(ctx, "Itinerary response did not parse as JSON", slog.Any("error", err))
		if s.metrics != nil {
			s.metrics.LLMParseFailuresTotal.Add(ctx, 1)
		}
		return types.Itinerary{}, false
	}
	if len(payload.Days) != req.DurationDays {
		s.logger.WarnContext(ctx, "Itinerary day count does not match requested duration",
			slog.Int("got", len(payload.Days)),
			slog.Int("want", req.DurationDays),
		)
		return types.Itinerary{}, false
	}

	it := types.Itinerary{
		Title:                    "Best Trip to " + req.Destination,
		BudgetType:               "balanced",
		Currency:                 req.Currency,
		Days:                     payload.Days,
		AccommodationSuggestions: payload.AccommodationSuggestions,
		PackingList:              payload.PackingList,
		Tips:                     payload.Tips,
	}
	it.TotalCost = it.SumDayCosts()
	return it, true
}

// cleanPlanResponse strips markdown fences and leading prose, the same
// treatment the knowledge lookups apply before parsing.
func cleanPlanResponse(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```json"); idx != -1 {
		response = response[idx+len("```json"):]
		if end := strings.Index(response, "```"); end != -1 {
			response = response[:end]
		}
	} else if idx := strings.Index(response, "```"); idx != -1 {
		response = response[idx+3:]
		if end := strings.Index(response, "```"); end != -1 {
			response = response[:end]
		}
	}
	response = strings.TrimSpace(response)

	if !strings.HasPrefix(response, "{") {
		if first := strings.Index(response, "{"); first != -1 {
			response = response[first:]
		}
	}
	return strings.TrimSpace(response)
}
