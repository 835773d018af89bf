package planner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/tripmind/travel-concierge/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(discard{}, nil))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

type MockGatherer struct {
	mock.Mock
}

func (m *MockGatherer) Gather(ctx context.Context, sessionID, query string, classified types.Intent) types.ContextBundle {
	return m.Called(ctx, sessionID, query, classified).Get(0).(types.ContextBundle)
}

func (m *MockGatherer) GatherForPlanning(ctx context.Context, destination string) types.ContextBundle {
	return m.Called(ctx, destination).Get(0).(types.ContextBundle)
}

func newPlanner(ai *MockProvider, g *MockGatherer) *ServiceImpl {
	return NewServiceImpl(ai, g, nil, time.Second, testLogger)
}

func emptyBundle() types.ContextBundle { return types.ContextBundle{} }

func baliRequest(days int) types.TripPlanRequest {
	return types.TripPlanRequest{
		Destination:  "Bali",
		DurationDays: days,
		Budget:       900,
		Currency:     "USD",
	}
}

func TestPlanTrip_InvalidJSONFallsBackBudgetConsistent(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "Bali").Return(emptyBundle())
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("Sure! Here is a lovely plan for your trip...", nil)

	response := newPlanner(ai, g).PlanTrip(context.Background(), baliRequest(3))

	require.NotNil(t, response)
	require.Len(t, response.Itinerary.Days, 3)
	assert.InDelta(t, 900, response.Itinerary.TotalCost, 0.001)
	assert.Equal(t, "USD", response.Itinerary.Currency)
	assert.Equal(t, "https://www.google.com/maps/search/Bali", response.MapLink)
	for i, day := range response.Itinerary.Days {
		assert.Equal(t, i+1, day.Day)
		assert.InDelta(t, 300, day.EstimatedCost, 0.001)
	}
}

func TestPlanTrip_ParsedItineraryRecomputesTotal(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "Bali").Return(emptyBundle())
	// Day costs sum to 850; any model-stated total is ignored.
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("```json\n"+`{
		"total_cost": 99999,
		"days": [
			{"day": 1, "morning": "9 AM: Visit Tanah Lot Temple", "afternoon": "2 PM: Explore Ubud Monkey Forest", "evening": "7 PM: Dinner at Locavore", "meals": {"breakfast": "Warung Biah Biah", "lunch": "Sardine", "dinner": "Locavore"}, "estimated_cost": 450},
			{"day": 2, "morning": "9 AM: Visit Uluwatu Temple", "afternoon": "2 PM: Explore Seminyak Beach", "evening": "7 PM: Dinner at Mozaic Restaurant", "meals": {"breakfast": "La Plancha", "lunch": "Warung Biah Biah", "dinner": "Mozaic Restaurant"}, "estimated_cost": 400}
		],
		"accommodation_suggestions": ["Alila Villas Uluwatu - Luxury clifftop resort"],
		"packing_list": ["Sunscreen"],
		"tips": ["Carry small cash"]
	}`+"\n```", nil)

	response := newPlanner(ai, g).PlanTrip(context.Background(), baliRequest(2))

	require.Len(t, response.Itinerary.Days, 2)
	assert.InDelta(t, 850, response.Itinerary.TotalCost, 0.001)
	assert.Equal(t, "Best Trip to Bali", response.Itinerary.Title)
	assert.Equal(t, "balanced", response.Itinerary.BudgetType)
	assert.Contains(t, response.Itinerary.Days[0].Morning, "Tanah Lot Temple")
	assert.Equal(t, []string{"Alila Villas Uluwatu - Luxury clifftop resort"}, response.Itinerary.AccommodationSuggestions)
}

func TestPlanTrip_DayCountMismatchFallsBack(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "Bali").Return(emptyBundle())
	// Valid JSON, but only one day for a three-day request.
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return(`{
		"days": [{"day": 1, "morning": "9 AM: Visit Tanah Lot Temple", "afternoon": "", "evening": "", "meals": {}, "estimated_cost": 900}]
	}`, nil)

	response := newPlanner(ai, g).PlanTrip(context.Background(), baliRequest(3))

	require.Len(t, response.Itinerary.Days, 3)
	assert.InDelta(t, 900, response.Itinerary.TotalCost, 0.001)
}

func TestPlanTrip_GenerationErrorFallsBack(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "Bali").Return(emptyBundle())
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("context deadline exceeded"))

	response := newPlanner(ai, g).PlanTrip(context.Background(), baliRequest(3))

	require.Len(t, response.Itinerary.Days, 3)
	assert.InDelta(t, response.Itinerary.SumDayCosts(), response.Itinerary.TotalCost, 0.001)
}

func TestPlanTrip_DefaultsCurrencyToUSD(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "Bali").Return(emptyBundle())
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("not json", nil)

	req := baliRequest(1)
	req.Currency = ""
	response := newPlanner(ai, g).PlanTrip(context.Background(), req)

	assert.Equal(t, "USD", response.Itinerary.Currency)
}

func TestPlanTrip_MapLinkEncodesSpaces(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	g.On("GatherForPlanning", mock.Anything, "New York").Return(emptyBundle())
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("not json", nil)

	req := types.TripPlanRequest{Destination: "New York", DurationDays: 1, Budget: 500, Currency: "USD"}
	response := newPlanner(ai, g).PlanTrip(context.Background(), req)

	assert.Equal(t, "https://www.google.com/maps/search/New+York", response.MapLink)
}

func TestBuildFallbackItinerary_RoundRobinWraps(t *testing.T) {
	attractions := []types.Place{{Name: "A1"}, {Name: "A2"}}
	restaurants := []types.Place{{Name: "R1"}, {Name: "R2"}, {Name: "R3"}}

	req := types.TripPlanRequest{Destination: "Bali", DurationDays: 4, Budget: 800, Currency: "USD"}
	it := buildFallbackItinerary(req, attractions, restaurants, nil)

	require.Len(t, it.Days, 4)
	// Day 3 morning index: ((3-1)*2) % 2 == 0, back to the first attraction.
	assert.Contains(t, it.Days[2].Morning, "A1")
	assert.Contains(t, it.Days[2].Afternoon, "A2")
	// Day 2 meals rotate through ((2-1)*3 + k) % 3.
	assert.Contains(t, it.Days[1].Meals["breakfast"], "R1")
	assert.Contains(t, it.Days[1].Meals["lunch"], "R2")
	assert.Contains(t, it.Days[1].Meals["dinner"], "R3")
	assert.InDelta(t, 800, it.TotalCost, 0.001)
}

func TestBuildFallbackItinerary_PlaceholdersWhenEmpty(t *testing.T) {
	req := types.TripPlanRequest{Destination: "Reykjavik", DurationDays: 2, Budget: 600, Currency: "EUR"}
	it := buildFallbackItinerary(req, nil, nil, nil)

	require.Len(t, it.Days, 2)
	assert.Contains(t, it.Days[0].Morning, "Popular attraction in Reykjavik")
	assert.Contains(t, it.Days[0].Meals["dinner"], "Local restaurant")
	assert.Contains(t, it.AccommodationSuggestions[0], "hotel in Reykjavik")
	assert.NotEmpty(t, it.PackingList)
	assert.Contains(t, it.Tips, "Check visa requirements for Reykjavik")
}

func TestFallbackAttractions_KnownAndUnknownCities(t *testing.T) {
	bali := fallbackAttractions("Bali, Indonesia")
	require.NotEmpty(t, bali)
	assert.Equal(t, "Tanah Lot Temple", bali[0].Name)

	generic := fallbackAttractions("Ulaanbaatar")
	require.Len(t, generic, 4)
	assert.Equal(t, "Historic District of Ulaanbaatar", generic[0].Name)
}

func TestPlanTrip_UsesGatheredAttractionsInPrompt(t *testing.T) {
	ai := new(MockProvider)
	g := new(MockGatherer)

	bundle := types.ContextBundle{
		CategoryPlaces: map[string][]types.Place{
			types.CategoryAttractions: {{Name: "Tegallalang Rice Terraces", Description: "Iconic terraced rice fields"}},
		},
	}
	g.On("GatherForPlanning", mock.Anything, "Bali").Return(bundle)
	ai.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Tegallalang Rice Terraces") &&
			strings.Contains(prompt, "AVAILABLE ATTRACTIONS")
	}), mock.Anything).Return("not json", nil)

	newPlanner(ai, g).PlanTrip(context.Background(), baliRequest(1))

	ai.AssertExpectations(t)
}
