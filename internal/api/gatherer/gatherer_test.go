package gatherer

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripmind/travel-concierge/internal/api/intent"
	"github.com/tripmind/travel-concierge/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(discard{}, nil))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type MockKnowledge struct {
	mock.Mock
}

func (m *MockKnowledge) GetAttractions(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockKnowledge) GetRestaurants(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockKnowledge) GetHotels(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockKnowledge) GetWeather(ctx context.Context, city string) types.TextResult {
	return m.Called(ctx, city).Get(0).(types.TextResult)
}

func (m *MockKnowledge) GetTravelTips(ctx context.Context, destination string) types.TextResult {
	return m.Called(ctx, destination).Get(0).(types.TextResult)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) AppendExchange(sessionID, userMessage, assistantMessage string) {
	m.Called(sessionID, userMessage, assistantMessage)
}

func (m *MockSessions) History(sessionID string) []types.ConversationTurn {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.ConversationTurn)
}

func (m *MockSessions) AddDocuments(sessionID string, chunks []types.DocumentChunk) int {
	return m.Called(sessionID, chunks).Int(0)
}

func (m *MockSessions) Search(sessionID, query string, topK int) []types.DocumentExcerpt {
	args := m.Called(sessionID, query, topK)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.DocumentExcerpt)
}

func (m *MockSessions) Info(sessionID string) types.SessionInfoResponse {
	return m.Called(sessionID).Get(0).(types.SessionInfoResponse)
}

func (m *MockSessions) Clear(sessionID string) {
	m.Called(sessionID)
}

type MockWebSearch struct {
	mock.Mock
}

func (m *MockWebSearch) SearchAttractions(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockWebSearch) SearchRestaurants(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockWebSearch) SearchHotels(ctx context.Context, city string) types.PlaceResult {
	return m.Called(ctx, city).Get(0).(types.PlaceResult)
}

func (m *MockWebSearch) SearchWeather(ctx context.Context, city string) types.TextResult {
	return m.Called(ctx, city).Get(0).(types.TextResult)
}

func (m *MockWebSearch) SearchTravelTips(ctx context.Context, destination string) types.TextResult {
	return m.Called(ctx, destination).Get(0).(types.TextResult)
}

func placeResult(city string, names ...string) types.PlaceResult {
	places := make([]types.Place, len(names))
	for i, n := range names {
		places[i] = types.Place{Name: n}
	}
	return types.PlaceResult{City: city, Places: places, Timestamp: time.Now()}
}

func TestGather_WeatherOnlyForWeatherQuery(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)
	knowledgeMock.On("GetWeather", mock.Anything, "Tokyo").Return(types.TextResult{
		City: "Tokyo", Summary: "Sunny, 24C", Timestamp: time.Now(),
	})

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	classified := intent.Classify("What's the weather in Tokyo?")
	bundle := svc.Gather(context.Background(), "s1", "What's the weather in Tokyo?", classified)

	assert.Equal(t, "Sunny, 24C", bundle.WeatherSummary)
	assert.Equal(t, []string{"weather_search"}, bundle.ToolCalls)
	knowledgeMock.AssertNotCalled(t, "GetHotels", mock.Anything, mock.Anything)
	knowledgeMock.AssertNotCalled(t, "GetAttractions", mock.Anything, mock.Anything)
	knowledgeMock.AssertNotCalled(t, "GetRestaurants", mock.Anything, mock.Anything)
	sessionsMock.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestGather_NoLocationSkipsCategoryLookups(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "any good restaurants?", types.Intent{
		NeedsRestaurants: true,
	})

	assert.True(t, bundle.IsEmpty())
	knowledgeMock.AssertNotCalled(t, "GetRestaurants", mock.Anything, mock.Anything)
}

func TestGather_DocumentSearch(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)
	sessionsMock.On("Search", "s1", "what does my visa document say", defaultTopK).Return([]types.DocumentExcerpt{
		{Content: "30 day visa on arrival for Indonesia", Relevance: 0.8, Filename: "visa.pdf"},
	})

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "what does my visa document say", types.Intent{
		NeedsDocuments: true,
	})

	require.Len(t, bundle.DocumentExcerpts, 1)
	require.Len(t, bundle.SourcesUsed, 1)
	assert.Equal(t, "document", bundle.SourcesUsed[0].Type)
	assert.Contains(t, bundle.ToolCalls, "document_search")
}

func TestGather_EmptyCategoryResultsAreDropped(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)
	knowledgeMock.On("GetHotels", mock.Anything, "Paris").Return(types.PlaceResult{City: "Paris"})
	knowledgeMock.On("GetAttractions", mock.Anything, "Paris").Return(placeResult("Paris", "Eiffel Tower"))

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "q", types.Intent{
		NeedsHotels:      true,
		NeedsAttractions: true,
		Location:         "Paris",
	})

	assert.NotContains(t, bundle.CategoryPlaces, types.CategoryHotels)
	require.Contains(t, bundle.CategoryPlaces, types.CategoryAttractions)
	assert.Equal(t, "Eiffel Tower", bundle.CategoryPlaces[types.CategoryAttractions][0].Name)
	assert.Equal(t, []string{"attractions_search"}, bundle.ToolCalls)
}

func TestGather_GeneralKnowledgeAddsToolCallOnly(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "how to pack light", types.Intent{
		NeedsGeneralKnowledge: true,
	})

	assert.Equal(t, []string{"llm_knowledge"}, bundle.ToolCalls)
	assert.Empty(t, bundle.SourcesUsed)
}

func TestGather_WebSearchFallbackWhenKnowledgeEmpty(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	webMock := new(MockWebSearch)
	sessionsMock := new(MockSessions)
	knowledgeMock.On("GetAttractions", mock.Anything, "Lisbon").Return(types.PlaceResult{City: "Lisbon"})
	webMock.On("SearchAttractions", mock.Anything, "Lisbon").Return(placeResult("Lisbon", "Belém Tower"))

	svc := NewServiceImpl(knowledgeMock, webMock, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "q", types.Intent{
		NeedsAttractions: true,
		Location:         "Lisbon",
	})

	require.Contains(t, bundle.CategoryPlaces, types.CategoryAttractions)
	assert.Equal(t, "Belém Tower", bundle.CategoryPlaces[types.CategoryAttractions][0].Name)
	require.Len(t, bundle.SourcesUsed, 1)
	assert.Equal(t, "web_search", bundle.SourcesUsed[0].Type)
	webMock.AssertExpectations(t)
}

func TestGather_WebSearchNotConsultedWhenKnowledgeHasData(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	webMock := new(MockWebSearch)
	sessionsMock := new(MockSessions)
	knowledgeMock.On("GetAttractions", mock.Anything, "Paris").Return(placeResult("Paris", "Eiffel Tower"))

	svc := NewServiceImpl(knowledgeMock, webMock, sessionsMock, testLogger)
	bundle := svc.Gather(context.Background(), "s1", "q", types.Intent{
		NeedsAttractions: true,
		Location:         "Paris",
	})

	require.Len(t, bundle.SourcesUsed, 1)
	assert.Equal(t, "llm_search", bundle.SourcesUsed[0].Type)
	webMock.AssertNotCalled(t, "SearchAttractions", mock.Anything, mock.Anything)
}

func TestGatherForPlanning_FetchesAllCategories(t *testing.T) {
	knowledgeMock := new(MockKnowledge)
	sessionsMock := new(MockSessions)
	knowledgeMock.On("GetAttractions", mock.Anything, "Bali").Return(placeResult("Bali", "Tanah Lot Temple", "Uluwatu Temple"))
	knowledgeMock.On("GetRestaurants", mock.Anything, "Bali").Return(placeResult("Bali", "Locavore"))
	knowledgeMock.On("GetHotels", mock.Anything, "Bali").Return(placeResult("Bali", "Alila Villas"))
	knowledgeMock.On("GetTravelTips", mock.Anything, "Bali").Return(types.TextResult{
		City: "Bali", Summary: "Carry small cash for temple donations.", Timestamp: time.Now(),
	})

	svc := NewServiceImpl(knowledgeMock, nil, sessionsMock, testLogger)
	bundle := svc.GatherForPlanning(context.Background(), "Bali")

	assert.Len(t, bundle.Places(types.CategoryAttractions), 2)
	assert.Len(t, bundle.Places(types.CategoryRestaurants), 1)
	assert.Len(t, bundle.Places(types.CategoryHotels), 1)
	assert.Equal(t, "Carry small cash for temple donations.", bundle.TravelTips)
	assert.Len(t, bundle.SourcesUsed, 3)
	knowledgeMock.AssertExpectations(t)
}
