package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_WeatherQueryWithCity(t *testing.T) {
	intent := Classify("What's the weather in Tokyo?")

	assert.True(t, intent.NeedsWeather)
	assert.False(t, intent.NeedsHotels)
	assert.False(t, intent.NeedsDocuments)
	assert.Equal(t, "Tokyo", intent.Location)
	assert.True(t, intent.HasLocation())
}

func TestClassify_MultipleCategories(t *testing.T) {
	intent := Classify("Where to stay and what to eat in Paris?")

	assert.True(t, intent.NeedsHotels)
	assert.True(t, intent.NeedsRestaurants)
	assert.Equal(t, "Paris", intent.Location)
}

func TestClassify_Deterministic(t *testing.T) {
	query := "best time to visit Barcelona, any good restaurants?"

	first := Classify(query)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Classify(query))
	}
}

func TestClassify_PrepositionFallback(t *testing.T) {
	// "Springfield" is not in the gazetteer; the preposition scan should
	// pick it up because the query asks about places.
	intent := Classify("What are the best places in springfield?")

	assert.Equal(t, "Springfield", intent.Location)
	assert.True(t, intent.NeedsAttractions)
}

func TestClassify_NoLocation(t *testing.T) {
	intent := Classify("How do I pack for a long trip?")

	assert.False(t, intent.HasLocation())
	assert.Empty(t, intent.Location)
}

func TestClassify_LocationNeverEmptyWhitespace(t *testing.T) {
	// A preposition followed by pure punctuation must not produce a
	// whitespace-only location.
	intent := Classify("places in ?")

	assert.False(t, intent.HasLocation())
}

func TestClassify_DocumentQuery(t *testing.T) {
	intent := Classify("What does my uploaded visa requirement say?")

	assert.True(t, intent.NeedsDocuments)
}

func TestClassify_GeneralKnowledge(t *testing.T) {
	intent := Classify("what is the average cost of a trip to Rome")

	assert.True(t, intent.NeedsGeneralKnowledge)
	assert.Equal(t, "Rome", intent.Location)
}

func TestClassify_MultiWordCity(t *testing.T) {
	intent := Classify("things to do in new york this weekend")

	assert.Equal(t, "New York", intent.Location)
	assert.True(t, intent.NeedsAttractions)
}
