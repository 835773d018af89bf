package intent

import (
	"strings"

	"github.com/tripmind/travel-concierge/internal/types"
)

// commonCities is the gazetteer scanned for a location mention. First hit
// wins, matching is case-insensitive substring.
var commonCities = []string{
	"tokyo", "paris", "london", "new york", "delhi", "mumbai", "bangalore",
	"rome", "barcelona", "amsterdam", "dubai", "singapore", "bangkok",
	"istanbul", "sydney", "toronto", "san francisco", "los angeles", "chicago",
	"chennai", "kolkata", "hyderabad", "pune", "ahmedabad", "jaipur", "goa",
	"berlin", "madrid", "vienna", "prague", "miami", "vegas", "seattle",
}

var (
	documentKeywords    = []string{"document", "visa", "requirement", "uploaded", "my file"}
	weatherKeywords     = []string{"weather", "temperature", "climate", "forecast", "rain"}
	hotelKeywords       = []string{"hotel", "stay", "accommodation", "lodging", "where to stay"}
	attractionKeywords  = []string{"attraction", "visit", "see", "things to do", "sightseeing", "places"}
	restaurantKeywords  = []string{"restaurant", "food", "eat", "dining", "cuisine"}
	generalKeywords     = []string{"how to", "what is", "when is", "best time", "cost", "price"}
	locationPreposition = map[string]bool{"in": true, "at": true, "near": true, "around": true}
)

// Classify derives an Intent from a raw query. It is a pure function: the
// same query always yields the same Intent, and no external call is made.
func Classify(query string) types.Intent {
	lower := strings.ToLower(query)

	intent := types.Intent{
		NeedsDocuments:        containsAny(lower, documentKeywords),
		NeedsWeather:          containsAny(lower, weatherKeywords),
		NeedsHotels:           containsAny(lower, hotelKeywords),
		NeedsAttractions:      containsAny(lower, attractionKeywords),
		NeedsRestaurants:      containsAny(lower, restaurantKeywords),
		NeedsGeneralKnowledge: containsAny(lower, generalKeywords),
	}

	intent.Location = extractLocation(lower)

	return intent
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractLocation returns a title-cased location or "" when no candidate is
// found. It never returns a non-empty string of whitespace.
func extractLocation(lower string) string {
	for _, city := range commonCities {
		if strings.Contains(lower, city) {
			return titleCase(city)
		}
	}

	// No gazetteer hit. When the query asks about places, guess the word
	// following a location preposition.
	if strings.Contains(lower, "places") || strings.Contains(lower, "attractions") {
		words := strings.Fields(lower)
		for i, word := range words {
			if locationPreposition[word] && i+1 < len(words) {
				candidate := strings.Trim(words[i+1], "?,.!")
				if candidate != "" {
					return titleCase(candidate)
				}
			}
		}
	}

	return ""
}

// titleCase uppercases the first letter of every space-separated word.
// strings.Title is deprecated and the gazetteer is plain ASCII, so a manual
// pass is enough.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
