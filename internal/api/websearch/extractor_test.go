package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmind/travel-concierge/internal/types"
)

func TestIsValidPlaceName(t *testing.T) {
	valid := []string{
		"Tanah Lot Temple",
		"Eiffel Tower",
		"Uluwatu",
		"Warung Babi Guling Ibu Oka",
	}
	for _, name := range valid {
		assert.True(t, isValidPlaceName(name), "expected valid: %q", name)
	}

	invalid := []string{
		"",
		"Ubu",                  // too short
		"tanah lot temple",     // lowercase start
		"Click here for more",  // denylist
		"Subscribe to updates", // denylist
		"Best Restaurants",     // denylist
		"NAVIGATION MENU BAR",  // all caps beyond 10 chars
		"1234 5678",            // no letter
	}
	for _, name := range invalid {
		assert.False(t, isValidPlaceName(name), "expected invalid: %q", name)
	}
}

func TestCleanPlaceName(t *testing.T) {
	cases := map[string]string{
		"1. Tanah Lot Temple":            "Tanah Lot Temple",
		"3) Visit Uluwatu Temple":        "Uluwatu Temple",
		"Explore Ubud Monkey Forest":     "Ubud Monkey Forest",
		"Sacred Monkey Forest (Ubud)":    "Sacred Monkey Forest",
		"The Louvre Museum":              "Louvre Museum",
		"Pura Besakih https://promo.io":  "Pura Besakih",
		"Contact info@example.com Villa": "Contact Villa",
		"  Campuhan   Ridge   Walk  ":    "Campuhan Ridge Walk",
	}
	for input, want := range cases {
		assert.Equal(t, want, cleanPlaceName(input), "input: %q", input)
	}
}

func TestExtractPlacesFromHTML_Headings(t *testing.T) {
	page := `<html><body>
		<h2>Tanah Lot Temple</h2>
		<p>A sea temple on a rock formation, famous for sunset views.</p>
		<h2>Uluwatu Temple</h2>
		<p>Clifftop temple with a kecak dance performance every evening.</p>
	</body></html>`

	places := ExtractPlacesFromHTML(page, "https://example.com/bali")

	require.Len(t, places, 2)
	assert.Equal(t, "Tanah Lot Temple", places[0].Name)
	assert.Contains(t, places[0].Description, "sea temple")
	assert.Equal(t, "https://example.com/bali", places[0].SourceURL)
	assert.Equal(t, "Uluwatu Temple", places[1].Name)
}

func TestExtractPlacesFromHTML_ListItems(t *testing.T) {
	page := `<html><body><ol>
		<li>1. Campuhan Ridge Walk - an easy scenic hike</li>
		<li>2) Tegallalang Rice Terrace: iconic paddies north of Ubud</li>
		<li>just some prose without a number</li>
	</ol></body></html>`

	places := ExtractPlacesFromHTML(page, "https://example.com")

	require.Len(t, places, 2)
	assert.Equal(t, "Campuhan Ridge Walk", places[0].Name)
	assert.Equal(t, "Tegallalang Rice Terrace", places[1].Name)
}

func TestExtractPlacesFromHTML_BoldText(t *testing.T) {
	page := `<html><body>
		<strong>Sacred Monkey Forest</strong>
		<p>Nature reserve and temple complex in Ubud.</p>
	</body></html>`

	places := ExtractPlacesFromHTML(page, "https://example.com")

	require.Len(t, places, 1)
	assert.Equal(t, "Sacred Monkey Forest", places[0].Name)
	assert.Contains(t, places[0].Description, "Nature reserve")
}

func TestExtractPlacesFromHTML_SkipsScriptContent(t *testing.T) {
	page := `<html><body>
		<script>var x = "Fake Palace Name";</script>
		<h2>Real Palace</h2>
		<p>Actually on the page.</p>
	</body></html>`

	places := ExtractPlacesFromHTML(page, "")

	require.Len(t, places, 1)
	assert.Equal(t, "Real Palace", places[0].Name)
}

func TestExtractPlacesFromText(t *testing.T) {
	snippet := "1. Tanah Lot Temple - a must see, 2. Uluwatu Temple - clifftop views"

	places := ExtractPlacesFromText(snippet)

	require.NotEmpty(t, places)
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Tanah Lot Temple")
	assert.Contains(t, names, "Uluwatu Temple")
}

func TestDedupePlaces_CaseInsensitive(t *testing.T) {
	page := `<html><body>
		<h2>Tanah Lot Temple</h2><p>First mention.</p>
		<h2>TANAH LOT temple</h2><p>Second mention.</p>
	</body></html>`

	places := DedupePlaces(ExtractPlacesFromHTML(page, ""), maxExtractedPlaces)

	require.Len(t, places, 1)
	assert.Equal(t, "Tanah Lot Temple", places[0].Name)
}

func TestDedupePlaces_Cap(t *testing.T) {
	var places []types.Place
	for i := 0; i < 30; i++ {
		places = append(places, types.Place{Name: "Place Number " + string(rune('A'+i))})
	}

	assert.Len(t, DedupePlaces(places, maxExtractedPlaces), maxExtractedPlaces)
}

func TestExtractPlacesFromHTML_AllNamesValid(t *testing.T) {
	page := `<html><body>
		<h2>ok</h2>
		<h2>click here</h2>
		<h2>READ THE FULL GUIDE NOW</h2>
		<h2>Gion District</h2>
		<li>1) x</li>
	</body></html>`

	for _, place := range ExtractPlacesFromHTML(page, "") {
		assert.True(t, isValidPlaceName(place.Name), "invalid name leaked: %q", place.Name)
	}
}
