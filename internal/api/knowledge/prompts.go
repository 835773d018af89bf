package knowledge

import "fmt"

const (
	attractionsSystemPrompt = "You are a travel expert with deep knowledge of destinations worldwide. Provide accurate, real information."
	restaurantsSystemPrompt = "You are a food critic with extensive knowledge of restaurants worldwide. Provide real restaurant names."
	hotelsSystemPrompt      = "You are a travel accommodation expert with knowledge of hotels worldwide. Provide real hotel names."
	weatherSystemPrompt     = "You are a weather expert. Provide typical weather patterns."
	tipsSystemPrompt        = "You are a travel advisor with extensive destination knowledge."
)

func getAttractionsPrompt(city string) string {
	return fmt.Sprintf(`List the top 15 most popular tourist attractions in %s.
For each attraction, provide:
- Exact name (as locals call it)
- Brief description (1 sentence)
- Typical entry fee (if applicable)
- Best visiting hours

Respond with ONLY valid JSON, no markdown:
{
    "places": [
        {
            "name": "Exact Attraction Name",
            "description": "Brief description",
            "price": "Entry fee or Free",
            "hours": "Opening hours"
        }
    ]
}`, city)
}

func getRestaurantsPrompt(city string) string {
	return fmt.Sprintf(`List 15 popular, highly-rated restaurants in %s.
Include a mix of local cuisine and international options, different price ranges.
For each restaurant, provide:
- Exact name
- Cuisine type
- Price range ($, $$, $$$)
- Brief description (1 sentence)

Respond with ONLY valid JSON, no markdown:
{
    "places": [
        {
            "name": "Restaurant Name",
            "description": "Cuisine type - What they're known for",
            "price": "$$",
            "cuisine": "Cuisine type"
        }
    ]
}`, city)
}

func getHotelsPrompt(city string) string {
	return fmt.Sprintf(`List 12 popular hotels in %s across different price ranges (budget, mid-range, luxury).
For each hotel, provide:
- Exact hotel name
- Approximate price per night
- Brief description (1 sentence)
- Key amenities

Respond with ONLY valid JSON, no markdown:
{
    "places": [
        {
            "name": "Hotel Name",
            "description": "Brief description and location",
            "price": "$50-80/night or $$$ for luxury",
            "amenities": "Pool, Spa, WiFi"
        }
    ]
}`, city)
}

func getWeatherPrompt(city string) string {
	return fmt.Sprintf(`Provide current typical weather information for %s.
Include temperature, conditions, and what to expect.
Keep it brief (2-3 sentences).`, city)
}

func getTravelTipsPrompt(destination string) string {
	return fmt.Sprintf(`Provide 5 essential travel tips for visiting %s.
Include practical advice about transportation, money, customs, safety, and best times to visit.
Keep each tip to 1-2 sentences.`, destination)
}
