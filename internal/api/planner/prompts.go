package planner

import (
	"fmt"
	"strings"

	"github.com/tripmind/travel-concierge/internal/types"
)

const plannerSystemPrompt = `You are an expert travel planner creating detailed, realistic itineraries.
Use the provided attraction names and recommend actual restaurants and hotels in the destination.
CRITICAL: Use real place names - actual attractions, real restaurant names, real hotel names that exist in the destination.`

// buildItineraryPrompt assembles the planning prompt around the gathered
// attraction list. The JSON schema in the prompt mirrors the DayPlan and
// Itinerary shapes so a compliant response parses directly.
func buildItineraryPrompt(req types.TripPlanRequest, attractions []types.Place, travelTips string) string {
	dailyBudget := req.Budget / float64(req.DurationDays)

	interests := "general sightseeing, culture, food"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	dietary := "none"
	if len(req.DietaryPreferences) > 0 {
		dietary = strings.Join(req.DietaryPreferences, ", ")
	}

	tipsSection := ""
	if travelTips != "" {
		tipsSection = "\nTRAVEL TIPS:\n" + travelTips + "\n"
	}

	return fmt.Sprintf(`Create a detailed %d-day trip itinerary for %s.

TRIP PARAMETERS:
- Total Budget: %.2f %s
- Daily Budget: ~%.2f %s/day
- Traveler Interests: %s
- Dietary Preferences: %s

AVAILABLE ATTRACTIONS (USE THESE EXACT NAMES):
%s
%s
INSTRUCTIONS:
1. Use the actual attraction names listed above for activities
2. Recommend REAL restaurants in %s (research and use actual restaurant names)
3. Recommend REAL hotels in %s (research and use actual hotel names)
4. Create realistic daily schedules with specific timing
5. Include different places each day for variety
6. Match activities to user interests: %s
7. Suggest authentic local dishes and must-try foods in %s

FOR EACH DAY INCLUDE:
- Morning activity (8 AM - 12 PM) with specific attraction name from list
- Afternoon activity (12 PM - 6 PM) with specific attraction name from list
- Evening activity (6 PM - 10 PM) with dinner location
- Meals with REAL restaurant names in %s and specific local dishes to try
- Total estimated daily cost

RESPOND WITH VALID JSON ONLY (no markdown, no extra text):
{
    "days": [
        {
            "day": 1,
            "morning": "9 AM: Visit [Actual Attraction Name from list] - [Activity description]. Entry: [Cost if known]. Duration: [time]",
            "afternoon": "2 PM: Explore [Another Attraction from list] - [Activity]. Entry: [Cost]",
            "evening": "7 PM: Dinner at [Real Restaurant Name in %s]. Try their [specific local dish].",
            "meals": {
                "breakfast": "[Real Restaurant Name] - [Local dish] (Est. cost)",
                "lunch": "[Real Restaurant Name] - [Local dish] (Est. cost)",
                "dinner": "[Real Restaurant Name] - [Local dish] (Est. cost)"
            },
            "estimated_cost": %.2f
        }
    ],
    "accommodation_suggestions": [
        "[Real Hotel Name in %s] - [Price range] - [Brief description]",
        "[Another Real Hotel Name] - [Price range] - [Brief description]"
    ],
    "packing_list": ["Item 1", "Item 2", ...],
    "tips": ["Tip 1", "Tip 2", ...]
}`,
		req.DurationDays, req.Destination,
		req.Budget, req.Currency,
		dailyBudget, req.Currency,
		interests, dietary,
		formatAttractionList(attractions),
		tipsSection,
		req.Destination, req.Destination,
		interests, req.Destination,
		req.Destination, req.Destination,
		dailyBudget,
		req.Destination,
	)
}

func formatAttractionList(attractions []types.Place) string {
	if len(attractions) == 0 {
		return "  (Will recommend popular attractions)"
	}
	if len(attractions) > 15 {
		attractions = attractions[:15]
	}
	var sb strings.Builder
	for i, a := range attractions {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("  %d. %s", i+1, a.Name))
		if a.Description != "" {
			desc := a.Description
			if len(desc) > 80 {
				desc = desc[:80]
			}
			sb.WriteString(" - " + desc)
		}
	}
	return sb.String()
}
