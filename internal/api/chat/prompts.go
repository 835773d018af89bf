package chat

import (
	"fmt"
	"strings"

	"github.com/tripmind/travel-concierge/internal/types"
)

// historyWindow is how many trailing turns (3 exchanges) are replayed into
// the prompt.
const historyWindow = 6

const chatSystemPrompt = `You are an expert AI Travel Concierge. Your goal is to help travelers plan amazing trips and answer travel-related questions with REAL, SPECIFIC place names.

Your Capabilities:
- Access to real-time information about attractions, restaurants, hotels, and weather
- Provide ACTUAL place names - not generic descriptions
- Give personalized travel recommendations based on user interests
- Answer questions about destinations worldwide with specific details

CRITICAL RULES:
1. ALWAYS use the EXACT place names from the context provided
2. When recommending places, use the real names (e.g., "Senso-ji Temple", "Sukiyabashi Jiro", "Park Hyatt Tokyo")
3. Include descriptions and details from the context
4. If prices are available, mention them
5. Format responses clearly with numbered lists for multiple recommendations
6. Be enthusiastic and helpful - travel is exciting!

Guidelines:
- Use specific information from the provided context
- When listing attractions/restaurants/hotels, present them in a clear numbered format
- Include practical details (descriptions, prices, cuisine types) when available
- If you don't have current information, explain that and offer to search for it
- Always prioritize accuracy over generic suggestions`

// buildChatPrompt embeds the gathered context and recent history around the
// user's question.
func buildChatPrompt(message string, bundle types.ContextBundle, history []types.ConversationTurn) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("User Question: %s\n\n", message))

	if historyText := formatHistory(history); historyText != "" {
		sb.WriteString("Previous Conversation:\n")
		sb.WriteString(historyText)
		sb.WriteString("\n\n")
	}

	if context := FormatContext(bundle); context != "" {
		sb.WriteString("Available Information:\n")
		sb.WriteString(context)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("No specific data available. Use your general travel knowledge to provide helpful guidance, but mention that you can search for real-time information if needed.\n\n")
	}

	sb.WriteString(`IMPORTANT: Use the EXACT place names from the information above. Format your response clearly:
- For attractions/restaurants/hotels: Use numbered lists with names and descriptions
- Be specific and detailed
- Include prices when available

Provide a helpful, engaging response:`)

	return sb.String()
}

// FormatContext serializes a bundle into the labeled sections the prompt
// and the degraded-response path share.
func FormatContext(bundle types.ContextBundle) string {
	var parts []string

	if len(bundle.DocumentExcerpts) > 0 {
		parts = append(parts, "=== FROM YOUR UPLOADED DOCUMENTS ===")
		for _, doc := range bundle.DocumentExcerpts {
			parts = append(parts, fmt.Sprintf("- %s", truncate(doc.Content, 300)))
		}
		parts = append(parts, "")
	}

	hasLiveData := bundle.WeatherSummary != "" || len(bundle.CategoryPlaces) > 0 || bundle.TravelTips != ""
	if hasLiveData {
		parts = append(parts, "=== REAL-TIME INFORMATION ===")

		if bundle.WeatherSummary != "" {
			parts = append(parts, "\nWeather Information:")
			parts = append(parts, fmt.Sprintf("Summary: %s", bundle.WeatherSummary))
		}

		if places := bundle.Places(types.CategoryAttractions); len(places) > 0 {
			parts = append(parts, fmt.Sprintf("\nTop Attractions (%d found):", len(places)))
			for i, place := range limitPlaces(places, 10) {
				line := fmt.Sprintf("%d. %s", i+1, place.Name)
				if place.Description != "" {
					line += fmt.Sprintf(" - %s", truncate(place.Description, 100))
				}
				if place.Price != "" {
					line += fmt.Sprintf(" (%s)", place.Price)
				}
				parts = append(parts, line)
			}
		}

		if places := bundle.Places(types.CategoryRestaurants); len(places) > 0 {
			parts = append(parts, fmt.Sprintf("\nRestaurants (%d found):", len(places)))
			for i, place := range limitPlaces(places, 10) {
				line := fmt.Sprintf("%d. %s", i+1, place.Name)
				if place.Cuisine != "" {
					line += fmt.Sprintf(" - %s", place.Cuisine)
				}
				if place.Description != "" {
					line += fmt.Sprintf(" - %s", truncate(place.Description, 80))
				}
				parts = append(parts, line)
			}
		}

		if places := bundle.Places(types.CategoryHotels); len(places) > 0 {
			parts = append(parts, fmt.Sprintf("\nHotels (%d found):", len(places)))
			for i, place := range limitPlaces(places, 10) {
				line := fmt.Sprintf("%d. %s", i+1, place.Name)
				if place.Description != "" {
					line += fmt.Sprintf(" - %s", truncate(place.Description, 80))
				}
				if place.Price != "" {
					line += fmt.Sprintf(" - %s", place.Price)
				}
				parts = append(parts, line)
			}
		}

		if bundle.TravelTips != "" {
			parts = append(parts, "\nTravel Tips:")
			parts = append(parts, bundle.TravelTips)
		}

		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

func formatHistory(history []types.ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	lines := make([]string, len(history))
	for i, turn := range history {
		role := strings.ToUpper(string(turn.Role)[:1]) + string(turn.Role)[1:]
		lines[i] = fmt.Sprintf("%s: %s", role, turn.Content)
	}
	return strings.Join(lines, "\n")
}

func limitPlaces(places []types.Place, max int) []types.Place {
	if len(places) > max {
		return places[:max]
	}
	return places
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
