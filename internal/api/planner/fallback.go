package planner

import (
	"fmt"
	"strings"

	"github.com/tripmind/travel-concierge/internal/types"
)

// buildFallbackItinerary deterministically rotates the gathered attractions
// (two per day) and restaurants (three per day) across the trip so the
// planner always answers with a budget-consistent itinerary, even when the
// model returned garbage. Every day is costed at budget/duration.
func buildFallbackItinerary(req types.TripPlanRequest, attractions, restaurants, hotels []types.Place) types.Itinerary {
	dailyBudget := req.Budget / float64(req.DurationDays)

	if len(attractions) == 0 {
		attractions = []types.Place{{
			Name:        fmt.Sprintf("Popular attraction in %s", req.Destination),
			Description: "Must-see location",
		}}
	}
	if len(restaurants) == 0 {
		restaurants = []types.Place{{
			Name:        "Local restaurant",
			Description: "Traditional cuisine",
		}}
	}
	if len(hotels) == 0 {
		hotels = []types.Place{{
			Name:        fmt.Sprintf("Balanced hotel in %s", req.Destination),
			Description: "Comfortable accommodation",
		}}
	}

	days := make([]types.DayPlan, 0, req.DurationDays)
	for day := 1; day <= req.DurationDays; day++ {
		morning := attractions[((day-1)*2)%len(attractions)]
		afternoon := attractions[((day-1)*2+1)%len(attractions)]

		breakfast := restaurants[((day-1)*3)%len(restaurants)]
		lunch := restaurants[((day-1)*3+1)%len(restaurants)]
		dinner := restaurants[((day-1)*3+2)%len(restaurants)]

		days = append(days, types.DayPlan{
			Day:       day,
			Morning:   fmt.Sprintf("9 AM: Visit %s - %s", morning.Name, placeBlurb(morning, "Sightseeing and exploration")),
			Afternoon: fmt.Sprintf("2 PM: Explore %s - %s", afternoon.Name, placeBlurb(afternoon, "Continue exploring")),
			Evening:   fmt.Sprintf("7 PM: Dinner at %s followed by evening stroll", dinner.Name),
			Meals: map[string]string{
				"breakfast": breakfast.Name + " - Local breakfast",
				"lunch":     lunch.Name + " - Lunch",
				"dinner":    dinner.Name + " - Dinner",
			},
			EstimatedCost: dailyBudget,
		})
	}

	accommodations := make([]string, 0, 5)
	for i, h := range hotels {
		if i == 5 {
			break
		}
		accommodations = append(accommodations, fmt.Sprintf("%s - %s", h.Name, placeBlurb(h, "Good location")))
	}

	it := types.Itinerary{
		Title:                    fmt.Sprintf("Balanced Trip to %s", req.Destination),
		BudgetType:               "balanced",
		Currency:                 req.Currency,
		Days:                     days,
		AccommodationSuggestions: accommodations,
		PackingList: []string{
			"Comfortable walking shoes",
			"Weather-appropriate clothing",
			"Travel documents and copies",
			"Camera/smartphone with charger",
			"Universal power adapter",
			"Personal toiletries",
			"Daypack for excursions",
			"Reusable water bottle",
			"Sunscreen and sunglasses",
			"Light rain jacket",
		},
		Tips: []string{
			fmt.Sprintf("Book %s attractions in advance to save time", req.Destination),
			"Download offline maps before arrival",
			"Try authentic local cuisine",
			"Use local transportation to save money",
			"Respect local customs and dress codes",
			"Keep copies of important documents",
			fmt.Sprintf("Check visa requirements for %s", req.Destination),
		},
	}
	it.TotalCost = it.SumDayCosts()
	return it
}

func placeBlurb(p types.Place, fallback string) string {
	if p.Description != "" {
		return p.Description
	}
	return fallback
}

// Curated standbys for destinations the lookups know nothing about.
var fallbackAttractionTable = map[string][]types.Place{
	"bali": {
		{Name: "Tanah Lot Temple", Description: "Ancient Hindu shrine on rock formation"},
		{Name: "Ubud Monkey Forest", Description: "Sacred sanctuary with temples and monkeys"},
		{Name: "Tegallalang Rice Terraces", Description: "Iconic terraced rice fields"},
		{Name: "Uluwatu Temple", Description: "Clifftop temple with ocean views"},
		{Name: "Seminyak Beach", Description: "Popular beach with restaurants and clubs"},
		{Name: "Mount Batur", Description: "Active volcano with sunrise treks"},
		{Name: "Tirta Empul Temple", Description: "Holy spring water temple"},
		{Name: "Nusa Penida", Description: "Island with stunning beaches and cliffs"},
	},
	"paris": {
		{Name: "Eiffel Tower", Description: "Iconic iron landmark"},
		{Name: "Louvre Museum", Description: "World-famous art museum"},
		{Name: "Notre-Dame Cathedral", Description: "Gothic cathedral"},
		{Name: "Arc de Triomphe", Description: "Triumphal arch monument"},
		{Name: "Sacré-Cœur", Description: "Basilica on Montmartre hill"},
		{Name: "Versailles Palace", Description: "Royal palace with gardens"},
	},
	"tokyo": {
		{Name: "Senso-ji Temple", Description: "Ancient Buddhist temple in Asakusa"},
		{Name: "Tokyo Skytree", Description: "Tallest structure in Japan"},
		{Name: "Shibuya Crossing", Description: "Famous pedestrian scramble"},
		{Name: "Meiji Shrine", Description: "Shinto shrine in forest"},
		{Name: "Tsukiji Outer Market", Description: "Fresh seafood and food stalls"},
		{Name: "Tokyo Tower", Description: "Communications and observation tower"},
	},
}

var fallbackRestaurantTable = map[string][]types.Place{
	"bali": {
		{Name: "Locavore", Description: "Award-winning modern Indonesian cuisine"},
		{Name: "Warung Biah Biah", Description: "Authentic Balinese food"},
		{Name: "Mozaic Restaurant", Description: "French-Indonesian fusion"},
		{Name: "Sardine", Description: "Fresh seafood in rice fields"},
		{Name: "La Plancha", Description: "Beach club with Spanish food"},
	},
	"paris": {
		{Name: "Le Comptoir du Relais", Description: "Classic French bistro"},
		{Name: "Septime", Description: "Modern French cuisine"},
		{Name: "Chez L'Ami Jean", Description: "Traditional Basque-French"},
	},
	"tokyo": {
		{Name: "Sukiyabashi Jiro", Description: "Renowned sushi restaurant"},
		{Name: "Ichiran Ramen", Description: "Famous tonkotsu ramen chain"},
		{Name: "Narisawa", Description: "Innovative Japanese cuisine"},
	},
}

func fallbackAttractions(destination string) []types.Place {
	if places := lookupFallbackTable(fallbackAttractionTable, destination); places != nil {
		return places
	}
	return []types.Place{
		{Name: fmt.Sprintf("Historic District of %s", destination), Description: "Cultural heritage area"},
		{Name: fmt.Sprintf("Main Square of %s", destination), Description: "Central gathering place"},
		{Name: fmt.Sprintf("%s Museum", destination), Description: "Local history and culture"},
		{Name: fmt.Sprintf("Popular Market in %s", destination), Description: "Local shopping experience"},
	}
}

func fallbackRestaurants(destination string) []types.Place {
	if places := lookupFallbackTable(fallbackRestaurantTable, destination); places != nil {
		return places
	}
	return []types.Place{
		{Name: fmt.Sprintf("Traditional Restaurant in %s", destination), Description: "Local cuisine"},
		{Name: fmt.Sprintf("Popular Eatery %s", destination), Description: "Local favorites"},
	}
}

func fallbackHotels(destination string) []types.Place {
	return []types.Place{
		{Name: fmt.Sprintf("Central Hotel %s", destination), Description: "Downtown location"},
		{Name: fmt.Sprintf("%s Resort", destination), Description: "Resort with amenities"},
		{Name: fmt.Sprintf("Budget Inn %s", destination), Description: "Affordable accommodation"},
	}
}

func lookupFallbackTable(table map[string][]types.Place, destination string) []types.Place {
	lower := strings.ToLower(destination)
	for key, places := range table {
		if strings.Contains(lower, key) {
			return places
		}
	}
	return nil
}
