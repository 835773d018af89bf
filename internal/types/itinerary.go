package types

// TripPlanRequest is the body of POST /plan.
type TripPlanRequest struct {
	Destination        string   `json:"destination"`
	DurationDays       int      `json:"duration_days"`
	Budget             float64  `json:"budget"`
	Currency           string   `json:"currency,omitempty"` // defaults to USD
	Interests          []string `json:"interests,omitempty"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
}

// DayPlan is one day of an itinerary. Meals maps breakfast/lunch/dinner to
// a restaurant suggestion.
type DayPlan struct {
	Day           int               `json:"day"`
	Morning       string            `json:"morning"`
	Afternoon     string            `json:"afternoon"`
	Evening       string            `json:"evening"`
	Meals         map[string]string `json:"meals"`
	EstimatedCost float64           `json:"estimated_cost"`
}

// Itinerary is a complete day-by-day trip plan. TotalCost is always the sum
// of the per-day estimated costs; a model-stated total is never trusted.
type Itinerary struct {
	Title                    string    `json:"title"`
	BudgetType               string    `json:"budget_type"`
	TotalCost                float64   `json:"total_cost"`
	Currency                 string    `json:"currency"`
	Days                     []DayPlan `json:"days"`
	AccommodationSuggestions []string  `json:"accommodation_suggestions"`
	PackingList              []string  `json:"packing_list"`
	Tips                     []string  `json:"tips"`
}

// SumDayCosts recomputes the itinerary total from its days.
func (it *Itinerary) SumDayCosts() float64 {
	var total float64
	for _, d := range it.Days {
		total += d.EstimatedCost
	}
	return total
}

// TripPlanResponse is the payload returned by the planner.
type TripPlanResponse struct {
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	Itinerary   Itinerary `json:"itinerary"`
	MapLink     string    `json:"map_link"`
}
