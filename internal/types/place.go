package types

import "time"

// Place is a named real-world entity (attraction, restaurant or hotel)
// produced by web extraction or by the knowledge requester. Name is the
// dedup key (case-insensitive) and is never empty.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
	Amenities   string `json:"amenities,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// Category names used across the gatherer, knowledge requester and prompts.
const (
	CategoryWeather     = "weather"
	CategoryHotels      = "hotels"
	CategoryAttractions = "attractions"
	CategoryRestaurants = "restaurants"
	CategoryTips        = "tips"
)

// PlaceResult is a category lookup outcome. A failed lookup is represented
// by an empty Places slice, never by an error: degraded categories must not
// break the pipeline.
type PlaceResult struct {
	City      string    `json:"city"`
	Query     string    `json:"query"`
	Places    []Place   `json:"places"`
	Timestamp time.Time `json:"timestamp"`
}

// TextResult carries freeform lookups (weather summaries, travel tips).
type TextResult struct {
	City      string    `json:"city"`
	Query     string    `json:"query"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

// Empty reports whether the lookup produced no usable summary.
func (t TextResult) Empty() bool { return t.Summary == "" }
