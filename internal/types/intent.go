package types

// Intent captures which information categories a query needs. Flags are
// non-exclusive; a single query can trigger several. Computed once per
// query and never mutated afterwards.
type Intent struct {
	NeedsDocuments        bool   `json:"needs_documents"`
	NeedsWeather          bool   `json:"needs_weather"`
	NeedsHotels           bool   `json:"needs_hotels"`
	NeedsAttractions      bool   `json:"needs_attractions"`
	NeedsRestaurants      bool   `json:"needs_restaurants"`
	NeedsGeneralKnowledge bool   `json:"needs_general_knowledge"`
	Location              string `json:"location,omitempty"` // title-cased city guess, or "" when unknown
}

// HasLocation reports whether the classifier produced a location guess.
func (i Intent) HasLocation() bool {
	return i.Location != ""
}

// NeedsAnyCategory reports whether at least one web/knowledge category was
// requested (documents excluded, those go to session memory).
func (i Intent) NeedsAnyCategory() bool {
	return i.NeedsWeather || i.NeedsHotels || i.NeedsAttractions || i.NeedsRestaurants
}
