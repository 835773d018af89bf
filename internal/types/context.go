package types

// DocumentExcerpt is one ranked snippet retrieved from session memory.
type DocumentExcerpt struct {
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"` // 0..1, higher is better
	Filename  string  `json:"filename,omitempty"`
}

// SourceRecord is a provenance entry for one source consulted while
// building a context bundle. Returned to clients as "sources".
type SourceRecord struct {
	Type    string `json:"type"`              // document, knowledge, web
	Query   string `json:"query,omitempty"`   // the lookup issued
	Content string `json:"content,omitempty"` // short preview for documents
	URL     string `json:"url,omitempty"`
}

// ContextBundle aggregates everything gathered for a single request.
// Built fresh per request and treated as immutable once synthesis starts.
type ContextBundle struct {
	DocumentExcerpts []DocumentExcerpt      `json:"document_excerpts,omitempty"`
	CategoryPlaces   map[string][]Place     `json:"category_places,omitempty"` // attractions/restaurants/hotels
	WeatherSummary   string                 `json:"weather_summary,omitempty"`
	TravelTips       string                 `json:"travel_tips,omitempty"`
	SourcesUsed      []SourceRecord         `json:"sources_used,omitempty"`
	ToolCalls        []string               `json:"tool_calls,omitempty"`
}

// IsEmpty reports whether nothing at all was gathered.
func (b *ContextBundle) IsEmpty() bool {
	return len(b.DocumentExcerpts) == 0 && len(b.CategoryPlaces) == 0 &&
		b.WeatherSummary == "" && b.TravelTips == ""
}

// Places returns the gathered places for a category, nil when absent.
func (b *ContextBundle) Places(category string) []Place {
	if b.CategoryPlaces == nil {
		return nil
	}
	return b.CategoryPlaces[category]
}
