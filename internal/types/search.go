package types

// SearchResult is one web search hit: title, landing URL and the engine's
// text snippet. Snippets feed the extraction fallback when page fetches fail.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
