package websearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/tripmind/travel-concierge/app/observability/metrics"
	"github.com/tripmind/travel-concierge/internal/types"
)

const searchEndpoint = "https://html.duckduckgo.com/html/"

// FetcherConfig bounds the outbound search behaviour.
type FetcherConfig struct {
	MinInterval  time.Duration // minimum gap between outbound searches, shared across callers
	MaxRetries   int           // total attempts per search
	RetryBackoff time.Duration // fixed delay between attempts
	Timeout      time.Duration // per-request HTTP timeout
}

func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		MinInterval:  5 * time.Second,
		MaxRetries:   2,
		RetryBackoff: 10 * time.Second,
		Timeout:      10 * time.Second,
	}
}

// Fetcher performs web searches and page fetches under a single shared
// throttle. All callers serialize on the same gate: free search backends
// rate-limit by origin, not by query, so the process gets exactly one
// in-flight search at a time with MinInterval between them.
type Fetcher struct {
	logger    *slog.Logger
	client    *http.Client
	config    FetcherConfig
	metrics   *metrics.AppMetrics
	searchURL string

	mu          sync.Mutex
	lastRequest time.Time
}

func NewFetcher(config FetcherConfig, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Fetcher {
	if config.MinInterval <= 0 {
		config = DefaultFetcherConfig()
	}
	return &Fetcher{
		logger:    logger,
		client:    &http.Client{Timeout: config.Timeout},
		config:    config,
		metrics:   appMetrics,
		searchURL: searchEndpoint,
	}
}

// waitTurn blocks until the shared minimum interval has elapsed since the
// previous request. The mutex is held for the whole wait so concurrent
// callers queue up behind each other instead of stampeding the backend.
func (f *Fetcher) waitTurn(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if wait := f.config.MinInterval - time.Since(f.lastRequest); wait > 0 {
		f.logger.DebugContext(ctx, "throttling search request", slog.Duration("wait", wait))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.lastRequest = time.Now()
	return nil
}

// Search runs a throttled web search and returns up to maxResults results.
// After exhausting retries it returns an empty slice, never an error: a
// failed search degrades to "no data", the pipeline decides what that means.
func (f *Fetcher) Search(ctx context.Context, query string, maxResults int) []types.SearchResult {
	for attempt := 1; attempt <= f.config.MaxRetries; attempt++ {
		if err := f.waitTurn(ctx); err != nil {
			f.logger.WarnContext(ctx, "search cancelled while throttled", slog.Any("error", err))
			return nil
		}

		if f.metrics != nil {
			f.metrics.SearchRequestsTotal.Add(ctx, 1)
		}

		results, err := f.doSearch(ctx, query, maxResults)
		if err == nil {
			return results
		}
		f.logger.WarnContext(ctx, "search attempt failed",
			slog.String("query", query),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		if attempt < f.config.MaxRetries {
			if f.metrics != nil {
				f.metrics.SearchRetriesTotal.Add(ctx, 1)
			}
			select {
			case <-time.After(f.config.RetryBackoff):
			case <-ctx.Done():
				return nil
			}
		}
	}
	return nil
}

func (f *Fetcher) doSearch(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL+"?"+form.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	results := parseSearchResults(string(body))
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// FetchPage downloads a single result page. Unlike Search, failures here are
// returned to the caller so it can fall back to snippet extraction.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}
	return string(body), nil
}

// parseSearchResults walks the DuckDuckGo HTML results markup. Each result
// block carries a "result__a" anchor (title + link) and a "result__snippet"
// element.
func parseSearchResults(page string) []types.SearchResult {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var results []types.SearchResult
	var current *types.SearchResult

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				if current != nil && current.Title != "" {
					results = append(results, *current)
				}
				current = &types.SearchResult{
					Title: nodeText(n),
					URL:   resolveResultURL(attrValue(n, "href")),
				}
			case hasClass(n, "result__snippet"):
				if current != nil {
					current.Snippet = nodeText(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if current != nil && current.Title != "" {
		results = append(results, *current)
	}
	return results
}

// resolveResultURL unwraps DuckDuckGo's redirect links (the real target is
// carried in the "uddg" query parameter).
func resolveResultURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
