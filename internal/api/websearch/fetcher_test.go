package websearch

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(discard{}, nil))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

const resultsPage = `<html><body>
	<div class="result">
		<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fbali">Top Things To Do In Bali</a>
		<a class="result__snippet">Temples, beaches and rice terraces.</a>
	</div>
	<div class="result">
		<a class="result__a" href="https://example.com/guide">Bali Travel Guide</a>
		<a class="result__snippet">Everything you need to know.</a>
	</div>
</body></html>`

func newTestFetcher(serverURL string, config FetcherConfig) *Fetcher {
	f := NewFetcher(config, nil, testLogger)
	if serverURL != "" {
		f.searchURL = serverURL
	}
	return f
}

func TestParseSearchResults(t *testing.T) {
	results := parseSearchResults(resultsPage)

	require.Len(t, results, 2)
	assert.Equal(t, "Top Things To Do In Bali", results[0].Title)
	assert.Equal(t, "https://example.com/bali", results[0].URL)
	assert.Equal(t, "Temples, beaches and rice terraces.", results[0].Snippet)
	assert.Equal(t, "https://example.com/guide", results[1].URL)
}

func TestSearch_ReturnsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	f := newTestFetcher(server.URL, FetcherConfig{
		MinInterval:  time.Millisecond,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		Timeout:      time.Second,
	})

	results := f.Search(context.Background(), "things to do in bali", 1)

	require.Len(t, results, 1)
	assert.Equal(t, "Top Things To Do In Bali", results[0].Title)
}

func TestSearch_EmptyAfterRetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := newTestFetcher(server.URL, FetcherConfig{
		MinInterval:  time.Millisecond,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		Timeout:      time.Second,
	})

	results := f.Search(context.Background(), "anything", 5)

	assert.Empty(t, results)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitTurn_EnforcesMinimumInterval(t *testing.T) {
	f := newTestFetcher("", FetcherConfig{
		MinInterval:  80 * time.Millisecond,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
		Timeout:      time.Second,
	})

	ctx := context.Background()
	require.NoError(t, f.waitTurn(ctx))

	start := time.Now()
	require.NoError(t, f.waitTurn(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestWaitTurn_SerializesConcurrentCallers(t *testing.T) {
	f := newTestFetcher("", FetcherConfig{
		MinInterval:  30 * time.Millisecond,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
		Timeout:      time.Second,
	})

	const callers = 4
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.waitTurn(context.Background()))
		}()
	}
	wg.Wait()

	// Four callers sharing one token need at least three full intervals.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestWaitTurn_CancelledContext(t *testing.T) {
	f := newTestFetcher("", FetcherConfig{
		MinInterval:  time.Hour,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
		Timeout:      time.Second,
	})

	require.NoError(t, f.waitTurn(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, f.waitTurn(ctx))
}

func TestFetchPage_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher("", DefaultFetcherConfig())

	_, err := f.FetchPage(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestResolveResultURL(t *testing.T) {
	assert.Equal(t, "https://example.com/bali",
		resolveResultURL("//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fbali"))
	assert.Equal(t, "https://example.com/direct",
		resolveResultURL("https://example.com/direct"))
	assert.Equal(t, "", resolveResultURL(""))
}
