package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	LLMRequestsTotal          metric.Int64Counter
	LLMRequestDurationSeconds metric.Float64Histogram
	LLMParseFailuresTotal     metric.Int64Counter
	SearchRequestsTotal       metric.Int64Counter
	SearchRetriesTotal        metric.Int64Counter
	FallbackItinerariesTotal  metric.Int64Counter
	DocumentsUploadedTotal    metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelConcierge")
		var err error
		m := &AppMetrics{}

		m.LLMRequestsTotal, err = meter.Int64Counter(
			"llm_requests_total",
			metric.WithDescription("Total number of generation requests issued to the model"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_requests_total: %v", err)
		}

		m.LLMRequestDurationSeconds, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of model generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_duration_seconds: %v", err)
		}

		m.LLMParseFailuresTotal, err = meter.Int64Counter(
			"llm_parse_failures_total",
			metric.WithDescription("Total number of model responses that failed structured parsing"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_parse_failures_total: %v", err)
		}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"search_requests_total",
			metric.WithDescription("Total number of outbound web search requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_requests_total: %v", err)
		}

		m.SearchRetriesTotal, err = meter.Int64Counter(
			"search_retries_total",
			metric.WithDescription("Total number of retried web search requests"),
			metric.WithUnit("{retry}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_retries_total: %v", err)
		}

		m.FallbackItinerariesTotal, err = meter.Int64Counter(
			"fallback_itineraries_total",
			metric.WithDescription("Total number of itineraries built by the deterministic fallback"),
			metric.WithUnit("{itinerary}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create fallback_itineraries_total: %v", err)
		}

		m.DocumentsUploadedTotal, err = meter.Int64Counter(
			"documents_uploaded_total",
			metric.WithDescription("Total number of documents ingested into session memory"),
			metric.WithUnit("{document}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create documents_uploaded_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
