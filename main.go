package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	gocache "github.com/patrickmn/go-cache"

	appLogger "github.com/tripmind/travel-concierge/app/logger"
	"github.com/tripmind/travel-concierge/app/observability/metrics"
	"github.com/tripmind/travel-concierge/app/tracer"
	"github.com/tripmind/travel-concierge/config"
	"github.com/tripmind/travel-concierge/internal/api/chat"
	"github.com/tripmind/travel-concierge/internal/api/documents"
	generativeAI "github.com/tripmind/travel-concierge/internal/api/generative_ai"
	"github.com/tripmind/travel-concierge/internal/api/gatherer"
	"github.com/tripmind/travel-concierge/internal/api/knowledge"
	"github.com/tripmind/travel-concierge/internal/api/planner"
	"github.com/tripmind/travel-concierge/internal/api/session"
	"github.com/tripmind/travel-concierge/internal/api/websearch"
	"github.com/tripmind/travel-concierge/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	// --- Generative backend ---
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.Model)
	if err != nil {
		logger.Error("Failed to initialize generative AI client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Core services ---
	fetcher := websearch.NewFetcher(websearch.FetcherConfig{
		MinInterval:  cfg.Search.MinInterval,
		MaxRetries:   cfg.Search.MaxRetries,
		RetryBackoff: cfg.Search.RetryBackoff,
		Timeout:      cfg.Search.Timeout,
	}, appMetrics, logger)
	webService := websearch.NewServiceImpl(fetcher, cfg.Search.PageFetchLimit, cfg.Search.MaxResults, logger)

	knowledgeCache := gocache.New(30*time.Minute, 10*time.Minute)
	knowledgeService := knowledge.NewServiceImpl(aiClient, knowledgeCache, appMetrics, logger)

	sessionStore := session.NewStore(cfg.Session.IdleTTL, cfg.Session.CleanupInterval, logger)
	gathererService := gatherer.NewServiceImpl(knowledgeService, webService, sessionStore, logger)
	chatService := chat.NewServiceImpl(aiClient, gathererService, sessionStore, cfg.LLM.GenerationTimeout, logger)
	plannerService := planner.NewServiceImpl(aiClient, gathererService, appMetrics, cfg.LLM.GenerationTimeout, logger)

	// --- Handlers & router ---
	routerConfig := &router.Config{
		ChatHandler:     chat.NewHandlerImpl(chatService, logger),
		PlannerHandler:  planner.NewHandlerImpl(plannerService, logger),
		DocumentHandler: documents.NewHandlerImpl(sessionStore, appMetrics, int(cfg.Upload.MaxSizeMB), logger),
		SessionHandler:  session.NewHandlerImpl(sessionStore, logger),
		Backend:         aiClient,
	}
	apiRouter := router.SetupRouter(routerConfig)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	if mode == "development" || mode == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		log.Println("Initialized development logger (tint)")
		return slog.New(tint.NewHandler(os.Stdout, tintOpts))
	}

	jsonOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	log.Println("Initialized production logger (JSON)")
	return slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
}
