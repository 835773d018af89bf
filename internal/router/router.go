package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tripmind/travel-concierge/internal/api/chat"
	"github.com/tripmind/travel-concierge/internal/api/documents"
	"github.com/tripmind/travel-concierge/internal/api/planner"
	"github.com/tripmind/travel-concierge/internal/api/session"
)

// HealthChecker reports whether the generative backend is reachable.
type HealthChecker interface {
	Health(ctx context.Context) bool
}

// Config carries the handlers the router mounts. Server-wide middleware
// (request id, logging, recoverer) is applied in main.go before mounting.
type Config struct {
	ChatHandler     chat.Handler
	PlannerHandler  planner.Handler
	DocumentHandler documents.Handler
	SessionHandler  session.Handler
	Backend         HealthChecker
}

// SetupRouter wires the HTTP surface: chat, trip planning, document upload
// and session management under /api/v1, plus health endpoints.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		connected := cfg.Backend != nil && cfg.Backend.Health(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","llm_connected":%t}`, connected)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", cfg.ChatHandler.HandleChat)
		r.Post("/plan", cfg.PlannerHandler.HandlePlan)
		r.Post("/upload", cfg.DocumentHandler.HandleUpload)
		r.Get("/session/{sessionID}", cfg.SessionHandler.HandleInfo)
		r.Delete("/session/{sessionID}", cfg.SessionHandler.HandleClear)
	})

	return r
}
