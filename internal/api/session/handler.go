package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripmind/travel-concierge/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	HandleInfo(w http.ResponseWriter, r *http.Request)
	HandleClear(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	sessions Service
	logger   *slog.Logger
}

func NewHandlerImpl(sessionStore Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		sessions: sessionStore,
		logger:   logger,
	}
}

func (h *HandlerImpl) HandleInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "HandleInfo", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/session/{sessionID}"),
	))
	defer span.End()

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		span.SetStatus(codes.Error, "Missing session id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Path parameter 'sessionID' is required")
		return
	}

	info := h.sessions.Info(sessionID)

	span.SetAttributes(attribute.String("app.session.id", sessionID))
	span.SetStatus(codes.Ok, "Session info returned")
	h.logger.DebugContext(ctx, "Session info returned",
		slog.String("session_id", sessionID),
		slog.Bool("exists", info.Exists),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, info)
}

func (h *HandlerImpl) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "HandleClear", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/session/{sessionID}"),
	))
	defer span.End()

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		span.SetStatus(codes.Error, "Missing session id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Path parameter 'sessionID' is required")
		return
	}

	h.sessions.Clear(sessionID)

	span.SetAttributes(attribute.String("app.session.id", sessionID))
	span.SetStatus(codes.Ok, "Session cleared")
	h.logger.InfoContext(ctx, "Session cleared", slog.String("session_id", sessionID))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"status":     "cleared",
	})
}
