package chat

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripmind/travel-concierge/internal/api"
	"github.com/tripmind/travel-concierge/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	HandleChat(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	chatService Service
	logger      *slog.Logger
}

func NewHandlerImpl(chatService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		chatService: chatService,
		logger:      logger,
	}
}

func (h *HandlerImpl) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "HandleChat", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "HandleChat"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid chat request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		l.WarnContext(ctx, "Empty chat message")
		span.SetStatus(codes.Error, "Empty message")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Field 'message' must not be empty")
		return
	}

	response := h.chatService.Chat(ctx, req.Message, req.SessionID)

	span.SetAttributes(attribute.String("app.session.id", response.SessionID))
	span.SetStatus(codes.Ok, "Chat answered")
	l.InfoContext(ctx, "Chat answered",
		slog.String("session_id", response.SessionID),
		slog.Int("tool_calls", len(response.ToolCalls)),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
