package planner

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
	HandlePlan(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	planService Service
	logger      *slog.Logger
}

func NewHandlerImpl(planService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		planService: planService,
		logger:      logger,
	}
}

func (h *HandlerImpl) HandlePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "HandlePlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "HandlePlan"))

	var req types.TripPlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid plan request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if msg := validatePlanRequest(req); msg != "" {
		l.WarnContext(ctx, "Plan request rejected", slog.String("reason", msg))
		span.SetStatus(codes.Error, "Invalid plan parameters")
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	response := h.planService.PlanTrip(ctx, req)

	span.SetAttributes(
		attribute.String("app.plan.destination", response.Destination),
		attribute.Int("app.plan.duration_days", response.Duration),
	)
	span.SetStatus(codes.Ok, "Plan created")
	l.InfoContext(ctx, "Plan created",
		slog.String("destination", response.Destination),
		slog.Int("days", len(response.Itinerary.Days)),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, response)
}

func validatePlanRequest(req types.TripPlanRequest) string {
	switch {
	case strings.TrimSpace(req.Destination) == "":
		return "Field 'destination' must not be empty"
	case req.DurationDays < 1:
		return "Field 'duration_days' must be at least 1"
	case req.Budget <= 0:
		return "Field 'budget' must be greater than zero"
	}
	return ""
}
