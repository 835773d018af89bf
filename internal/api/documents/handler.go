package documents

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripmind/travel-concierge/app/observability/metrics"
	"github.com/tripmind/travel-concierge/internal/api"
	"github.com/tripmind/travel-concierge/internal/api/session"
	"github.com/tripmind/travel-concierge/internal/types"
)

const defaultMaxUploadMB = 10

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	HandleUpload(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	sessions    session.Service
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
	maxUploadMB int
}

func NewHandlerImpl(sessionStore session.Service, appMetrics *metrics.AppMetrics, maxUploadMB int, logger *slog.Logger) *HandlerImpl {
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &HandlerImpl{
		sessions:    sessionStore,
		logger:      logger,
		metrics:     appMetrics,
		maxUploadMB: maxUploadMB,
	}
}

// HandleUpload accepts a multipart travel document (pdf, docx or txt),
// splits it into chunks and stores them in the caller's session memory.
func (h *HandlerImpl) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DocumentHandler").Start(r.Context(), "HandleUpload", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/upload"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "HandleUpload"))

	maxBytes := int64(h.maxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		l.WarnContext(ctx, "Upload rejected while parsing form", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid multipart form")
		api.ErrorResponse(w, r, http.StatusBadRequest,
			fmt.Sprintf("Could not read upload (max size %dMB)", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		l.WarnContext(ctx, "Upload missing file field", slog.Any("error", err))
		span.SetStatus(codes.Error, "Missing file")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Field 'file' is required")
		return
	}
	defer file.Close()

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	content, err := io.ReadAll(file)
	if err != nil {
		l.ErrorContext(ctx, "Failed to read uploaded file", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Read failure")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error reading uploaded file")
		return
	}

	chunks, err := ProcessDocument(header.Filename, content)
	if err != nil {
		var unsupported *UnsupportedFormatError
		if errors.As(err, &unsupported) {
			l.WarnContext(ctx, "Unsupported document format",
				slog.String("filename", header.Filename),
				slog.String("extension", unsupported.Extension),
			)
			span.SetStatus(codes.Error, "Unsupported format")
			api.ErrorResponse(w, r, http.StatusBadRequest,
				fmt.Sprintf("Unsupported file type: %s. Supported: PDF, DOCX, TXT", unsupported.Extension))
			return
		}
		l.ErrorContext(ctx, "Document processing failed",
			slog.String("filename", header.Filename),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Processing failure")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error processing document")
		return
	}

	added := h.sessions.AddDocuments(sessionID, chunks)
	if h.metrics != nil {
		h.metrics.DocumentsUploadedTotal.Add(ctx, 1)
	}

	span.SetAttributes(
		attribute.String("app.session.id", sessionID),
		attribute.Int("app.document.chunks", added),
	)
	span.SetStatus(codes.Ok, "Document stored")
	l.InfoContext(ctx, "Document stored",
		slog.String("filename", header.Filename),
		slog.String("session_id", sessionID),
		slog.Int("chunks", added),
	)

	api.WriteJSONResponse(w, r, http.StatusOK, types.DocumentUploadResponse{
		Filename:  header.Filename,
		Chunks:    added,
		Status:    "success",
		Message:   fmt.Sprintf("Document processed successfully. Session ID: %s", sessionID),
		SessionID: sessionID,
	})
}
