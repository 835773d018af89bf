package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	generativeAI "github.com/tripmind/travel-concierge/internal/api/generative_ai"
	"github.com/tripmind/travel-concierge/internal/api/gatherer"
	"github.com/tripmind/travel-concierge/internal/api/intent"
	"github.com/tripmind/travel-concierge/internal/api/session"
	"github.com/tripmind/travel-concierge/internal/types"
)

const (
	chatTemperature = float32(0.7)
	maxChatTokens   = 1000

	defaultGenerationTimeout = 60 * time.Second
)

var _ Service = (*ServiceImpl)(nil)

// Service answers one conversational turn: classify the question, gather
// context, synthesize a reply and record the exchange.
type Service interface {
	Chat(ctx context.Context, message, sessionID string) *types.ChatResponse
}

type ServiceImpl struct {
	logger            *slog.Logger
	ai                generativeAI.Provider
	gatherer          gatherer.Service
	sessions          session.Service
	generationTimeout time.Duration
}

func NewServiceImpl(ai generativeAI.Provider, contextGatherer gatherer.Service, sessionStore session.Service, generationTimeout time.Duration, logger *slog.Logger) *ServiceImpl {
	if generationTimeout <= 0 {
		generationTimeout = defaultGenerationTimeout
	}
	return &ServiceImpl{
		logger:            logger,
		ai:                ai,
		gatherer:          contextGatherer,
		sessions:          sessionStore,
		generationTimeout: generationTimeout,
	}
}

// Chat never fails: a generation timeout or backend error degrades to a
// deterministic reply built from whatever context was gathered.
func (s *ServiceImpl) Chat(ctx context.Context, message, sessionID string) *types.ChatResponse {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	classified := intent.Classify(message)
	bundle := s.gatherer.Gather(ctx, sessionID, message, classified)
	history := s.sessions.History(sessionID)

	prompt := buildChatPrompt(message, bundle, history)

	genCtx, cancel := context.WithTimeout(ctx, s.generationTimeout)
	defer cancel()

	responseText, err := s.ai.GenerateText(genCtx, prompt, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](chatTemperature),
		MaxOutputTokens:   maxChatTokens,
		SystemInstruction: genai.NewContentFromText(chatSystemPrompt, genai.RoleUser),
	})
	if err != nil || responseText == "" {
		s.logger.WarnContext(ctx, "chat generation failed, sending degraded reply",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
		responseText = degradedReply(bundle)
	}

	s.sessions.AppendExchange(sessionID, message, responseText)

	return &types.ChatResponse{
		Message:   responseText,
		Sources:   bundle.SourcesUsed,
		ToolCalls: bundle.ToolCalls,
		SessionID: sessionID,
	}
}

// degradedReply is the non-generative fallback: the gathered facts as-is,
// or an honest "try again" when nothing was gathered either.
func degradedReply(bundle types.ContextBundle) string {
	if bundle.IsEmpty() {
		return "I'm having trouble generating a response right now. Please try again in a moment."
	}
	return "I couldn't compose a full answer right now, but here is what I found:\n\n" + FormatContext(bundle)
}
