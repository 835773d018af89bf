package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Provider abstracts the text generation backend so callers can be tested
// against a mock.
type Provider interface {
	GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

type AIClient struct {
	client *genai.Client
	model  string
}

var _ Provider = (*AIClient)(nil)

func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateText issues a single-turn generation request and returns the raw
// text of the response.
func (ai *AIClient) GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return result.Text(), nil
}

// Health reports whether the backend is usable. The hosted Gemini API needs
// no liveness probe: a configured client is considered connected.
func (ai *AIClient) Health(ctx context.Context) bool {
	return ai.client != nil
}
