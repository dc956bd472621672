package platform

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	googleoption "google.golang.org/api/option"
)

// NewOpenAIClient builds the primary vendor client. Retries are disabled so a
// failing vendor costs exactly one call.
func NewOpenAIClient(cfg *Config) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMBaseURL))
	}
	return openai.NewClient(opts...)
}

func NewGeminiClient(ctx context.Context, cfg *Config) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, googleoption.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}
