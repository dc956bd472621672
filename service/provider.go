package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"medchat/platform"

	"github.com/google/generative-ai-go/genai"
	"github.com/openai/openai-go"
	"github.com/sirupsen/logrus"
)

const (
	FailurePrefix = "[Translation failed] "
	DemoPrefix    = "[Demo mode] "

	openAIModel       = "gpt-4o-mini"
	geminiModel       = "gemini-1.5-flash"
	llmTemperature    = 0.2
	failurePromptSize = 80
	demoPromptSize    = 200
)

// Result is what a provider produced for a prompt. Failed marks vendor or
// network errors; Text then holds the failure placeholder.
type Result struct {
	Text     string `json:"text"`
	Failed   bool   `json:"failed"`
	Provider string `json:"provider"`
}

// Provider answers a single prompt. Implementations never return errors:
// vendor failures come back as a failed Result.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) Result
}

func failure(provider, prompt string) Result {
	return Result{
		Text:     FailurePrefix + truncateRunes(prompt, failurePromptSize),
		Failed:   true,
		Provider: provider,
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SelectProvider picks OpenAI when its key is configured, then Gemini, and
// falls back to the in-process demo provider.
func SelectProvider(ctx context.Context, cfg *platform.Config, logger *logrus.Logger) (Provider, error) {
	switch {
	case strings.TrimSpace(cfg.OpenAIAPIKey) != "":
		return NewOpenAIProvider(platform.NewOpenAIClient(cfg), logger), nil
	case strings.TrimSpace(cfg.GeminiAPIKey) != "":
		client, err := platform.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewGeminiProvider(client, logger), nil
	default:
		return DemoProvider{}, nil
	}
}

// OpenAIProvider calls the chat completions endpoint once, without streaming.
type OpenAIProvider struct {
	client *openai.Client
	logger *logrus.Logger
}

func NewOpenAIProvider(client *openai.Client, logger *logrus.Logger) *OpenAIProvider {
	return &OpenAIProvider{client: client, logger: logger}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) Result {
	var content any = prompt
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.ChatCompletionMessageParam{
				Role:    openai.F(openai.ChatCompletionMessageParamRoleUser),
				Content: openai.F(content),
			},
		}),
		Model:       openai.F(openai.ChatModel(openAIModel)),
		Temperature: openai.F(llmTemperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			p.logger.Warnf("openai request failed with status %d: %s", apiErr.StatusCode, apiErr.Error())
		} else {
			p.logger.Warnf("openai request failed: %s", err)
		}
		return failure(p.Name(), prompt)
	}

	result := Result{Provider: p.Name()}
	if len(completion.Choices) > 0 {
		result.Text = strings.TrimSpace(completion.Choices[0].Message.Content)
	}
	return result
}

// GeminiProvider is used when only a Gemini key is configured.
type GeminiProvider struct {
	client *genai.Client
	logger *logrus.Logger
}

func NewGeminiProvider(client *genai.Client, logger *logrus.Logger) *GeminiProvider {
	return &GeminiProvider{client: client, logger: logger}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) Result {
	model := p.client.GenerativeModel(geminiModel)
	model.SetTemperature(llmTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		p.logger.Warnf("gemini request failed: %s", err)
		return failure(p.Name(), prompt)
	}
	return Result{Text: geminiText(resp), Provider: p.Name()}
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String())
}

// DemoProvider never leaves the process; it echoes the start of the prompt.
type DemoProvider struct{}

func (DemoProvider) Name() string { return "demo" }

func (DemoProvider) Generate(_ context.Context, prompt string) Result {
	return Result{Text: DemoPrefix + truncateRunes(prompt, demoPromptSize), Provider: "demo"}
}

// timedProvider bounds every call with a deadline and records metrics.
type timedProvider struct {
	next    Provider
	timeout time.Duration
	metrics *platform.LLMMetrics
}

// WithTimeout wraps p so that a hanging vendor cannot stall a request for
// longer than timeout.
func WithTimeout(p Provider, timeout time.Duration, metrics *platform.LLMMetrics) Provider {
	return &timedProvider{next: p, timeout: timeout, metrics: metrics}
}

func (t *timedProvider) Name() string { return t.next.Name() }

func (t *timedProvider) Generate(ctx context.Context, prompt string) Result {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	start := time.Now()
	result := t.next.Generate(ctx, prompt)
	t.metrics.Observe(t.next.Name(), result.Failed, time.Since(start))
	return result
}
