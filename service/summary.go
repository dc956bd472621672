package service

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
)

const NoMessagesSummary = "No messages yet."

type SummaryService struct {
	provider Provider
	markdown goldmark.Markdown
}

func NewSummaryService(provider Provider) *SummaryService {
	return &SummaryService{provider: provider, markdown: goldmark.New()}
}

// Summarize expects a non-empty transcript already in chronological order.
func (s *SummaryService) Summarize(ctx context.Context, entries []TranscriptEntry) Result {
	return s.provider.Generate(ctx, SummaryPrompt(entries))
}

// RenderHTML converts the markdown bullet summary returned by the model into
// HTML for display.
func (s *SummaryService) RenderHTML(summary string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(summary), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
