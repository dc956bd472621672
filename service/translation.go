package service

import (
	"context"
	"strings"
)

type TranslationService struct {
	provider Provider
}

func NewTranslationService(provider Provider) *TranslationService {
	return &TranslationService{provider: provider}
}

// Translate returns an empty result for blank text and the text itself when
// both language labels are identical; neither case reaches the provider.
func (s *TranslationService) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	if sourceLanguage == targetLanguage {
		return Result{Text: text}
	}
	return s.provider.Generate(ctx, TranslationPrompt(text, sourceLanguage, targetLanguage))
}
