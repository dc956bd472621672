package service

import (
	"context"
	"fmt"

	"medchat/model"
)

// Store is the persistence the conversation flow depends on. *model.Store
// implements it.
type Store interface {
	CreateConversation(ctx context.Context, title string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]model.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*model.Conversation, []model.Message, error)
	ConversationExists(ctx context.Context, id uint) (bool, error)
	AppendMessage(ctx context.Context, message *model.Message) error
	Search(ctx context.Context, query string) ([]model.SearchHit, error)
}

// NewMessage is a message as submitted by a client, before translation.
type NewMessage struct {
	Role           model.Role
	Text           string
	SourceLanguage string
	TargetLanguage string
	AudioPath      *string
}

type Summary struct {
	Summary     string `json:"summary"`
	SummaryHTML string `json:"summary_html"`
	Failed      bool   `json:"failed"`
}

type ConversationService struct {
	store       Store
	translation *TranslationService
	summary     *SummaryService
}

func NewConversationService(store Store, translation *TranslationService, summary *SummaryService) *ConversationService {
	return &ConversationService{store: store, translation: translation, summary: summary}
}

func (s *ConversationService) StartConversation(ctx context.Context, title string) (*model.Conversation, error) {
	return s.store.CreateConversation(ctx, title)
}

func (s *ConversationService) Conversations(ctx context.Context) ([]model.Conversation, error) {
	return s.store.ListConversations(ctx)
}

func (s *ConversationService) Conversation(ctx context.Context, id uint) (*model.Conversation, []model.Message, error) {
	return s.store.GetConversation(ctx, id)
}

// PostMessage translates the message and stores it. Unknown conversations
// are rejected with model.ErrNotFound before the provider is called.
func (s *ConversationService) PostMessage(ctx context.Context, conversationID uint, in NewMessage) (*model.Message, error) {
	if err := s.EnsureConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.AddMessage(ctx, conversationID, in)
}

// AddMessage translates and stores the message without checking the
// conversation; callers must have run EnsureConversation first.
func (s *ConversationService) AddMessage(ctx context.Context, conversationID uint, in NewMessage) (*model.Message, error) {
	translated := s.translation.Translate(ctx, in.Text, in.SourceLanguage, in.TargetLanguage)
	message := &model.Message{
		ConversationID:    conversationID,
		Role:              in.Role,
		SourceLanguage:    in.SourceLanguage,
		TargetLanguage:    in.TargetLanguage,
		Text:              in.Text,
		TranslatedText:    translated.Text,
		TranslationFailed: translated.Failed,
		AudioPath:         in.AudioPath,
	}
	if err := s.store.AppendMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// EnsureConversation returns model.ErrNotFound unless the conversation exists.
func (s *ConversationService) EnsureConversation(ctx context.Context, conversationID uint) error {
	ok, err := s.store.ConversationExists(ctx, conversationID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("conversation %d: %w", conversationID, model.ErrNotFound)
	}
	return nil
}

func (s *ConversationService) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	return s.store.Search(ctx, query)
}

// Summary summarizes the whole conversation. An empty conversation gets the
// fixed NoMessagesSummary without a provider call.
func (s *ConversationService) Summary(ctx context.Context, conversationID uint) (*Summary, error) {
	_, messages, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return s.render(conversationID, Result{Text: NoMessagesSummary})
	}

	entries := make([]TranscriptEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, TranscriptEntry{
			Role:           string(m.Role),
			Text:           m.Text,
			TranslatedText: m.TranslatedText,
		})
	}
	return s.render(conversationID, s.summary.Summarize(ctx, entries))
}

func (s *ConversationService) render(conversationID uint, result Result) (*Summary, error) {
	html, err := s.summary.RenderHTML(result.Text)
	if err != nil {
		return nil, fmt.Errorf("render summary of conversation %d: %w", conversationID, err)
	}
	return &Summary{Summary: result.Text, SummaryHTML: html, Failed: result.Failed}, nil
}
