package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"medchat/model"
	"medchat/service"
)

type memoryStore struct {
	mu            sync.Mutex
	conversations []model.Conversation
	messages      []model.Message
	clock         time.Time
	broken        bool
	existsCalls   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
}

var errBroken = errors.New("database unavailable")

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) CreateConversation(_ context.Context, title string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return nil, errBroken
	}
	if strings.TrimSpace(title) == "" {
		title = model.DefaultConversationTitle
	}
	c := model.Conversation{ID: uint(len(s.conversations) + 1), Title: title, CreatedAt: s.tick()}
	s.conversations = append(s.conversations, c)
	return &c, nil
}

func (s *memoryStore) ListConversations(_ context.Context) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return nil, errBroken
	}
	out := make([]model.Conversation, 0, len(s.conversations))
	for i := len(s.conversations) - 1; i >= 0; i-- {
		out = append(out, s.conversations[i])
	}
	return out, nil
}

func (s *memoryStore) GetConversation(_ context.Context, id uint) (*model.Conversation, []model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == 0 || int(id) > len(s.conversations) {
		return nil, nil, model.ErrNotFound
	}
	messages := []model.Message{}
	for _, m := range s.messages {
		if m.ConversationID == id {
			messages = append(messages, m)
		}
	}
	c := s.conversations[id-1]
	return &c, messages, nil
}

func (s *memoryStore) ConversationExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existsCalls++
	return id > 0 && int(id) <= len(s.conversations), nil
}

func (s *memoryStore) AppendMessage(_ context.Context, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = uint(len(s.messages) + 1)
	message.CreatedAt = s.tick()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *memoryStore) Search(_ context.Context, query string) ([]model.SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hits := []model.SearchHit{}
	q := strings.ToLower(query)
	if strings.TrimSpace(query) == "" {
		return hits, nil
	}
	for i := len(s.messages) - 1; i >= 0 && len(hits) < model.SearchLimit; i-- {
		m := s.messages[i]
		if strings.Contains(strings.ToLower(m.Text), q) || strings.Contains(strings.ToLower(m.TranslatedText), q) {
			hits = append(hits, model.SearchHit{Message: m, ConversationTitle: s.conversations[m.ConversationID-1].Title})
		}
	}
	return hits, nil
}

// countingProvider answers like the demo provider and counts calls.
type countingProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Generate(_ context.Context, prompt string) service.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return service.Result{Text: "translated", Provider: "counting"}
}
