package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"medchat/model"
)

// recordingProvider returns a canned result and remembers every prompt.
type recordingProvider struct {
	mu      sync.Mutex
	result  Result
	prompts []string
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Generate(_ context.Context, prompt string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	return p.result
}

func (p *recordingProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// memoryStore keeps rows in slices and assigns ids and timestamps like the
// database does.
type memoryStore struct {
	mu            sync.Mutex
	conversations []model.Conversation
	messages      []model.Message
	clock         time.Time
	failWrites    bool
	searches      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
}

func (s *memoryStore) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) CreateConversation(_ context.Context, title string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return nil, errors.New("database unavailable")
	}
	if strings.TrimSpace(title) == "" {
		title = model.DefaultConversationTitle
	}
	c := model.Conversation{ID: uint(len(s.conversations) + 1), Title: title, CreatedAt: s.now()}
	s.conversations = append(s.conversations, c)
	return &c, nil
}

func (s *memoryStore) ListConversations(_ context.Context) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.Conversation{}, s.conversations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) GetConversation(_ context.Context, id uint) (*model.Conversation, []model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID != id {
			continue
		}
		messages := []model.Message{}
		for _, m := range s.messages {
			if m.ConversationID == id {
				messages = append(messages, m)
			}
		}
		return &c, messages, nil
	}
	return nil, nil, model.ErrNotFound
}

func (s *memoryStore) ConversationExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) AppendMessage(_ context.Context, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errors.New("database unavailable")
	}
	message.ID = uint(len(s.messages) + 1)
	message.CreatedAt = s.now()
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
	s.searches++
	for i := len(s.messages) - 1; i >= 0 && len(hits) < model.SearchLimit; i-- {
		m := s.messages[i]
		if strings.Contains(strings.ToLower(m.Text), q) || strings.Contains(strings.ToLower(m.TranslatedText), q) {
			hits = append(hits, model.SearchHit{Message: m, ConversationTitle: s.conversations[m.ConversationID-1].Title})
		}
	}
	return hits, nil
}
