package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const SearchLimit = 100

var ErrNotFound = errors.New("not found")

// Store persists conversations and their messages. Every method returns only
// after the write or read has completed against the database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultConversationTitle
	}
	conversation := &Conversation{Title: title}
	if err := s.db.WithContext(ctx).Create(conversation).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// ListConversations returns all conversations, most recent first.
func (s *Store) ListConversations(ctx context.Context) ([]Conversation, error) {
	conversations := []Conversation{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetConversation returns the conversation and its messages in the order
// they were created. ErrNotFound is returned for an unknown id.
func (s *Store) GetConversation(ctx context.Context, id uint) (*Conversation, []Message, error) {
	db := s.db.WithContext(ctx)

	var conversation Conversation
	if err := db.First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("database query failed: %w", err)
	}

	messages := []Message{}
	err := db.Where("conversation_id = ?", id).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load messages of conversation %d: %w", id, err)
	}
	return &conversation, messages, nil
}

func (s *Store) ConversationExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Conversation{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return count > 0, nil
}

// AppendMessage inserts message as-is; ID and CreatedAt are assigned by the
// store. The conversation reference is not checked here.
func (s *Store) AppendMessage(ctx context.Context, message *Message) error {
	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to append message to conversation %d: %w", message.ConversationID, err)
	}
	return nil
}

// Search matches query case-insensitively against the original and the
// translated text of every message, newest first.
func (s *Store) Search(ctx context.Context, query string) ([]SearchHit, error) {
	hits := []SearchHit{}
	if strings.TrimSpace(query) == "" {
		return hits, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := s.db.WithContext(ctx).
		Table("messages").
		Select("messages.*, conversations.title AS conversation_title").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("LOWER(messages.text) LIKE ? OR LOWER(messages.translated_text) LIKE ?", pattern, pattern).
		Order("messages.created_at DESC").
		Order("messages.id DESC").
		Limit(SearchLimit).
		Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return hits, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
