package model

import "time"

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// Message is one turn of a conversation. Rows are written once and never
// updated; TranslatedText is filled in before the insert.
type Message struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID    uint      `gorm:"not null;index:idx_conversation_id_created_at" json:"conversation_id"`
	Role              Role      `gorm:"type:varchar(16);not null" json:"role"`
	SourceLanguage    string    `gorm:"type:varchar(64);not null" json:"source_language"`
	TargetLanguage    string    `gorm:"type:varchar(64);not null" json:"target_language"`
	Text              string    `gorm:"type:text;not null" json:"text"`
	TranslatedText    string    `gorm:"type:text;not null" json:"translated_text"`
	TranslationFailed bool      `gorm:"not null" json:"translation_failed"`
	AudioPath         *string   `gorm:"type:varchar(512)" json:"audio_path"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index:idx_conversation_id_created_at" json:"created_at"`
}

// SearchHit is a message joined with the title of its conversation.
type SearchHit struct {
	Message
	ConversationTitle string `json:"conversation_title"`
}
