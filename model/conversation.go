package model

import "time"

const DefaultConversationTitle = "Doctor–Patient Session"

type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
