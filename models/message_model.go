package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeText = "message"
	MessageTypeGift = "gift"
)

type GiftData struct {
	Amount  int    `json:"amount"`
	Message string `json:"message,omitempty"`
}

// Message is append-only; a message is never edited or deleted once written.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Type           string    `gorm:"size:10;not null;default:'message'" json:"type"`
	GiftData       *GiftData `gorm:"serializer:json" json:"gift_data,omitempty"`
	CreatedAt      time.Time `json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
