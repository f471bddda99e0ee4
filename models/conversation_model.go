package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation holds exactly two participants. The pair is stored in
// canonical order (see NormalizePair) so the unordered pair maps to a single
// row, enforced by the composite unique index.
type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ParticipantA  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"participant_a"`
	ParticipantB  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"participant_b"`
	LastMessageID *uuid.UUID `gorm:"type:uuid" json:"-"`
	LastMessage   *Message   `gorm:"foreignkey:LastMessageID" json:"last_message"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// NormalizePair orders two user ids canonically by their byte value.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}
