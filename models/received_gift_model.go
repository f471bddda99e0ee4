package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceivedGift is the recipient-side record of a gift. FromUserName is a
// snapshot taken at send time and is deliberately never re-resolved, so a
// later rename of the sender does not rewrite gift history.
type ReceivedGift struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	GiftType     string    `gorm:"size:64;not null" json:"gift_type"`
	Emoji        string    `gorm:"size:16;not null" json:"emoji"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	CoinValue    int       `gorm:"not null" json:"coin_value"`
	FromUserID   uuid.UUID `gorm:"type:uuid;not null" json:"from_user_id"`
	FromUserName string    `gorm:"size:255;not null" json:"from_user_name"`
	Message      *string   `gorm:"type:text" json:"message,omitempty"`
	ReceivedAt   time.Time `gorm:"not null" json:"received_at"`
}

func (g *ReceivedGift) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
