package models

import "time"

const (
	ItemTypeNameEffect = "nameEffect"
	ItemTypeAvatar     = "avatar"
	ItemTypeBadge      = "badge"
)

// ShopItem is an immutable catalog entry seeded at startup. Ownership lives
// in the user_inventory join table, never on the item itself.
type ShopItem struct {
	ID          string    `gorm:"primary_key;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Effect      *string   `gorm:"size:32" json:"effect,omitempty"`
	Preview     string    `gorm:"size:255" json:"preview"`
	CreatedAt   time.Time `json:"created_at"`
}
