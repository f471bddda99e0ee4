package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

const StartingCoins = 1500

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Username string    `gorm:"size:20;not null;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	// Students share their invite code so a mentor can link to them.
	InviteCode *string `gorm:"size:5;unique" json:"invite_code,omitempty"`
	Avatar     string  `gorm:"size:255" json:"avatar"`

	Level int `gorm:"not null;default:1" json:"level"`
	XP    int `gorm:"not null;default:0" json:"xp"`
	Coins int `gorm:"not null;default:0" json:"coins"`

	Achievements    []*Achievement `gorm:"many2many:user_achievements;" json:"achievements,omitempty"`
	Inventory       []*ShopItem    `gorm:"many2many:user_inventory;" json:"inventory,omitempty"`
	EquippedEffects []*ShopItem    `gorm:"many2many:user_equipped_effects;" json:"equipped_effects,omitempty"`
	Students        []*User        `gorm:"many2many:mentor_students;joinForeignKey:MentorID;joinReferences:StudentID" json:"-"`
	ReceivedGifts   []ReceivedGift `gorm:"foreignKey:OwnerID" json:"received_gifts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
