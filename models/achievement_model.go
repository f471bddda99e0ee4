package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

const (
	AchievementTypeManual = "manual"
	AchievementTypeXP     = "xp"
	AchievementTypeCoins  = "coins"
)

// Achievement is a reward rule. Built-in achievements have a nil CreatedBy;
// mentor-authored ones carry the authoring mentor's id. Awarding is tracked
// through the user_achievements join table, independent of authorship.
type Achievement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"size:255;not null;unique" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Icon        string     `gorm:"size:16" json:"icon"`
	XPReward    int        `gorm:"not null;default:0" json:"xp_reward"`
	CoinReward  int        `gorm:"not null;default:0" json:"coin_reward"`
	Rarity      string     `gorm:"size:16;not null;default:'common'" json:"rarity"`
	Type        string     `gorm:"size:16;not null;default:'manual'" json:"type"`
	TargetValue *int       `json:"target_value,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
