package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	MentorID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	ScheduledAt     time.Time  `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int        `gorm:"not null" json:"duration"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`
	Mentor  User `gorm:"foreignkey:MentorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
