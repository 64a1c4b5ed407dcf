package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Progress int       `gorm:"not null;default:0" json:"progress"`

	CompletedAt *time.Time `json:"completed_at"`

	User   User   `gorm:"foreignkey:UserID" json:"-"`
	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
