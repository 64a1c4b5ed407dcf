package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Thumbnail   *string   `gorm:"size:255" json:"thumbnail"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Level       string    `gorm:"size:20;not null" json:"level"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Duration    string    `gorm:"size:50" json:"duration"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null" json:"instructor_id"`
	Instructor   User      `gorm:"foreignkey:InstructorID" json:"-"`

	IsPublished bool `gorm:"default:false" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InstructorSummary is the trimmed instructor shape embedded in catalog responses.
type InstructorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
