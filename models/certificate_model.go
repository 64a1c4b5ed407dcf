package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	SerialNumber   string    `gorm:"size:12;unique" json:"serial_number"`
	CertificateURL string    `gorm:"type:text;not null" json:"certificate_url"`

	User   User   `gorm:"foreignkey:UserID" json:"-"`
	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	IssuedAt time.Time `gorm:"autoCreateTime" json:"issued_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
