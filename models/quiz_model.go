package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// QuestionList is stored as a single jsonb column, the same way the quiz
// options of a question are kept inline rather than in a join table.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return errors.New("unsupported type for QuestionList")
	}
}

type Quiz struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	CourseID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"course_id"`
	LessonID     *uuid.UUID   `gorm:"type:uuid" json:"lesson_id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  *string      `gorm:"type:text" json:"description"`
	Questions    QuestionList `gorm:"type:jsonb;not null" json:"questions"`
	PassingScore int          `gorm:"not null" json:"passing_score"`

	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
