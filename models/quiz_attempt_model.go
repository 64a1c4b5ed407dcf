package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerList holds one selected option index per question, -1 for unanswered.
type AnswerList []int

func (a AnswerList) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for AnswerList")
	}
}

// QuizAttempt is immutable once created.
type QuizAttempt struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	QuizID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Answers AnswerList `gorm:"type:jsonb;not null" json:"answers"`
	Score   int        `gorm:"not null" json:"score"`
	Passed  bool       `gorm:"not null" json:"passed"`

	Quiz Quiz `gorm:"foreignkey:QuizID" json:"-"`
	User User `gorm:"foreignkey:UserID" json:"-"`

	CompletedAt time.Time `json:"completed_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
