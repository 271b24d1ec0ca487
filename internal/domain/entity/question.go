package entity

import (
	"time"

	"github.com/google/uuid"
)

// Question is an entry on the public Q&A board. AskedBy is nil for questions
// submitted before authentication was required.
type Question struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AskedBy    *uuid.UUID `gorm:"type:uuid;index" json:"asked_by,omitempty"`
	Question   string     `gorm:"type:text;not null" json:"question"`
	Answer     string     `gorm:"type:text;not null;default:''" json:"answer"`
	AnsweredBy *uuid.UUID `gorm:"type:uuid" json:"answered_by,omitempty"`
	AskedAt    time.Time  `gorm:"autoCreateTime;index" json:"asked_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`

	// Relationships
	Answerer *User `gorm:"foreignKey:AnsweredBy" json:"answerer,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) IsAnswered() bool {
	return q.AnsweredAt != nil
}
