package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AskQuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// Response DTOs

type QuestionResponse struct {
	ID         uuid.UUID    `json:"id"`
	Question   string       `json:"question"`
	Answer     string       `json:"answer"`
	IsAnswered bool         `json:"is_answered"`
	AnsweredBy *UserSummary `json:"answered_by,omitempty"`
	AskedAt    time.Time    `json:"asked_at"`
	AnsweredAt *time.Time   `json:"answered_at,omitempty"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
}
