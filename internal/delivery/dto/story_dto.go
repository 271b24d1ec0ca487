package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateStoryRequest struct {
	Title    string `json:"title" validate:"required,max=100"`
	Content  string `json:"content" validate:"required,max=5000"`
	Category string `json:"category" validate:"required,oneof=personal_story advice educational support awareness"`
}

type AddCommentRequest struct {
	Content     string `json:"content" validate:"required,max=500"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// Response DTOs

type StoryResponse struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	Category     string            `json:"category"`
	Author       *UserSummary      `json:"author,omitempty"`
	LikeCount    int64             `json:"like_count"`
	CommentCount int64             `json:"comment_count"`
	Comments     []CommentResponse `json:"comments,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type StoryListResponse struct {
	Stories []StoryResponse `json:"stories"`
	Total   int             `json:"total"`
}

// CommentResponse omits the author for anonymous comments.
type CommentResponse struct {
	ID          uuid.UUID    `json:"id"`
	Content     string       `json:"content"`
	IsAnonymous bool         `json:"is_anonymous"`
	User        *UserSummary `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
