package repository

import (
	"context"

	"healthconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	FindAll(ctx context.Context) ([]entity.Story, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Story, error)
	// ToggleLike adds the like when absent and removes it when present.
	ToggleLike(ctx context.Context, storyID, userID uuid.UUID) (liked bool, likeCount int64, err error)
	AddComment(ctx context.Context, comment *entity.StoryComment) error
}
