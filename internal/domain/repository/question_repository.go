package repository

import (
	"context"
	"time"

	"healthconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindAll(ctx context.Context) ([]entity.Question, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error)
	Answer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, answeredAt time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
