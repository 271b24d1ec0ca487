package repository

import (
	"context"

	"healthconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindActiveProfessionalByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindActiveProfessionals(ctx context.Context) ([]entity.User, error)
}
