package repository

import (
	"context"

	"healthconnect/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByEntity(ctx context.Context, entityName, entityID string) ([]entity.AuditLog, error)
}
