package usecase

import (
	"context"

	"healthconnect/internal/converter"
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditLogUsecase reads the audit trail. Callers decide who may see which
// entity's history.
type AuditLogUsecase interface {
	GetEntityHistory(ctx context.Context, entityName, entityID string) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetEntityHistory(ctx context.Context, entityName, entityID string) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByEntity(ctx, entityName, entityID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs for %s %s: %+v", entityName, entityID, err)
		return nil, err
	}

	return converter.AuditLogsToResponse(logs), nil
}
