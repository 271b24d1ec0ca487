package repository

import (
	"context"

	"healthconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Find(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatus moves the appointment to next only if its stored status is
	// still expected. Returns affected rows: 1 = applied, 0 = status changed
	// underneath or appointment missing.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.AppointmentStatus) (int64, error)
}
