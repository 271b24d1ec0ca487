package repository

import (
	"context"
	"errors"
	"time"

	"healthconnect/internal/domain/entity"
	domainRepo "healthconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyAppointmentFilter = errors.New("appointment filter must select a party or an id")

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.withParties(r.db.WithContext(ctx)).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// Find never runs unfiltered so a listing cannot leak other users' records.
func (r *appointmentRepository) Find(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	if filter.IsEmpty() {
		return nil, ErrEmptyAppointmentFilter
	}

	query := r.withParties(r.db.WithContext(ctx))
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}

	var appointments []entity.Appointment
	if err := query.Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus atomically changes the status ONLY if it still equals expected.
// Returns affected rows: 1 = success, 0 = lost the race (prevents lost updates).
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) withParties(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email", "user_type") }).
		Preload("Professional", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email", "user_type") })
}
