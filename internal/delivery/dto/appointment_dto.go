package dto

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledDateLayout is the wire format of an appointment date.
const ScheduledDateLayout = "2006-01-02"

// Request DTOs

type CreateAppointmentRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required,uuid"`
	ScheduledDate  string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime  string `json:"scheduled_time" validate:"required,max=20"`
	Description    string `json:"description" validate:"required,max=500"`
	Channel        string `json:"channel" validate:"omitempty,oneof=video phone"`
}

// UpdateAppointmentStatusRequest carries the target status. Its value is
// checked by the usecase so unknown statuses surface as invalid arguments.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID    `json:"id"`
	PatientID      uuid.UUID    `json:"patient_id"`
	ProfessionalID uuid.UUID    `json:"professional_id"`
	ScheduledDate  string       `json:"scheduled_date"`
	ScheduledTime  string       `json:"scheduled_time"`
	Description    string       `json:"description"`
	Channel        string       `json:"channel"`
	Status         string       `json:"status"`
	Patient        *UserSummary `json:"patient,omitempty"`
	Professional   *UserSummary `json:"professional,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type ProfessionalListResponse struct {
	Professionals []UserSummary `json:"professionals"`
	Total         int           `json:"total"`
}
