package converter

import (
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		ProfessionalID: appointment.ProfessionalID,
		ScheduledDate:  appointment.ScheduledDate.Format(dto.ScheduledDateLayout),
		ScheduledTime:  appointment.ScheduledTime,
		Description:    appointment.Description,
		Channel:        string(appointment.Channel),
		Status:         string(appointment.Status),
		Patient:        UserToSummary(appointment.Patient),
		Professional:   UserToSummary(appointment.Professional),
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
}

// AppointmentsToResponse converts a slice of Appointment entities to AppointmentListResponse DTO
func AppointmentsToResponse(appointments []entity.Appointment) *dto.AppointmentListResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}
}
