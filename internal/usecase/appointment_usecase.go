package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"healthconnect/internal/converter"
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
	"healthconnect/internal/domain/repository"
	"healthconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentForbidden = errors.New("you are not allowed to act on this appointment")
	ErrInvalidTransition    = errors.New("your role cannot request this status")
	ErrAppointmentConflict  = errors.New("appointment status does not allow this change")
	ErrProfessionalNotFound = errors.New("health professional not found")
)

const maxScheduledTime = 20

type AppointmentUsecase interface {
	ListProfessionals(ctx context.Context) (*dto.ProfessionalListResponse, error)
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListForActor(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	Transition(ctx context.Context, actor entity.Actor, id uuid.UUID, target string) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	History(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AuditLogListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	directory       service.ProfessionalDirectory
	auditService    service.AuditService
	auditLogUsecase AuditLogUsecase
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	directory service.ProfessionalDirectory,
	auditService service.AuditService,
	auditLogUsecase AuditLogUsecase,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		directory:       directory,
		auditService:    auditService,
		auditLogUsecase: auditLogUsecase,
	}
}

// ListProfessionals returns the bookable health professionals
func (u *appointmentUsecase) ListProfessionals(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.directory.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return converter.ProfessionalsToResponse(professionals), nil
}

// Create books a pending appointment for the calling patient
func (u *appointmentUsecase) Create(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !actor.IsPatient() {
		return nil, fmt.Errorf("%w: only patients can book appointments", ErrAppointmentForbidden)
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: professional_id must be a UUID", ErrInvalidArgument)
	}

	scheduledDate, err := time.Parse(dto.ScheduledDateLayout, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_date must use YYYY-MM-DD", ErrInvalidArgument)
	}

	// Text fields are stored as submitted; whitespace only counts as missing.
	scheduledTime := req.ScheduledTime
	if strings.TrimSpace(scheduledTime) == "" || utf8.RuneCountInString(scheduledTime) > maxScheduledTime {
		return nil, fmt.Errorf("%w: scheduled_time is required and at most %d characters", ErrInvalidArgument, maxScheduledTime)
	}

	description := req.Description
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(description) > entity.MaxAppointmentDescription {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidArgument, entity.MaxAppointmentDescription)
	}

	channel, err := entity.ParseAppointmentChannel(req.Channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// A professional can never be their own patient.
	if professionalID == actor.ID {
		return nil, ErrProfessionalNotFound
	}

	professional, err := u.directory.FindActiveByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	appointment := &entity.Appointment{
		PatientID:      actor.ID,
		ProfessionalID: professional.ID,
		ScheduledDate:  scheduledDate,
		ScheduledTime:  scheduledTime,
		Description:    description,
		Channel:        channel,
		Status:         entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	appointment.Professional = professional

	response := converter.AppointmentToResponse(appointment)
	u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionAppointmentCreate,
		entity.AuditEntityAppointment, appointment.ID.String(), response)

	u.log.Infof("Appointment %s booked by patient %s with professional %s", appointment.ID, actor.ID, professional.ID)
	return response, nil
}

// ListForActor returns the appointments the actor is a party to, newest first
func (u *appointmentUsecase) ListForActor(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	if !actor.Role.Valid() {
		return nil, ErrAppointmentForbidden
	}

	appointments, err := u.appointmentRepo.Find(ctx, entity.FilterForActor(actor))
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", actor.ID, err)
		return nil, err
	}

	return converter.AppointmentsToResponse(appointments), nil
}

// Get returns one appointment. Appointments of other users are reported as
// missing.
func (u *appointmentUsecase) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Transition moves an appointment to the status named by target
func (u *appointmentUsecase) Transition(ctx context.Context, actor entity.Actor, id uuid.UUID, target string) (*dto.AppointmentResponse, error) {
	status, err := entity.ParseAppointmentStatus(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return u.transition(ctx, actor, id, status)
}

// Cancel is the patient's cancellation, run through the same state table
func (u *appointmentUsecase) Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, id, entity.AppointmentStatusCancelled)
}

// History returns the audit trail of an appointment to its parties
func (u *appointmentUsecase) History(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AuditLogListResponse, error) {
	if _, err := u.findVisible(ctx, actor, id); err != nil {
		return nil, err
	}
	return u.auditLogUsecase.GetEntityHistory(ctx, entity.AuditEntityAppointment, id.String())
}

// transition checks, in order: existence, that the actor holds the side of
// the appointment the target requires, that the actor's role matches that
// side, and that the current status allows the target. The write is
// conditioned on the status read here so a concurrent change makes it fail
// with ErrAppointmentConflict.
func (u *appointmentUsecase) transition(ctx context.Context, actor entity.Actor, id uuid.UUID, target entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	rule, ok := entity.TransitionRuleFor(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a valid target status", ErrInvalidArgument, target)
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.PartyRole(actor.ID) != rule.Actor {
		return nil, ErrAppointmentForbidden
	}
	if actor.Role != rule.Actor {
		return nil, ErrInvalidTransition
	}

	current := appointment.Status
	if !rule.Allows(current) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrAppointmentConflict, current, target)
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, id, current, target)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: status changed concurrently", ErrAppointmentConflict)
	}

	updated, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", id, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}

	u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionForStatus(target),
		entity.AuditEntityAppointment, id.String(),
		map[string]string{"status": string(current)},
		map[string]string{"status": string(target)})

	u.log.Infof("Appointment %s moved from %s to %s by %s", id, current, target, actor.ID)
	return converter.AppointmentToResponse(updated), nil
}

func (u *appointmentUsecase) findVisible(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !appointment.IsParty(actor.ID) {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
