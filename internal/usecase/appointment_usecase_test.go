package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
	"healthconnect/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	uc           AppointmentUsecase
	appointments *mockAppointmentRepo
	users        *mockUserRepo
	audit        *mockAuditLogRepo

	patient      entity.Actor
	otherPatient entity.Actor
	professional entity.Actor
	otherProf    entity.Actor
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	log := quietLogger()
	users := newMockUserRepo()
	appointments := newMockAppointmentRepo()
	audit := &mockAuditLogRepo{}

	directory := service.NewProfessionalDirectory(log, users, nil, 0)
	auditService := service.NewAuditService(log, audit)

	f := &appointmentFixture{
		uc:           NewAppointmentUsecase(log, appointments, directory, auditService, NewAuditLogUsecase(log, audit)),
		appointments: appointments,
		users:        users,
		audit:        audit,
	}

	f.patient = users.add(entity.User{Name: "Pat", Email: "p@example.com", UserType: entity.UserTypeAdult, IsActive: true}).Actor()
	f.otherPatient = users.add(entity.User{Name: "Ada", Email: "a@example.com", UserType: entity.UserTypeAdolescent, IsActive: true}).Actor()
	f.professional = users.add(entity.User{Name: "Dr. H", Email: "h@example.com", UserType: entity.UserTypeProfessional, IsActive: true}).Actor()
	f.otherProf = users.add(entity.User{Name: "Dr. K", Email: "k@example.com", UserType: entity.UserTypeProfessional, IsActive: true}).Actor()

	return f
}

func (f *appointmentFixture) request(professional entity.Actor) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		ProfessionalID: professional.ID.String(),
		ScheduledDate:  "2025-03-01",
		ScheduledTime:  "10:00",
		Description:    "checkup",
	}
}

func (f *appointmentFixture) book(t *testing.T, patient, professional entity.Actor) uuid.UUID {
	t.Helper()
	created, err := f.uc.Create(context.Background(), patient, f.request(professional))
	require.NoError(t, err)
	return created.ID
}

func TestAppointmentCreate_DefaultsToPendingVideo(t *testing.T) {
	f := newAppointmentFixture(t)

	created, err := f.uc.Create(context.Background(), f.patient, f.request(f.professional))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusPending), created.Status)
	assert.Equal(t, string(entity.DefaultAppointmentChannel), created.Channel)
	assert.Equal(t, f.patient.ID, created.PatientID)
	assert.Equal(t, f.professional.ID, created.ProfessionalID)
	require.NotNil(t, created.Professional)
	assert.Equal(t, "Dr. H", created.Professional.Name)

	assert.Equal(t, []string{entity.AuditActionAppointmentCreate}, f.audit.actions())
}

func TestAppointmentCreate_RoundTripThroughListing(t *testing.T) {
	f := newAppointmentFixture(t)
	req := &dto.CreateAppointmentRequest{
		ProfessionalID: f.professional.ID.String(),
		ScheduledDate:  "2025-03-01",
		ScheduledTime:  "10:00",
		Description:    "checkup",
		Channel:        "phone",
	}

	created, err := f.uc.Create(context.Background(), f.patient, req)
	require.NoError(t, err)

	list, err := f.uc.ListForActor(context.Background(), f.patient)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)

	got := list.Appointments[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, req.ProfessionalID, got.ProfessionalID.String())
	assert.Equal(t, req.ScheduledDate, got.ScheduledDate)
	assert.Equal(t, req.ScheduledTime, got.ScheduledTime)
	assert.Equal(t, req.Description, got.Description)
	assert.Equal(t, req.Channel, got.Channel)
	assert.Equal(t, "pending", got.Status)
}

func TestAppointmentCreate_StoresTextAsSubmitted(t *testing.T) {
	f := newAppointmentFixture(t)
	req := f.request(f.professional)
	req.ScheduledTime = " 10:00 AM "
	req.Description = "  chest pain,\n  since Monday  "

	created, err := f.uc.Create(context.Background(), f.patient, req)
	require.NoError(t, err)
	assert.Equal(t, req.ScheduledTime, created.ScheduledTime)
	assert.Equal(t, req.Description, created.Description)

	got, err := f.uc.Get(context.Background(), f.patient, created.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ScheduledTime, got.ScheduledTime)
	assert.Equal(t, req.Description, got.Description)
}

func TestAppointmentCreate_Rejections(t *testing.T) {
	f := newAppointmentFixture(t)
	inactive := f.users.add(entity.User{Name: "Dr. Gone", Email: "g@example.com", UserType: entity.UserTypeProfessional, IsActive: false}).Actor()

	tests := []struct {
		name   string
		actor  entity.Actor
		mutate func(r *dto.CreateAppointmentRequest)
		err    error
	}{
		{"professional cannot book", f.otherProf, func(r *dto.CreateAppointmentRequest) {}, ErrAppointmentForbidden},
		{"unknown professional", f.patient, func(r *dto.CreateAppointmentRequest) { r.ProfessionalID = uuid.NewString() }, ErrProfessionalNotFound},
		{"target is a patient", f.patient, func(r *dto.CreateAppointmentRequest) { r.ProfessionalID = f.otherPatient.ID.String() }, ErrProfessionalNotFound},
		{"inactive professional", f.patient, func(r *dto.CreateAppointmentRequest) { r.ProfessionalID = inactive.ID.String() }, ErrProfessionalNotFound},
		{"self booking", f.patient, func(r *dto.CreateAppointmentRequest) { r.ProfessionalID = f.patient.ID.String() }, ErrProfessionalNotFound},
		{"malformed id", f.patient, func(r *dto.CreateAppointmentRequest) { r.ProfessionalID = "nope" }, ErrInvalidArgument},
		{"malformed date", f.patient, func(r *dto.CreateAppointmentRequest) { r.ScheduledDate = "01/03/2025" }, ErrInvalidArgument},
		{"missing time", f.patient, func(r *dto.CreateAppointmentRequest) { r.ScheduledTime = "  " }, ErrInvalidArgument},
		{"description too long", f.patient, func(r *dto.CreateAppointmentRequest) { r.Description = strings.Repeat("a", 501) }, ErrInvalidArgument},
		{"empty description", f.patient, func(r *dto.CreateAppointmentRequest) { r.Description = "" }, ErrInvalidArgument},
		{"blank description", f.patient, func(r *dto.CreateAppointmentRequest) { r.Description = " \t\n" }, ErrInvalidArgument},
		{"voice channel", f.patient, func(r *dto.CreateAppointmentRequest) { r.Channel = "voice" }, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(f.professional)
			tt.mutate(req)

			resp, err := f.uc.Create(context.Background(), tt.actor, req)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, resp)
		})
	}

	list, err := f.uc.ListForActor(context.Background(), f.patient)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestAppointmentCreate_DescriptionCountsCharacters(t *testing.T) {
	f := newAppointmentFixture(t)
	req := f.request(f.professional)
	req.Description = strings.Repeat("é", entity.MaxAppointmentDescription)

	created, err := f.uc.Create(context.Background(), f.patient, req)
	require.NoError(t, err)
	assert.Equal(t, req.Description, created.Description)
}

func TestAppointmentListForActor_IsRoleScoped(t *testing.T) {
	f := newAppointmentFixture(t)
	f.book(t, f.patient, f.professional)
	f.book(t, f.patient, f.otherProf)
	f.book(t, f.otherPatient, f.professional)

	mine, err := f.uc.ListForActor(context.Background(), f.patient)
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Total)
	for _, a := range mine.Appointments {
		assert.Equal(t, f.patient.ID, a.PatientID)
	}

	theirs, err := f.uc.ListForActor(context.Background(), f.professional)
	require.NoError(t, err)
	assert.Equal(t, 2, theirs.Total)
	for _, a := range theirs.Appointments {
		assert.Equal(t, f.professional.ID, a.ProfessionalID)
	}

	_, err = f.uc.ListForActor(context.Background(), entity.Actor{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrAppointmentForbidden)
}

func TestAppointmentListForActor_NewestFirst(t *testing.T) {
	f := newAppointmentFixture(t)
	first := f.book(t, f.patient, f.professional)
	second := f.book(t, f.patient, f.professional)

	list, err := f.uc.ListForActor(context.Background(), f.patient)
	require.NoError(t, err)
	require.Len(t, list.Appointments, 2)
	assert.Equal(t, second, list.Appointments[0].ID)
	assert.Equal(t, first, list.Appointments[1].ID)
}

func TestAppointmentTransition_LifecycleScenario(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	accepted, err := f.uc.Transition(context.Background(), f.professional, id, "accepted")
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)

	completed, err := f.uc.Transition(context.Background(), f.professional, id, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	_, err = f.uc.Transition(context.Background(), f.professional, id, "accepted")
	assert.ErrorIs(t, err, ErrAppointmentConflict)

	assert.Equal(t, []string{
		entity.AuditActionAppointmentCreate,
		entity.AuditActionAppointmentAccept,
		entity.AuditActionAppointmentComplete,
	}, f.audit.actions())
}

func TestAppointmentTransition_RepeatFails(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	_, err := f.uc.Transition(context.Background(), f.professional, id, "rejected")
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), f.professional, id, "rejected")
	assert.ErrorIs(t, err, ErrAppointmentConflict)
}

func TestAppointmentTransition_ProfessionalTargetsForbidOthers(t *testing.T) {
	statuses := []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusAccepted,
		entity.AppointmentStatusRejected,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
	}

	for _, target := range []string{"accepted", "rejected", "completed"} {
		for _, current := range statuses {
			t.Run(target+"_from_"+string(current), func(t *testing.T) {
				f := newAppointmentFixture(t)
				id := f.book(t, f.patient, f.professional)
				f.appointments.setStatus(id, current)

				for _, actor := range []entity.Actor{f.otherProf, f.patient, f.otherPatient} {
					_, err := f.uc.Transition(context.Background(), actor, id, target)
					assert.ErrorIs(t, err, ErrAppointmentForbidden)
				}
			})
		}
	}
}

func TestAppointmentCancel_ForbidsEveryoneButThePatient(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	for _, actor := range []entity.Actor{f.otherPatient, f.professional, f.otherProf} {
		_, err := f.uc.Cancel(context.Background(), actor, id)
		assert.ErrorIs(t, err, ErrAppointmentForbidden)
	}

	cancelled, err := f.uc.Cancel(context.Background(), f.patient, id)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = f.uc.Cancel(context.Background(), f.patient, id)
	assert.ErrorIs(t, err, ErrAppointmentConflict)
}

func TestAppointmentCancel_FromAccepted(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	_, err := f.uc.Transition(context.Background(), f.professional, id, "accepted")
	require.NoError(t, err)

	cancelled, err := f.uc.Transition(context.Background(), f.patient, id, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestAppointmentTransition_CompletedRequiresAccepted(t *testing.T) {
	for _, current := range []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusRejected,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
	} {
		t.Run(string(current), func(t *testing.T) {
			f := newAppointmentFixture(t)
			id := f.book(t, f.patient, f.professional)
			f.appointments.setStatus(id, current)

			_, err := f.uc.Transition(context.Background(), f.professional, id, "completed")
			assert.ErrorIs(t, err, ErrAppointmentConflict)
		})
	}
}

func TestAppointmentTransition_RoleMismatchIsInvalidTransition(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	// Same user as the professional of the appointment, but the token claims
	// the patient role.
	stale := entity.Actor{ID: f.professional.ID, Role: entity.RolePatient}
	_, err := f.uc.Transition(context.Background(), stale, id, "accepted")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrAppointmentConflict)
}

func TestAppointmentTransition_InvalidArguments(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	for _, target := range []string{"", "confirmed", "ACCEPTED", "pending"} {
		_, err := f.uc.Transition(context.Background(), f.professional, id, target)
		assert.ErrorIs(t, err, ErrInvalidArgument, "target %q", target)
	}
}

func TestAppointmentTransition_NotFound(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.uc.Transition(context.Background(), f.professional, uuid.New(), "accepted")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentTransition_ConcurrentAcceptAndReject(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newAppointmentFixture(t)
		id := f.book(t, f.patient, f.professional)

		gate := &sync.WaitGroup{}
		gate.Add(2)
		f.appointments.updateGate = gate

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for n, target := range []string{"accepted", "rejected"} {
			wg.Add(1)
			go func(n int, target string) {
				defer wg.Done()
				_, errs[n] = f.uc.Transition(context.Background(), f.professional, id, target)
			}(n, target)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrAppointmentConflict)
		}
		require.Equal(t, 1, succeeded)

		stored, err := f.appointments.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Contains(t, []entity.AppointmentStatus{entity.AppointmentStatusAccepted, entity.AppointmentStatusRejected}, stored.Status)
	}
}

func TestAppointmentGet_HidesOtherUsersAppointments(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)

	got, err := f.uc.Get(context.Background(), f.professional, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = f.uc.Get(context.Background(), f.otherPatient, id)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentHistory(t *testing.T) {
	f := newAppointmentFixture(t)
	id := f.book(t, f.patient, f.professional)
	_, err := f.uc.Transition(context.Background(), f.professional, id, "accepted")
	require.NoError(t, err)

	history, err := f.uc.History(context.Background(), f.patient, id)
	require.NoError(t, err)
	require.Equal(t, 2, history.Total)
	assert.Equal(t, entity.AuditActionAppointmentCreate, history.Logs[0].Action)
	assert.Equal(t, entity.AuditActionAppointmentAccept, history.Logs[1].Action)
	assert.Equal(t, map[string]interface{}{"status": "accepted"}, history.Logs[1].Metadata["new_value"])

	_, err = f.uc.History(context.Background(), f.otherProf, id)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentListProfessionals(t *testing.T) {
	f := newAppointmentFixture(t)

	list, err := f.uc.ListProfessionals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Dr. H", list.Professionals[0].Name)
	assert.Equal(t, "Dr. K", list.Professionals[1].Name)
}
