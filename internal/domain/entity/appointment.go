package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusAccepted  AppointmentStatus = "accepted"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentChannel is how the consultation takes place
type AppointmentChannel string

const (
	AppointmentChannelVideo AppointmentChannel = "video"
	AppointmentChannelPhone AppointmentChannel = "phone"

	DefaultAppointmentChannel = AppointmentChannelVideo
)

// MaxAppointmentDescription is counted in characters, not bytes.
const MaxAppointmentDescription = 500

// Appointment is a consultation request from a patient to a health professional
type Appointment struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalID uuid.UUID          `gorm:"type:uuid;not null;index" json:"professional_id"`
	ScheduledDate  time.Time          `gorm:"type:date;not null" json:"scheduled_date"`
	ScheduledTime  string             `gorm:"type:varchar(20);not null" json:"scheduled_time"`
	Description    string             `gorm:"type:varchar(500);not null" json:"description"`
	Channel        AppointmentChannel `gorm:"type:varchar(10);not null;default:'video'" json:"channel"`
	Status         AppointmentStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional *User `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// PartyRole returns the side the user is on for this appointment, or "" when
// the user is not a party to it.
func (a *Appointment) PartyRole(userID uuid.UUID) Role {
	switch userID {
	case a.ProfessionalID:
		return RoleProfessional
	case a.PatientID:
		return RolePatient
	}
	return ""
}

func (a *Appointment) IsParty(userID uuid.UUID) bool {
	return a.PartyRole(userID) != ""
}

// TransitionRule describes who may move an appointment into a target status and
// from which statuses.
type TransitionRule struct {
	Target AppointmentStatus
	Actor  Role
	From   []AppointmentStatus
}

func (r TransitionRule) Allows(current AppointmentStatus) bool {
	for _, s := range r.From {
		if s == current {
			return true
		}
	}
	return false
}

var transitionRules = map[AppointmentStatus]TransitionRule{
	AppointmentStatusAccepted: {
		Target: AppointmentStatusAccepted,
		Actor:  RoleProfessional,
		From:   []AppointmentStatus{AppointmentStatusPending},
	},
	AppointmentStatusRejected: {
		Target: AppointmentStatusRejected,
		Actor:  RoleProfessional,
		From:   []AppointmentStatus{AppointmentStatusPending},
	},
	AppointmentStatusCompleted: {
		Target: AppointmentStatusCompleted,
		Actor:  RoleProfessional,
		From:   []AppointmentStatus{AppointmentStatusAccepted},
	},
	AppointmentStatusCancelled: {
		Target: AppointmentStatusCancelled,
		Actor:  RolePatient,
		From:   []AppointmentStatus{AppointmentStatusPending, AppointmentStatusAccepted},
	},
}

// TransitionRuleFor returns the rule for a requested target status. Pending is
// never a valid target.
func TransitionRuleFor(target AppointmentStatus) (TransitionRule, bool) {
	rule, ok := transitionRules[target]
	return rule, ok
}

// ParseAppointmentStatus validates a status string received from a client.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusRejected,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// ParseAppointmentChannel validates a channel string, defaulting to video when
// it is empty.
func ParseAppointmentChannel(s string) (AppointmentChannel, error) {
	switch channel := AppointmentChannel(s); channel {
	case "":
		return DefaultAppointmentChannel, nil
	case AppointmentChannelVideo, AppointmentChannelPhone:
		return channel, nil
	}
	return "", fmt.Errorf("unknown appointment channel %q", s)
}

// AppointmentFilter selects appointments by exactly one party or by id.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ID             *uuid.UUID
	PatientID      *uuid.UUID
	ProfessionalID *uuid.UUID
}

// FilterForActor builds the mandatory role-scoped listing filter.
func FilterForActor(actor Actor) AppointmentFilter {
	id := actor.ID
	if actor.IsProfessional() {
		return AppointmentFilter{ProfessionalID: &id}
	}
	return AppointmentFilter{PatientID: &id}
}

func (f AppointmentFilter) IsEmpty() bool {
	return f.ID == nil && f.PatientID == nil && f.ProfessionalID == nil
}
