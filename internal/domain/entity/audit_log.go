package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID         int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action     string            `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string            `gorm:"column:entity;type:varchar(50);not null;index:idx_audit_entity" json:"entity"`
	EntityID   string            `gorm:"type:varchar(64);not null;index:idx_audit_entity" json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionUserRegister        = "user.register"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentAccept   = "appointment.accept"
	AuditActionAppointmentReject   = "appointment.reject"
	AuditActionAppointmentComplete = "appointment.complete"
	AuditActionAppointmentCancel   = "appointment.cancel"
	AuditActionQuestionAnswer      = "question.answer"
	AuditActionQuestionDelete      = "question.delete"
	AuditActionStoryCreate         = "story.create"
)

// Audited entity names
const (
	AuditEntityUser        = "user"
	AuditEntityAppointment = "appointment"
	AuditEntityQuestion    = "question"
	AuditEntityStory       = "story"
)

// AuditActionForStatus maps an appointment status change to its audit action.
func AuditActionForStatus(status AppointmentStatus) string {
	switch status {
	case AppointmentStatusAccepted:
		return AuditActionAppointmentAccept
	case AppointmentStatusRejected:
		return AuditActionAppointmentReject
	case AppointmentStatusCompleted:
		return AuditActionAppointmentComplete
	case AppointmentStatusCancelled:
		return AuditActionAppointmentCancel
	case AppointmentStatusPending:
		return AuditActionAppointmentCreate
	}
	return "appointment." + string(status)
}
