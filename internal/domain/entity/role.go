package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role decides what an authenticated user may do. It is derived from the
// account's UserType and never stored on its own.
type Role string

const (
	RolePatient      Role = "patient"
	RoleProfessional Role = "health_professional"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleProfessional:
		return true
	}
	return false
}

// UserType is the account category chosen at registration.
type UserType string

const (
	UserTypeAdult        UserType = "adult"
	UserTypeAdolescent   UserType = "adolescent"
	UserTypeProfessional UserType = "health_professional"
)

// ParseUserType accepts the registration value, including the legacy
// "health_prof" spelling used by older clients.
func ParseUserType(s string) (UserType, error) {
	switch s {
	case string(UserTypeAdult):
		return UserTypeAdult, nil
	case string(UserTypeAdolescent):
		return UserTypeAdolescent, nil
	case string(UserTypeProfessional), "health_prof":
		return UserTypeProfessional, nil
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

func (t UserType) Role() Role {
	switch t {
	case UserTypeProfessional:
		return RoleProfessional
	case UserTypeAdult, UserTypeAdolescent:
		return RolePatient
	}
	return ""
}

// Actor is the authenticated caller of a usecase operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsProfessional() bool {
	return a.Role == RoleProfessional
}
