package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"type:varchar(50);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"type:text;not null" json:"-"`
	UserType        UserType  `gorm:"type:varchar(30);not null;index" json:"user_type"`
	IsEmailVerified bool      `gorm:"not null;default:false" json:"is_email_verified"`
	IsActive        bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Role() Role {
	return u.UserType.Role()
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role()}
}

// IsActiveProfessional reports whether the user can receive bookings.
func (u *User) IsActiveProfessional() bool {
	return u.IsActive && u.Role() == RoleProfessional
}
