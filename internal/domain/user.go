package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// AssignableAtSignup reports whether a role may be requested through
// self-registration. Admin accounts are created through an operational path,
// never via signup.
func (r Role) AssignableAtSignup() bool {
	return r == RoleStudent || r == RoleInstructor
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor || r == RoleAdmin
}

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UUID           uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	FirstName      string    `json:"firstName" gorm:"not null"`
	LastName       string    `json:"lastName" gorm:"not null"`
	Bio            string    `json:"bio" gorm:"size:500"`
	ProfilePicture string    `json:"profilePicture" gorm:"size:500"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"`
	Role           Role      `json:"role" gorm:"not null;default:STUDENT"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
