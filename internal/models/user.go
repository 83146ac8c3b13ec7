package models

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// Roles form a closed set; anything else is rejected at registration.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleSuperuser = "superuser"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	HashedPassword string    `json:"-" gorm:"not null"`
	Role           string    `json:"role" gorm:"not null;default:'user'"`
	PhoneNumber    string    `json:"phone_number"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsPrivileged reports whether a role grants admin-level access.
// Matching is case-insensitive.
func IsPrivileged(role string) bool {
	switch strings.ToLower(role) {
	case RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}
