package models

import (
	"time"

	"github.com/google/uuid"
)

// Organizer roles.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
)

// Organizer is the authenticated staff actor. AuthSubject links the row to
// the external auth identity (the `sub` claim of the session token).
type Organizer struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email       string     `json:"email" db:"email" gorm:"type:text;not null;unique"`
	FullName    string     `json:"full_name" db:"full_name" gorm:"type:text;not null"`
	Role        string     `json:"role" db:"role" gorm:"type:text;not null;default:organizer"`
	IsActive    bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	AuthSubject string     `json:"auth_subject" db:"auth_subject" gorm:"type:text;not null;unique"`
	LastLogin   *time.Time `json:"last_login,omitempty" db:"last_login" gorm:"type:timestamp"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// IsAdmin reports whether the organizer holds the admin role.
func (o Organizer) IsAdmin() bool {
	return o.Role == RoleAdmin
}

// ValidRole reports whether role is one of the enumerated set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOrganizer
}
