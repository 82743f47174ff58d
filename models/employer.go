package models

import (
	"time"

	"github.com/google/uuid"
)

// Employer lifecycle statuses.
const (
	EmployerStatusPending  = "pending"
	EmployerStatusApproved = "approved"
	EmployerStatusRejected = "rejected"
)

// Company size brackets, matching the intake form options.
const (
	CompanySizeMicro      = "1-10"
	CompanySizeSmall      = "11-50"
	CompanySizeMedium     = "51-200"
	CompanySizeLarge      = "201-500"
	CompanySizeEnterprise = "500+"
)

// EmployerStatuses enumerates every valid employer status.
var EmployerStatuses = []string{
	EmployerStatusPending,
	EmployerStatusApproved,
	EmployerStatusRejected,
}

// Employer represents a company participating in the program.
type Employer struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CompanyName  string    `json:"company_name" db:"company_name" gorm:"type:text;not null;unique"`
	Website      *string   `json:"website,omitempty" db:"website" gorm:"type:text"`
	ContactName  string    `json:"contact_name" db:"contact_name" gorm:"type:text;not null"`
	ContactEmail string    `json:"contact_email" db:"contact_email" gorm:"type:text;not null"`
	ContactPhone *string   `json:"contact_phone,omitempty" db:"contact_phone" gorm:"type:text"`
	CompanySize  string    `json:"company_size" db:"company_size" gorm:"type:text"`
	Industry     string    `json:"industry" db:"industry" gorm:"type:text"`
	Location     string    `json:"location" db:"location" gorm:"type:text"`
	Description  string    `json:"description" db:"description" gorm:"type:text"`
	Status       string    `json:"status" db:"status" gorm:"type:text;not null;default:pending"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// ValidEmployerStatus reports whether status is one of the enumerated set.
func ValidEmployerStatus(status string) bool {
	for _, s := range EmployerStatuses {
		if s == status {
			return true
		}
	}
	return false
}
