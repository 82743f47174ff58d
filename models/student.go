package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Student lifecycle statuses. Status columns are closed sets; anything else
// is rejected at the API boundary.
const (
	StudentStatusPending  = "pending"
	StudentStatusApproved = "approved"
	StudentStatusRejected = "rejected"
	StudentStatusDraft    = "draft"
)

// Student availability values.
const (
	AvailabilityFullTime   = "full_time"
	AvailabilityPartTime   = "part_time"
	AvailabilityInternship = "internship"
	AvailabilityFlexible   = "flexible"
)

// StudentStatuses enumerates every valid student status.
var StudentStatuses = []string{
	StudentStatusPending,
	StudentStatusApproved,
	StudentStatusRejected,
	StudentStatusDraft,
}

// Student represents a program participant looking for a placement.
type Student struct {
	ID              uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email           string           `json:"email" db:"email" gorm:"type:text;not null;unique"`
	FirstName       string           `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName        string           `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	University      string           `json:"university" db:"university" gorm:"type:text;not null"`
	Degree          string           `json:"degree" db:"degree" gorm:"type:text"`
	GraduationYear  int              `json:"graduation_year" db:"graduation_year" gorm:"type:integer"`
	Phone           *string          `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	LinkedinURL     *string          `json:"linkedin_url,omitempty" db:"linkedin_url" gorm:"type:text"`
	PortfolioURL    *string          `json:"portfolio_url,omitempty" db:"portfolio_url" gorm:"type:text"`
	ResumeURL       *string          `json:"resume_url,omitempty" db:"resume_url" gorm:"type:text"`
	TranscriptURL   *string          `json:"transcript_url,omitempty" db:"transcript_url" gorm:"type:text"`
	Skills          pq.StringArray   `json:"skills" db:"skills" gorm:"type:text[]"`
	Interests       pq.StringArray   `json:"interests" db:"interests" gorm:"type:text[]"`
	Availability    string           `json:"availability" db:"availability" gorm:"type:text;not null;default:flexible"`
	Bio             string           `json:"bio" db:"bio" gorm:"type:text"`
	Status          string           `json:"status" db:"status" gorm:"type:text;not null;default:pending"`
	ValidationScore *float64         `json:"validation_score,omitempty" db:"validation_score" gorm:"type:numeric"`
	ValidationNotes *string          `json:"validation_notes,omitempty" db:"validation_notes" gorm:"type:text"`
	Embedding       *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector(1536)"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// FullName joins the student's names for display and email templates.
func (s Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// ValidStudentStatus reports whether status is one of the enumerated set.
func ValidStudentStatus(status string) bool {
	for _, s := range StudentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
