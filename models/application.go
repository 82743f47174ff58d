package models

import (
	"time"

	"github.com/google/uuid"
)

// Application lifecycle statuses.
const (
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// ApplicationStatuses enumerates every valid application status.
var ApplicationStatuses = []string{
	ApplicationStatusSubmitted,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusHired,
}

// Application records a student applying to a specific job posting.
type Application struct {
	ID           uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	StudentID    uuid.UUID   `json:"student_id" db:"student_id" gorm:"type:uuid;not null;index"`
	Student      *Student    `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	JobPostingID uuid.UUID   `json:"job_posting_id" db:"job_posting_id" gorm:"type:uuid;not null;index"`
	JobPosting   *JobPosting `json:"job_posting,omitempty" gorm:"foreignKey:JobPostingID;references:ID;constraint:OnDelete:CASCADE"`
	Status       string      `json:"status" db:"status" gorm:"type:text;not null;default:submitted"`
	CoverNote    string      `json:"cover_note" db:"cover_note" gorm:"type:text"`
	AppliedAt    time.Time   `json:"applied_at" db:"applied_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// ValidApplicationStatus reports whether status is one of the enumerated set.
func ValidApplicationStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
