package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobPosting lifecycle statuses.
const (
	JobStatusDraft         = "draft"
	JobStatusPendingReview = "pending_review"
	JobStatusApproved      = "approved"
	JobStatusRejected      = "rejected"
	JobStatusPublished     = "published"
	JobStatusClosed        = "closed"
)

// Employment types offered on a posting.
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentInternship = "internship"
	EmploymentContract   = "contract"
)

// JobPostingStatuses enumerates every valid job posting status.
var JobPostingStatuses = []string{
	JobStatusDraft,
	JobStatusPendingReview,
	JobStatusApproved,
	JobStatusRejected,
	JobStatusPublished,
	JobStatusClosed,
}

// JobPosting represents a role posted by an employer. Every posting belongs
// to exactly one employer.
type JobPosting struct {
	ID                  uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	EmployerID          uuid.UUID      `json:"employer_id" db:"employer_id" gorm:"type:uuid;not null;index"`
	Employer            *Employer      `json:"employer,omitempty" gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE"`
	Title               string         `json:"title" db:"title" gorm:"type:text;not null"`
	Description         string         `json:"description" db:"description" gorm:"type:text;not null"`
	Requirements        pq.StringArray `json:"requirements" db:"requirements" gorm:"type:text[]"`
	Skills              pq.StringArray `json:"skills" db:"skills" gorm:"type:text[]"`
	EmploymentType      string         `json:"employment_type" db:"employment_type" gorm:"type:text;not null;default:full_time"`
	Location            string         `json:"location" db:"location" gorm:"type:text"`
	Remote              bool           `json:"remote" db:"remote" gorm:"not null;default:false"`
	SalaryMin           *int           `json:"salary_min,omitempty" db:"salary_min" gorm:"type:integer"`
	SalaryMax           *int           `json:"salary_max,omitempty" db:"salary_max" gorm:"type:integer"`
	SalaryCurrency      *string        `json:"salary_currency,omitempty" db:"salary_currency" gorm:"type:text"`
	Status              string         `json:"status" db:"status" gorm:"type:text;not null;default:draft"`
	EnhancedTitle       *string        `json:"enhanced_title,omitempty" db:"enhanced_title" gorm:"type:text"`
	EnhancedDescription *string        `json:"enhanced_description,omitempty" db:"enhanced_description" gorm:"type:text"`
	EnhancementScore    *float64       `json:"enhancement_score,omitempty" db:"enhancement_score" gorm:"type:numeric"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// ValidJobPostingStatus reports whether status is one of the enumerated set.
func ValidJobPostingStatus(status string) bool {
	for _, s := range JobPostingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
