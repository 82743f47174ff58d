package models

import (
	"time"

	"github.com/google/uuid"
)

// Match lifecycle statuses.
const (
	MatchStatusSuggested     = "suggested"
	MatchStatusViewed        = "viewed"
	MatchStatusInterested    = "interested"
	MatchStatusNotInterested = "not_interested"
	MatchStatusMatched       = "matched"
)

// MatchStatuses enumerates every valid match status.
var MatchStatuses = []string{
	MatchStatusSuggested,
	MatchStatusViewed,
	MatchStatusInterested,
	MatchStatusNotInterested,
	MatchStatusMatched,
}

// Match links a student to an employer, optionally through a specific job
// posting. MatchScore is on a 0-100 scale; the score is clamped where it is
// produced, not in the schema.
type Match struct {
	ID           uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	StudentID    uuid.UUID   `json:"student_id" db:"student_id" gorm:"type:uuid;not null;index"`
	Student      *Student    `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	EmployerID   uuid.UUID   `json:"employer_id" db:"employer_id" gorm:"type:uuid;not null;index"`
	Employer     *Employer   `json:"employer,omitempty" gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE"`
	JobPostingID *uuid.UUID  `json:"job_posting_id,omitempty" db:"job_posting_id" gorm:"type:uuid;index"`
	JobPosting   *JobPosting `json:"job_posting,omitempty" gorm:"foreignKey:JobPostingID;references:ID"`
	MatchScore   float64     `json:"match_score" db:"match_score" gorm:"type:numeric;not null;default:0"`
	Status       string      `json:"status" db:"status" gorm:"type:text;not null;default:suggested"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// ValidMatchStatus reports whether status is one of the enumerated set.
func ValidMatchStatus(status string) bool {
	for _, s := range MatchStatuses {
		if s == status {
			return true
		}
	}
	return false
}
