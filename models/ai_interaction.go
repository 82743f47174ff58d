package models

import (
	"time"

	"github.com/google/uuid"
)

// AIInteraction kinds.
const (
	AIKindJobEnhancement    = "job_enhancement"
	AIKindStudentValidation = "student_validation"
	AIKindEmbedding         = "embedding"
)

// AIInteraction records a single call to the language model, for the admin
// AI view and for cost auditing.
type AIInteraction struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Kind      string     `json:"kind" db:"kind" gorm:"type:text;not null;index"`
	EntityID  *uuid.UUID `json:"entity_id,omitempty" db:"entity_id" gorm:"type:uuid"`
	Model     string     `json:"model" db:"model" gorm:"type:text;not null"`
	Prompt    string     `json:"prompt" db:"prompt" gorm:"type:text"`
	Response  string     `json:"response" db:"response" gorm:"type:text"`
	LatencyMS int64      `json:"latency_ms" db:"latency_ms" gorm:"type:bigint;not null;default:0"`
	Succeeded bool       `json:"succeeded" db:"succeeded" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
