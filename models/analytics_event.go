package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent records a dashboard action for the admin analytics view.
type AnalyticsEvent struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	EventType   string     `json:"event_type" db:"event_type" gorm:"type:text;not null;index"`
	EntityType  string     `json:"entity_type" db:"entity_type" gorm:"type:text"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty" db:"entity_id" gorm:"type:uuid"`
	OrganizerID *uuid.UUID `json:"organizer_id,omitempty" db:"organizer_id" gorm:"type:uuid"`
	Metadata    string     `json:"metadata" db:"metadata" gorm:"type:text"`
	OccurredAt  time.Time  `json:"occurred_at" db:"occurred_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
