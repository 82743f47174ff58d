package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification channels and delivery statuses.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// Notification is the audit trail of every outbound send attempt, one row
// per recipient per dispatch.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Recipient string    `json:"recipient" db:"recipient" gorm:"type:text;not null;index"`
	Channel   string    `json:"channel" db:"channel" gorm:"type:text;not null;default:email"`
	Kind      string    `json:"kind" db:"kind" gorm:"type:text;not null"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null"`
	Error     *string   `json:"error,omitempty" db:"error" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
