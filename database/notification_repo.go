package database

import (
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db}
}

// FindRecent returns up to limit notification audit rows, newest first.
// Read failures degrade to an empty result.
func (r *NotificationRepo) FindRecent(limit int) []*models.Notification {
	var notifications []*models.Notification
	err := r.db.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return readSoft("find recent", "notifications", notifications, err)
}

// FindByRecipient returns the audit trail for one recipient address. Read
// failures degrade to an empty result.
func (r *NotificationRepo) FindByRecipient(recipient string) []*models.Notification {
	var notifications []*models.Notification
	err := r.db.Where("recipient = ?", recipient).
		Order("created_at DESC").Find(&notifications).Error
	return readSoft("find by recipient", "notifications", notifications, err)
}

// Add inserts a notification audit row.
func (r *NotificationRepo) Add(notification *models.Notification) error {
	return r.db.Create(notification).Error
}
