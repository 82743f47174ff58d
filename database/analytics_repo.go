package database

import (
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type AnalyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db}
}

// FindRecent returns up to limit events, newest first. Read failures
// degrade to an empty result.
func (r *AnalyticsRepo) FindRecent(limit int) []*models.AnalyticsEvent {
	var events []*models.AnalyticsEvent
	err := r.db.Order("occurred_at DESC").Limit(limit).Find(&events).Error
	return readSoft("find recent", "analytics events", events, err)
}

// CountByType tallies events per event type. Read failures degrade to an
// empty map.
func (r *AnalyticsRepo) CountByType() map[string]int64 {
	var rows []struct {
		EventType string
		Total     int64
	}
	err := r.db.Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(*) AS total").
		Group("event_type").
		Scan(&rows).Error
	rows = readSoft("count by type", "analytics events", rows, err)

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Total
	}
	return counts
}

// Add inserts an analytics event.
func (r *AnalyticsRepo) Add(event *models.AnalyticsEvent) error {
	return r.db.Create(event).Error
}
