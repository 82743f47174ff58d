package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type OrganizerRepo struct {
	db *gorm.DB
}

func NewOrganizerRepo(db *gorm.DB) *OrganizerRepo {
	return &OrganizerRepo{db}
}

// FindRecent returns up to limit organizers, newest first. Read failures
// degrade to an empty result.
func (r *OrganizerRepo) FindRecent(limit int) []*models.Organizer {
	var organizers []*models.Organizer
	err := r.db.Order("created_at DESC").Limit(limit).Find(&organizers).Error
	return readSoft("find recent", "organizers", organizers, err)
}

// FindByID returns an organizer by its ID.
func (r *OrganizerRepo) FindByID(id uuid.UUID) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.db.First(&organizer, id).Error
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}

// FindByAuthSubject returns the organizer linked to an external auth
// identity. The access gate fails closed on any error here.
func (r *OrganizerRepo) FindByAuthSubject(subject string) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.db.Where("auth_subject = ?", subject).First(&organizer).Error
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}

// TouchLastLogin stamps the organizer's last login time.
func (r *OrganizerRepo) TouchLastLogin(id uuid.UUID) error {
	return r.db.Model(&models.Organizer{}).
		Where("id = ?", id).
		Update("last_login", time.Now().UTC()).Error
}

// Add inserts a new organizer into the database.
func (r *OrganizerRepo) Add(organizer *models.Organizer) error {
	return r.db.Create(organizer).Error
}

// Update updates an existing organizer in the database.
func (r *OrganizerRepo) Update(organizer *models.Organizer) error {
	return r.db.Save(organizer).Error
}

// Delete removes an organizer from the database by id.
func (r *OrganizerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Organizer{}, id).Error
}
