package database

import (
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// FindRecent returns up to limit applications with their student and
// posting, newest first. Read failures degrade to an empty result.
func (r *ApplicationRepo) FindRecent(limit int) []*models.Application {
	var applications []*models.Application
	err := r.db.Preload("Student").Preload("JobPosting").
		Order("created_at DESC").Limit(limit).Find(&applications).Error
	return readSoft("find recent", "applications", applications, err)
}

// FindByStatus returns applications with the given status. Read failures
// degrade to an empty result.
func (r *ApplicationRepo) FindByStatus(status string) []*models.Application {
	var applications []*models.Application
	err := r.db.Preload("Student").Preload("JobPosting").
		Where("status = ?", status).Find(&applications).Error
	return readSoft("find by status", "applications", applications, err)
}

// FindByID returns an application by its ID.
func (r *ApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.db.Preload("Student").Preload("JobPosting").First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Add inserts a new application into the database.
func (r *ApplicationRepo) Add(application *models.Application) error {
	return r.db.Create(application).Error
}

// Update updates an existing application in the database.
func (r *ApplicationRepo) Update(application *models.Application) error {
	return r.db.Save(application).Error
}

// Delete removes an application from the database by id.
func (r *ApplicationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Application{}, id).Error
}
