package database

import (
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type EmployerRepo struct {
	db *gorm.DB
}

func NewEmployerRepo(db *gorm.DB) *EmployerRepo {
	return &EmployerRepo{db}
}

// FindRecent returns up to limit employers, newest first. Read failures
// degrade to an empty result.
func (r *EmployerRepo) FindRecent(limit int) []*models.Employer {
	var employers []*models.Employer
	err := r.db.Order("created_at DESC").Limit(limit).Find(&employers).Error
	return readSoft("find recent", "employers", employers, err)
}

// FindByStatus returns employers with the given status. Read failures
// degrade to an empty result.
func (r *EmployerRepo) FindByStatus(status string) []*models.Employer {
	var employers []*models.Employer
	err := r.db.Where("status = ?", status).Find(&employers).Error
	return readSoft("find by status", "employers", employers, err)
}

// FindByID returns an employer by its ID.
func (r *EmployerRepo) FindByID(id uuid.UUID) (*models.Employer, error) {
	var employer models.Employer
	err := r.db.First(&employer, id).Error
	if err != nil {
		return nil, err
	}
	return &employer, nil
}

// Add inserts a new employer into the database.
func (r *EmployerRepo) Add(employer *models.Employer) error {
	return r.db.Create(employer).Error
}

// Update updates an existing employer in the database.
func (r *EmployerRepo) Update(employer *models.Employer) error {
	return r.db.Save(employer).Error
}

// Delete removes an employer from the database by id.
func (r *EmployerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Employer{}, id).Error
}
