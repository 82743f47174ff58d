package database

import (
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type JobPostingRepo struct {
	db *gorm.DB
}

func NewJobPostingRepo(db *gorm.DB) *JobPostingRepo {
	return &JobPostingRepo{db}
}

// FindRecent returns up to limit postings with their employer, newest first.
// Read failures degrade to an empty result.
func (r *JobPostingRepo) FindRecent(limit int) []*models.JobPosting {
	var postings []*models.JobPosting
	err := r.db.Preload("Employer").Order("created_at DESC").Limit(limit).Find(&postings).Error
	return readSoft("find recent", "job postings", postings, err)
}

// FindByStatus returns postings with the given status. Read failures
// degrade to an empty result.
func (r *JobPostingRepo) FindByStatus(status string) []*models.JobPosting {
	var postings []*models.JobPosting
	err := r.db.Preload("Employer").Where("status = ?", status).Find(&postings).Error
	return readSoft("find by status", "job postings", postings, err)
}

// FindByEmployer returns every posting belonging to one employer. Read
// failures degrade to an empty result.
func (r *JobPostingRepo) FindByEmployer(employerID uuid.UUID) []*models.JobPosting {
	var postings []*models.JobPosting
	err := r.db.Where("employer_id = ?", employerID).Order("created_at DESC").Find(&postings).Error
	return readSoft("find by employer", "job postings", postings, err)
}

// FindByID returns a posting by its ID with the owning employer.
func (r *JobPostingRepo) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := r.db.Preload("Employer").First(&posting, id).Error
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

// Add inserts a new posting into the database.
func (r *JobPostingRepo) Add(posting *models.JobPosting) error {
	return r.db.Create(posting).Error
}

// Update updates an existing posting in the database.
func (r *JobPostingRepo) Update(posting *models.JobPosting) error {
	return r.db.Save(posting).Error
}

// Delete removes a posting from the database by id.
func (r *JobPostingRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.JobPosting{}, id).Error
}
