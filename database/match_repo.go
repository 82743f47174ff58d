package database

import (
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type MatchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db}
}

// FindRecent returns up to limit matches with their linked records, newest
// first. Read failures degrade to an empty result.
func (r *MatchRepo) FindRecent(limit int) []*models.Match {
	var matches []*models.Match
	err := r.db.Preload("Student").Preload("Employer").Preload("JobPosting").
		Order("created_at DESC").Limit(limit).Find(&matches).Error
	return readSoft("find recent", "matches", matches, err)
}

// FindByStatus returns matches with the given status. Read failures degrade
// to an empty result.
func (r *MatchRepo) FindByStatus(status string) []*models.Match {
	var matches []*models.Match
	err := r.db.Preload("Student").Preload("Employer").
		Where("status = ?", status).Find(&matches).Error
	return readSoft("find by status", "matches", matches, err)
}

// FindByStudent returns every match for one student. Read failures degrade
// to an empty result.
func (r *MatchRepo) FindByStudent(studentID uuid.UUID) []*models.Match {
	var matches []*models.Match
	err := r.db.Preload("Employer").Preload("JobPosting").
		Where("student_id = ?", studentID).Order("match_score DESC").Find(&matches).Error
	return readSoft("find by student", "matches", matches, err)
}

// FindByID returns a match by its ID with all linked records.
func (r *MatchRepo) FindByID(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.Preload("Student").Preload("Employer").Preload("JobPosting").
		First(&match, id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Add inserts a new match into the database.
func (r *MatchRepo) Add(match *models.Match) error {
	return r.db.Create(match).Error
}

// Update updates an existing match in the database.
func (r *MatchRepo) Update(match *models.Match) error {
	return r.db.Save(match).Error
}

// Delete removes a match from the database by id.
func (r *MatchRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Match{}, id).Error
}
