package database

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{db}
}

// FindRecent returns up to limit students, newest first. Read failures
// degrade to an empty result.
func (r *StudentRepo) FindRecent(limit int) []*models.Student {
	var students []*models.Student
	err := r.db.Order("created_at DESC").Limit(limit).Find(&students).Error
	return readSoft("find recent", "students", students, err)
}

// FindByStatus returns students with the given status. Read failures
// degrade to an empty result.
func (r *StudentRepo) FindByStatus(status string) []*models.Student {
	var students []*models.Student
	err := r.db.Where("status = ?", status).Find(&students).Error
	return readSoft("find by status", "students", students, err)
}

// FindByID returns a student by its ID.
func (r *StudentRepo) FindByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail returns a student by email.
func (r *StudentRepo) FindByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Add inserts a new student into the database.
func (r *StudentRepo) Add(student *models.Student) error {
	return r.db.Create(student).Error
}

// Update updates an existing student in the database.
func (r *StudentRepo) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

// Delete removes a student from the database by id.
func (r *StudentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Student{}, id).Error
}

// UpdateEmbedding stores a profile embedding without touching other columns.
func (r *StudentRepo) UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error {
	return r.db.Model(&models.Student{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

// StudentNeighbor is a student row with its cosine distance to a query
// embedding.
type StudentNeighbor struct {
	models.Student
	Distance float64 `json:"distance" gorm:"column:distance"`
}

// FindNearest returns up to limit approved students with stored embeddings,
// ordered by cosine distance to the query embedding. Used by match
// suggestion; errors propagate to the caller.
func (r *StudentRepo) FindNearest(embedding pgvector.Vector, limit int) ([]StudentNeighbor, error) {
	var neighbors []StudentNeighbor
	err := r.db.Model(&models.Student{}).
		Select("students.*, (embedding <=> ?) AS distance", embedding).
		Where("embedding IS NOT NULL").
		Where("status = ?", models.StudentStatusApproved).
		Order(clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{embedding}}).
		Limit(limit).
		Scan(&neighbors).Error
	if err != nil {
		return nil, err
	}
	return neighbors, nil
}
