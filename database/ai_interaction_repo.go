package database

import (
	"github.com/talentbridge/command-center-backend/models"
	"gorm.io/gorm"
)

type AIInteractionRepo struct {
	db *gorm.DB
}

func NewAIInteractionRepo(db *gorm.DB) *AIInteractionRepo {
	return &AIInteractionRepo{db}
}

// FindRecent returns up to limit interactions, newest first. Read failures
// degrade to an empty result.
func (r *AIInteractionRepo) FindRecent(limit int) []*models.AIInteraction {
	var interactions []*models.AIInteraction
	err := r.db.Order("created_at DESC").Limit(limit).Find(&interactions).Error
	return readSoft("find recent", "ai interactions", interactions, err)
}

// FindByKind returns interactions of one kind. Read failures degrade to an
// empty result.
func (r *AIInteractionRepo) FindByKind(kind string) []*models.AIInteraction {
	var interactions []*models.AIInteraction
	err := r.db.Where("kind = ?", kind).
		Order("created_at DESC").Find(&interactions).Error
	return readSoft("find by kind", "ai interactions", interactions, err)
}

// Add inserts an interaction record.
func (r *AIInteractionRepo) Add(interaction *models.AIInteraction) error {
	return r.db.Create(interaction).Error
}
