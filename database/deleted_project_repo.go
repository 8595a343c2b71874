package database

import (
	"errors"

	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type DeletedProjectRepo struct {
	db *gorm.DB
}

func NewDeletedProjectRepo(db *gorm.DB) *DeletedProjectRepo {
	return &DeletedProjectRepo{db}
}

// Add records a deletion and its relaunch-eligibility timestamp.
func (r *DeletedProjectRepo) Add(record *models.DeletedProject) error {
	return r.db.Create(record).Error
}

// FindByNormalizedURL returns the most recent cooldown record for a URL, or
// nil when the URL was never deleted.
func (r *DeletedProjectRepo) FindByNormalizedURL(normalizedURL string) (*models.DeletedProject, error) {
	var record models.DeletedProject
	err := r.db.Where("normalized_url = ?", normalizedURL).
		Order("deleted_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
