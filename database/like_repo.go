package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Add inserts an upvote. The unique index on (project_id, user_id) rejects
// double votes.
func (r *LikeRepo) Add(like *models.Like) error {
	return r.db.Create(like).Error
}

// Remove deletes a user's upvote on a project.
func (r *LikeRepo) Remove(projectID, userID uuid.UUID) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.Like{}).Error
}

// Exists reports whether a user already upvoted a project.
func (r *LikeRepo) Exists(projectID, userID uuid.UUID) (bool, error) {
	var like models.Like
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByProject returns the upvote count for a project.
func (r *LikeRepo) CountByProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
