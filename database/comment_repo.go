package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByProject returns all comments for a project, oldest first. Threading
// (one level deep) is reconstructed by the caller from ParentID.
func (r *CommentRepo) FindByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// FindByID returns a comment by its ID, or nil when absent.
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CountReplies counts direct replies of a comment.
func (r *CommentRepo) CountReplies(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// SoftDelete blanks a comment's content and marks it deleted while keeping
// the row, preserving any thread hanging off it.
func (r *CommentRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Updates(map[string]any{
		"content": "",
		"deleted": true,
	}).Error
}

// Delete removes a comment row entirely.
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
