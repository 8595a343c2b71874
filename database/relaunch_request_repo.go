package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type RelaunchRequestRepo struct {
	db *gorm.DB
}

func NewRelaunchRequestRepo(db *gorm.DB) *RelaunchRequestRepo {
	return &RelaunchRequestRepo{db}
}

// Add queues a relaunch request for admin review.
func (r *RelaunchRequestRepo) Add(request *models.RelaunchRequest) error {
	return r.db.Create(request).Error
}

// FindByID returns a relaunch request by its ID, or nil when absent.
func (r *RelaunchRequestRepo) FindByID(id uuid.UUID) (*models.RelaunchRequest, error) {
	var request models.RelaunchRequest
	err := r.db.First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPending lists requests awaiting review, oldest first.
func (r *RelaunchRequestRepo) FindPending() ([]*models.RelaunchRequest, error) {
	var requests []*models.RelaunchRequest
	err := r.db.Where("status = ?", models.RelaunchPendingReview).
		Order("created_at ASC").Find(&requests).Error
	return requests, err
}

// HasPending reports whether a project already has a queued request.
func (r *RelaunchRequestRepo) HasPending(projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.RelaunchRequest{}).
		Where("project_id = ? AND status = ?", projectID, models.RelaunchPendingReview).
		Count(&count).Error
	return count > 0, err
}

// Review stamps the reviewer's decision on a request.
func (r *RelaunchRequestRepo) Review(id, reviewerID uuid.UUID, status string) error {
	now := time.Now()
	return r.db.Model(&models.RelaunchRequest{}).Where("id = ?", id).Updates(map[string]any{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
		"updated_at":  now,
	}).Error
}
