package database

import (
	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db}
}

// FindByUser returns a user's notifications, newest first.
func (r *NotificationRepo) FindByUser(userID uuid.UUID, limit int) ([]*models.Notification, error) {
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var notifications []*models.Notification
	err := q.Find(&notifications).Error
	return notifications, err
}

// CountUnread returns the unread badge count for a user.
func (r *NotificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error
	return count, err
}

// Add inserts a new notification into the database
func (r *NotificationRepo) Add(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// AddBatch inserts many notifications in one statement. Used by broadcasts.
func (r *NotificationRepo) AddBatch(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(notifications, 500).Error
}

// MarkRead marks a single notification read, scoped to its owner.
func (r *NotificationRepo) MarkRead(id, userID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

// MarkAllRead marks every notification of a user read.
func (r *NotificationRepo) MarkAllRead(userID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}
