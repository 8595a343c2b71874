package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByID returns a profile by its auth identity, or nil when absent.
func (r *ProfileRepo) FindByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsername returns a profile by username, or nil when absent.
func (r *ProfileRepo) FindByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAllIDs returns every profile id. Used by admin broadcast fan-out.
func (r *ProfileRepo) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Profile{}).Pluck("id", &ids).Error
	return ids, err
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update updates an existing profile in the database
func (r *ProfileRepo) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// LastUsernameChange returns the most recent username change for a user, or
// nil when the username was never changed.
func (r *ProfileRepo) LastUsernameChange(userID uuid.UUID) (*models.UsernameChange, error) {
	var change models.UsernameChange
	err := r.db.Where("user_id = ?", userID).Order("changed_at DESC").First(&change).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// RecordUsernameChange books a username change for rate limiting.
func (r *ProfileRepo) RecordUsernameChange(userID uuid.UUID, oldUsername, newUsername string) error {
	return r.db.Create(&models.UsernameChange{
		ID:          uuid.New(),
		UserID:      userID,
		OldUsername: oldUsername,
		NewUsername: newUsername,
		ChangedAt:   time.Now(),
	}).Error
}
