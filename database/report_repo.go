package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type ReportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db}
}

// FindByStatus lists reports in a given status, oldest first so the admin
// queue drains in order.
func (r *ReportRepo) FindByStatus(status string) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&reports).Error
	return reports, err
}

// FindByID returns a report by its ID, or nil when absent.
func (r *ReportRepo) FindByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Add inserts a new report into the database
func (r *ReportRepo) Add(report *models.Report) error {
	return r.db.Create(report).Error
}

// SetStatus moves a report to resolved or ignored.
func (r *ReportRepo) SetStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Report{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}
