package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/launchit-app/launchit/backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ListOptions narrows and orders the public launch directory.
type ListOptions struct {
	Category string
	Search   string
	Sort     string // "newest" (default) or "popular"
	Limit    int
	Offset   int
}

// FindLaunched returns launched projects for the public directory.
// Sponsored projects always sort ahead of organic ones.
func (r *ProjectRepo) FindLaunched(opts ListOptions) ([]*models.Project, error) {
	q := r.db.Model(&models.Project{}).Where("status = ?", models.StatusLaunched)

	if opts.Category != "" {
		q = q.Where("category_type = ?", opts.Category)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("name ILIKE ? OR tagline ILIKE ?", pattern, pattern)
	}

	switch opts.Sort {
	case "popular":
		q = q.Order("is_sponsored DESC").
			Order("(SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id) DESC").
			Order("created_at DESC")
	default:
		q = q.Order("is_sponsored DESC").Order("created_at DESC")
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var projects []*models.Project
	err := q.Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when absent.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by its slug, or nil when absent.
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByUser returns every project owned by a user, drafts included.
func (r *ProjectRepo) FindByUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&projects).Error
	return projects, err
}

// FindDraft looks up an existing draft by owner and name. Autosave uses it
// before the first insert so repeated saves never create duplicate rows.
func (r *ProjectRepo) FindDraft(userID uuid.UUID, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Where("user_id = ? AND name = ? AND status = ?", userID, name, models.StatusDraft).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists probes for a slug collision, optionally excluding the row being
// edited.
func (r *ProjectRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLaunchedSince counts a user's launched projects created at or after the
// cutoff. Backs the rolling 24h launch limit.
func (r *ProjectRepo) CountLaunchedSince(userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, models.StatusLaunched, since).
		Count(&count).Error
	return count, err
}

// FindLaunchedByNormalizedURL returns the launched project using the given
// normalized website URL, excluding the row being edited. Nil when none.
func (r *ProjectRepo) FindLaunchedByNormalizedURL(normalizedURL string, excludeID uuid.UUID) (*models.Project, error) {
	q := r.db.Where("normalized_url = ? AND status = ?", normalizedURL, models.StatusLaunched)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var project models.Project
	err := q.First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// SetSponsorship writes monetization fields. Only the billing webhook handler
// calls this.
func (r *ProjectRepo) SetSponsorship(id uuid.UUID, sponsored bool, tier, planType, subscriptionID string, ends *time.Time) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(map[string]any{
		"is_sponsored":      sponsored,
		"sponsored_tier":    tier,
		"plan_type":         planType,
		"subscription_id":   subscriptionID,
		"subscription_ends": ends,
	}).Error
}

// StampRelaunch records an approved relaunch on the live project.
func (r *ProjectRepo) StampRelaunch(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).
		Update("last_relaunch_date", at).Error
}
