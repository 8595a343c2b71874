package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

const (
	// LaunchWindow is the rolling window for the one-launch-per-user limit.
	LaunchWindow = 24 * time.Hour

	// LaunchesPerWindow is how many launches a user gets inside the window.
	LaunchesPerWindow = 1

	// DeletionCooldown is how long a deleted launch's URL stays blocked.
	DeletionCooldown = 7 * 24 * time.Hour
)

// Submitter owns the project lifecycle: launching drafts, updating launches,
// deleting projects (with URL cooldown) and queuing relaunch requests.
type Submitter struct {
	projects ProjectStore
	deleted  DeletedProjectStore
	likes    LikeStore
	profiles ProfileStore
	relaunch RelaunchStore
	slugs    *SlugGenerator
	media    *MediaUploader
	notifier *Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSubmitter(
	projects ProjectStore,
	deleted DeletedProjectStore,
	likes LikeStore,
	profiles ProfileStore,
	relaunch RelaunchStore,
	slugs *SlugGenerator,
	media *MediaUploader,
	notifier *Notifier,
) *Submitter {
	return &Submitter{
		projects: projects,
		deleted:  deleted,
		likes:    likes,
		profiles: profiles,
		relaunch: relaunch,
		slugs:    slugs,
		media:    media,
		notifier: notifier,
		logger:   log.With().Str("service", "submitter").Logger(),
		now:      time.Now,
	}
}

// Submit transitions a draft (or fresh form) to a launched project, or
// updates an already-launched project in place. Precondition order matters:
// required fields, then (new launches only) profile completeness, the rolling
// launch limit, the duplicate-URL rule and the deletion cooldown. Each
// failure is a typed hard stop.
func (s *Submitter) Submit(ctx context.Context, userID uuid.UUID, form *ProjectForm) (*models.Project, error) {
	if err := validateRequired(form); err != nil {
		return nil, err
	}

	var existing *models.Project
	if form.ProjectID != uuid.Nil {
		var err error
		existing, err = s.projects.FindByID(form.ProjectID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "project", err)
		}
		if existing == nil {
			return nil, errs.NewNotFoundError("project not found")
		}
		if existing.UserID != userID {
			return nil, errs.NewForbiddenError("you do not own this project")
		}
	}

	newLaunch := existing == nil || !existing.IsLaunched()
	excludeID := uuid.Nil
	if existing != nil {
		excludeID = existing.ID
	}

	if newLaunch {
		profile, err := s.profiles.FindByID(userID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "profile", err)
		}
		if profile == nil || !profile.IsComplete() {
			return nil, errs.NewProfileIncompleteError()
		}

		count, err := s.projects.CountLaunchedSince(userID, s.now().Add(-LaunchWindow))
		if err != nil {
			return nil, errs.NewDatabaseError("count", "launches", err)
		}
		if count >= LaunchesPerWindow {
			return nil, errs.NewLaunchLimitError(LaunchWindow)
		}
	}

	normalized := NormalizeURL(form.WebsiteURL)
	duplicate, err := s.projects.FindLaunchedByNormalizedURL(normalized, excludeID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if duplicate != nil {
		return nil, errs.NewDuplicateURLError(normalized)
	}

	if newLaunch {
		cooldown, err := s.deleted.FindByNormalizedURL(normalized)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "deleted project", err)
		}
		if cooldown != nil && cooldown.RelaunchEligAt.After(s.now()) {
			return nil, errs.NewDeletionCooldownError(cooldown.RelaunchEligAt)
		}
	}

	logoURL, thumbURL, coverURLs, err := s.media.PersistForm(ctx, form)
	if err != nil {
		return nil, errs.NewUploadError("project", err)
	}

	project := existing
	if project == nil {
		project = &models.Project{UserID: userID}
	}
	applyForm(project, form, logoURL, thumbURL, coverURLs)
	project.Status = models.StatusLaunched

	// Monetization fields never come from the form; applyForm cannot touch
	// them and existing values survive updates untouched.

	if err := upsertWithUniqueSlug(s.projects, s.slugs, s.logger, project); err != nil {
		return nil, errs.NewDatabaseError("save", "project", err)
	}

	if newLaunch {
		s.selfLike(project)
	}
	return project, nil
}

// Delete removes a project. Launched projects leave behind a cooldown record
// so the same URL cannot be relaunched immediately.
func (s *Submitter) Delete(userID uuid.UUID, projectID uuid.UUID, isAdmin bool) error {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return errs.NewNotFoundError("project not found")
	}
	if project.UserID != userID && !isAdmin {
		return errs.NewForbiddenError("you do not own this project")
	}

	if project.IsLaunched() {
		now := s.now()
		record := &models.DeletedProject{
			ID:             uuid.New(),
			UserID:         project.UserID,
			ProjectName:    project.Name,
			NormalizedURL:  project.NormalizedURL,
			DeletedAt:      now,
			RelaunchEligAt: now.Add(DeletionCooldown),
		}
		if err := s.deleted.Add(record); err != nil {
			return errs.NewDatabaseError("create", "deleted project", err)
		}
	}

	if err := s.projects.Delete(project.ID); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	return nil
}

// RequestRelaunch queues a moderation row instead of touching the live
// project; admins approve or reject it later.
func (s *Submitter) RequestRelaunch(userID uuid.UUID, projectID uuid.UUID, note string) (*models.RelaunchRequest, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	if project.UserID != userID {
		return nil, errs.NewForbiddenError("you do not own this project")
	}
	if !project.IsLaunched() {
		return nil, errs.NewInvalidFieldError("project_id", "only launched projects can request a relaunch")
	}

	pending, err := s.relaunch.HasPending(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "relaunch request", err)
	}
	if pending {
		return nil, errs.NewConflictError("a relaunch request for this project is already pending")
	}

	request := &models.RelaunchRequest{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Note:      note,
		Status:    models.RelaunchPendingReview,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.relaunch.Add(request); err != nil {
		return nil, errs.NewDatabaseError("create", "relaunch request", err)
	}
	return request, nil
}

// selfLike inserts the owner's automatic upvote. Best effort only.
func (s *Submitter) selfLike(project *models.Project) {
	err := s.likes.Add(&models.Like{
		ID:        uuid.New(),
		ProjectID: project.ID,
		UserID:    project.UserID,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("projectID", project.ID.String()).Msg("self-like insert failed")
	}
}

func validateRequired(form *ProjectForm) error {
	switch {
	case form.Name == "":
		return errs.NewMissingRequiredFieldError("name")
	case form.WebsiteURL == "":
		return errs.NewMissingRequiredFieldError("website_url")
	case form.Description == "":
		return errs.NewMissingRequiredFieldError("description")
	case form.Tagline == "":
		return errs.NewMissingRequiredFieldError("tagline")
	case form.Category == "":
		return errs.NewMissingRequiredFieldError("category")
	}
	return nil
}

// applyForm copies user-editable fields onto a project row. Monetization and
// lifecycle fields are deliberately out of reach.
func applyForm(project *models.Project, form *ProjectForm, logoURL, thumbURL string, coverURLs []string) {
	project.Name = form.Name
	project.Tagline = form.Tagline
	project.Description = form.Description
	project.WebsiteURL = form.WebsiteURL
	project.NormalizedURL = NormalizeURL(form.WebsiteURL)
	project.CategoryType = form.Category
	project.Tags = datatypes.NewJSONSlice(form.Tags)
	project.BuiltWith = datatypes.NewJSONSlice(form.BuiltWith)
	project.Links = datatypes.NewJSONSlice(form.Links)

	if logoURL != "" {
		project.LogoURL = logoURL
	}
	if thumbURL != "" {
		project.ThumbnailURL = thumbURL
	}
	urls := make([]string, 0, len(coverURLs))
	for _, u := range coverURLs {
		if u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		project.CoverURLs = datatypes.NewJSONSlice(urls)
	}
}
