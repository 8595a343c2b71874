package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/models"
)

// autosaveBackoff holds the fixed delays between retry attempts.
var autosaveBackoff = []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}

// Autosaver persists a form as a draft row without ever surfacing an error
// to the caller. One Autosaver exists per form instance (per user editing
// session); the mutex-backed in-flight flag makes overlapping triggers for
// the same instance a no-op instead of a race.
type Autosaver struct {
	projects ProjectStore
	slugs    *SlugGenerator
	media    *MediaUploader
	logger   zerolog.Logger

	// sleep is swapped out in tests to skip real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	saving  bool
	draftID uuid.UUID
}

func NewAutosaver(projects ProjectStore, slugs *SlugGenerator, media *MediaUploader) *Autosaver {
	return &Autosaver{
		projects: projects,
		slugs:    slugs,
		media:    media,
		logger:   log.With().Str("service", "autosaver").Logger(),
		sleep:    sleepCtx,
	}
}

// DraftID returns the draft row this autosaver writes to, or uuid.Nil before
// the first successful save.
func (a *Autosaver) DraftID() uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draftID
}

// Save persists the current form state as a draft. It returns the saved row,
// or nil when the save was skipped or ultimately failed; it never returns an
// error. Skipped: empty form, a launched project being edited, or another
// save already in flight.
func (a *Autosaver) Save(ctx context.Context, userID uuid.UUID, form *ProjectForm) *models.Project {
	if form.IsEmpty() {
		return nil
	}

	a.mu.Lock()
	if a.saving {
		a.mu.Unlock()
		return nil
	}
	a.saving = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.saving = false
		a.mu.Unlock()
	}()

	// Autosave never touches launched projects; edits to those go through
	// the explicit submit path.
	if form.ProjectID != uuid.Nil {
		existing, err := a.projects.FindByID(form.ProjectID)
		if err != nil {
			a.logger.Warn().Err(err).Msg("autosave target lookup failed")
			return nil
		}
		if existing == nil || existing.IsLaunched() || existing.UserID != userID {
			return nil
		}
	}

	var saved *models.Project
	for attempt := 0; ; attempt++ {
		project, err := a.saveOnce(ctx, userID, form)
		if err == nil {
			saved = project
			break
		}
		if attempt >= len(autosaveBackoff) {
			a.logger.Warn().Err(err).Int("attempts", attempt+1).Msg("autosave failed, giving up silently")
			return nil
		}
		a.logger.Debug().Err(err).Int("attempt", attempt+1).Msg("autosave attempt failed, retrying")
		if a.sleep(ctx, autosaveBackoff[attempt]) != nil {
			return nil
		}
	}

	a.mu.Lock()
	a.draftID = saved.ID
	a.mu.Unlock()
	return saved
}

// saveOnce runs one full save: media upload, draft resolution, then the
// shared slug-safe upsert. Retries re-run all of it rather than resuming
// partial work.
func (a *Autosaver) saveOnce(ctx context.Context, userID uuid.UUID, form *ProjectForm) (*models.Project, error) {
	logoURL, thumbURL, coverURLs, err := a.media.PersistForm(ctx, form)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	draftID := a.draftID
	a.mu.Unlock()

	if draftID == uuid.Nil && form.ProjectID != uuid.Nil {
		draftID = form.ProjectID
	}

	var project *models.Project
	if draftID != uuid.Nil {
		project, err = a.projects.FindByID(draftID)
		if err != nil {
			return nil, err
		}
	}
	if project == nil && form.Name != "" {
		// First save for this form: adopt an existing draft with the same
		// name instead of inserting a duplicate row.
		project, err = a.projects.FindDraft(userID, form.Name)
		if err != nil {
			return nil, err
		}
	}
	if project == nil {
		project = &models.Project{UserID: userID, Status: models.StatusDraft}
	}

	applyForm(project, form, logoURL, thumbURL, coverURLs)

	if err := upsertWithUniqueSlug(a.projects, a.slugs, a.logger, project); err != nil {
		return nil, err
	}
	return project, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
