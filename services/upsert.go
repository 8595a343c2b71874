package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

// Extra insert attempts after the first slug collision before giving up on
// deterministic suffixes.
const slugInsertRetries = 3

// upsertWithUniqueSlug is the single write path shared by autosave and final
// submission. New rows get a unique slug and are inserted, retrying with a
// regenerated slug when the insert trips the slug unique constraint; after
// slugInsertRetries the slug gets a random suffix for one last attempt.
// Existing rows are updated in place and keep their slug.
func upsertWithUniqueSlug(store ProjectStore, slugs *SlugGenerator, logger zerolog.Logger, project *models.Project) error {
	if project.ID != uuid.Nil {
		return store.Update(project)
	}

	project.ID = uuid.New()
	if project.Slug == "" {
		project.Slug = slugs.Unique(project.Name, project.ID)
	}

	var err error
	for attempt := 0; attempt <= slugInsertRetries; attempt++ {
		if attempt > 0 {
			project.Slug = slugs.Unique(project.Name, project.ID)
		}
		err = store.Add(project)
		if err == nil {
			return nil
		}
		if !isSlugConflict(err) {
			return err
		}
		logger.Warn().Err(err).Str("slug", project.Slug).Int("attempt", attempt).Msg("slug collision on insert")
	}

	project.Slug = slugs.Randomized(project.Name)
	if err = store.Add(project); err != nil {
		return errors.Join(errs.ErrSlugExhausted, err)
	}
	return nil
}

// isSlugConflict recognizes a slug unique-constraint violation from the
// driver without depending on exact message text more than necessary.
func isSlugConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if errors.Is(err, errs.ErrUniqueConstraintViolation) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, "slug")
}
