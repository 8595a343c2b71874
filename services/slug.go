package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	slugMaxLength   = 100
	slugMaxAttempts = 1000
	slugFallback    = "project"
)

var nonSlugRunes = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a project name: lowercase,
// non-word runes collapsed to single hyphens, trimmed, capped at 100 chars.
// An empty result falls back to the literal "project".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugRunes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > slugMaxLength {
		slug = strings.Trim(slug[:slugMaxLength], "-")
	}
	if slug == "" {
		return slugFallback
	}
	return slug
}

// SlugStore is the slice of the project store slug generation needs.
type SlugStore interface {
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
}

// SlugGenerator produces store-unique slugs. Collisions get numeric suffixes
// (-2, -3, ...); after slugMaxAttempts probes, or on any store error, it
// falls back to a timestamp suffix instead of failing the save.
type SlugGenerator struct {
	store  SlugStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewSlugGenerator(store SlugStore) *SlugGenerator {
	return &SlugGenerator{
		store:  store,
		logger: log.With().Str("service", "slugGenerator").Logger(),
		now:    time.Now,
	}
}

// Unique returns a slug for name that no other row uses. excludeID skips the
// record being edited so re-saving keeps its own slug.
func (g *SlugGenerator) Unique(name string, excludeID uuid.UUID) string {
	base := Slugify(name)

	candidate := base
	for attempt := 2; attempt <= slugMaxAttempts+1; attempt++ {
		taken, err := g.store.SlugExists(candidate, excludeID)
		if err != nil {
			g.logger.Warn().Err(err).Str("slug", candidate).Msg("slug probe failed, using timestamp fallback")
			return g.timestamped(base)
		}
		if !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	g.logger.Warn().Str("base", base).Msg("slug attempts exhausted, using timestamp fallback")
	return g.timestamped(base)
}

// Randomized returns a slug with a random suffix. Used as a last resort when
// inserts keep hitting the slug unique constraint.
func (g *SlugGenerator) Randomized(name string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%s", Slugify(name), suffix)
}

func (g *SlugGenerator) timestamped(base string) string {
	return fmt.Sprintf("%s-%d", base, g.now().UnixMilli())
}
