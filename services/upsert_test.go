package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

var errSlugTaken = errors.New(`duplicate key value violates unique constraint "idx_projects_slug"`)

func TestUpsertInsertsNewRowWithSlug(t *testing.T) {
	store := newFakeProjectStore()
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme", Status: models.StatusDraft}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if project.ID == uuid.Nil {
		t.Error("upsert left ID unset")
	}
	if project.Slug != "acme" {
		t.Errorf("slug = %q, want %q", project.Slug, "acme")
	}
}

func TestUpsertUpdatesExistingRow(t *testing.T) {
	store := newFakeProjectStore()
	slugs := NewSlugGenerator(store)

	id := uuid.New()
	store.seed(&models.Project{ID: id, Slug: "acme", Name: "Acme"})

	project := &models.Project{ID: id, Slug: "acme", Name: "Acme", Tagline: "new"}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if store.addCalls != 0 {
		t.Errorf("update path inserted %d rows", store.addCalls)
	}
	if store.rows[id].Tagline != "new" {
		t.Errorf("tagline = %q, want %q", store.rows[id].Tagline, "new")
	}
}

func TestUpsertRetriesOnSlugConflict(t *testing.T) {
	store := newFakeProjectStore()
	// A concurrent insert grabbed the slug between the probe and our insert.
	store.seed(&models.Project{ID: uuid.New(), Slug: "acme"})
	store.addErrs = []error{errSlugTaken, nil}
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme", Slug: "acme"}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if project.Slug != "acme-2" {
		t.Errorf("slug = %q, want regenerated %q", project.Slug, "acme-2")
	}
	if store.addCalls != 2 {
		t.Errorf("addCalls = %d, want 2", store.addCalls)
	}
}

func TestUpsertStopsOnUnrelatedError(t *testing.T) {
	store := newFakeProjectStore()
	boom := errors.New("connection refused")
	store.addErrs = []error{boom}
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme"}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if store.addCalls != 1 {
		t.Errorf("addCalls = %d, want 1 (no retries on unrelated errors)", store.addCalls)
	}
}

func TestUpsertDoesNotRetryNormalizedURLConflict(t *testing.T) {
	store := newFakeProjectStore()
	// The launched-rows unique index on normalized_url also reports as a
	// duplicate key; regenerating the slug would never resolve it.
	urlTaken := errors.New(`duplicate key value violates unique constraint "idx_projects_normalized_url_launched"`)
	store.addErrs = []error{urlTaken}
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme", Status: models.StatusLaunched}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); !errors.Is(err, urlTaken) {
		t.Fatalf("err = %v, want %v", err, urlTaken)
	}
	if store.addCalls != 1 {
		t.Errorf("addCalls = %d, want 1 (URL conflicts are not slug conflicts)", store.addCalls)
	}
}

func TestUpsertRandomizesSlugAsLastResort(t *testing.T) {
	store := newFakeProjectStore()
	store.addErrs = []error{errSlugTaken, errSlugTaken, errSlugTaken, errSlugTaken, nil}
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme"}
	if err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if project.Slug == "acme" || len(project.Slug) <= len("acme-") {
		t.Errorf("slug = %q, want random suffix after exhausted retries", project.Slug)
	}
}

func TestUpsertReportsSlugExhaustion(t *testing.T) {
	store := newFakeProjectStore()
	store.addErrs = []error{errSlugTaken, errSlugTaken, errSlugTaken, errSlugTaken, errSlugTaken}
	slugs := NewSlugGenerator(store)

	project := &models.Project{UserID: uuid.New(), Name: "Acme"}
	err := upsertWithUniqueSlug(store, slugs, zerolog.Nop(), project)
	if !errs.IsSlugExhausted(err) {
		t.Fatalf("err = %v, want slug exhaustion", err)
	}
}
