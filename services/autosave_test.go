package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/launchit-app/launchit/backend/models"
)

func newTestAutosaver(projects *fakeProjectStore) *Autosaver {
	a := NewAutosaver(projects, NewSlugGenerator(projects), NewMediaUploader(newFakeObjectStore()))
	a.sleep = noopSleep
	return a
}

func TestAutosaveSkipsEmptyForm(t *testing.T) {
	projects := newFakeProjectStore()
	a := newTestAutosaver(projects)

	if saved := a.Save(context.Background(), uuid.New(), &ProjectForm{}); saved != nil {
		t.Fatalf("Save returned %v for an empty form", saved)
	}
	if projects.addCalls != 0 || projects.findCalls != 0 {
		t.Errorf("empty form touched the store: %d adds, %d finds", projects.addCalls, projects.findCalls)
	}
}

func TestAutosaveSkipsLaunchedProject(t *testing.T) {
	projects := newFakeProjectStore()
	userID := uuid.New()
	projectID := uuid.New()
	projects.seed(&models.Project{ID: projectID, UserID: userID, Status: models.StatusLaunched})

	a := newTestAutosaver(projects)

	form := launchForm("Acme", "https://acme.io")
	form.ProjectID = projectID
	if saved := a.Save(context.Background(), userID, form); saved != nil {
		t.Fatalf("Save returned %v for a launched project", saved)
	}
	if projects.addCalls != 0 || projects.updateCalls != 0 {
		t.Errorf("launched project was written: %d adds, %d updates", projects.addCalls, projects.updateCalls)
	}
}

func TestAutosaveSkipsWhenSaveInFlight(t *testing.T) {
	projects := newFakeProjectStore()
	a := newTestAutosaver(projects)
	a.saving = true

	if saved := a.Save(context.Background(), uuid.New(), launchForm("Acme", "https://acme.io")); saved != nil {
		t.Fatalf("Save returned %v while another save was in flight", saved)
	}
	if projects.addCalls != 0 {
		t.Errorf("overlapping save wrote %d rows", projects.addCalls)
	}
}

func TestAutosaveCreatesDraftThenUpdatesIt(t *testing.T) {
	projects := newFakeProjectStore()
	a := newTestAutosaver(projects)
	userID := uuid.New()

	first := a.Save(context.Background(), userID, launchForm("Acme", "https://acme.io"))
	if first == nil {
		t.Fatal("first Save returned nil")
	}
	if first.Status != models.StatusDraft {
		t.Errorf("status = %q, want %q", first.Status, models.StatusDraft)
	}
	if a.DraftID() != first.ID {
		t.Errorf("DraftID = %s, want %s", a.DraftID(), first.ID)
	}

	form := launchForm("Acme", "https://acme.io")
	form.Tagline = "Edited"
	second := a.Save(context.Background(), userID, form)
	if second == nil {
		t.Fatal("second Save returned nil")
	}
	if second.ID != first.ID {
		t.Errorf("second save created a new row %s, want %s", second.ID, first.ID)
	}
	if len(projects.rows) != 1 {
		t.Errorf("row count = %d, want 1", len(projects.rows))
	}
	if projects.rows[first.ID].Tagline != "Edited" {
		t.Errorf("tagline = %q, want %q", projects.rows[first.ID].Tagline, "Edited")
	}
}

func TestAutosaveAdoptsExistingDraftByName(t *testing.T) {
	projects := newFakeProjectStore()
	userID := uuid.New()
	draftID := uuid.New()
	projects.seed(&models.Project{
		ID:     draftID,
		UserID: userID,
		Name:   "Acme",
		Slug:   "acme",
		Status: models.StatusDraft,
	})

	// Fresh autosaver, as after a page reload: the first save must find the
	// old draft instead of inserting a second one.
	a := newTestAutosaver(projects)

	saved := a.Save(context.Background(), userID, launchForm("Acme", "https://acme.io"))
	if saved == nil {
		t.Fatal("Save returned nil")
	}
	if saved.ID != draftID {
		t.Errorf("saved ID = %s, want adopted draft %s", saved.ID, draftID)
	}
	if len(projects.rows) != 1 {
		t.Errorf("row count = %d, want 1", len(projects.rows))
	}
}

func TestAutosaveRetriesThenSucceeds(t *testing.T) {
	projects := newFakeProjectStore()
	projects.addErrs = []error{errors.New("connection reset"), nil}

	a := newTestAutosaver(projects)

	saved := a.Save(context.Background(), uuid.New(), launchForm("Acme", "https://acme.io"))
	if saved == nil {
		t.Fatal("Save returned nil despite a retryable failure")
	}
	if projects.addCalls != 2 {
		t.Errorf("addCalls = %d, want 2", projects.addCalls)
	}
}

func TestAutosaveFailsSilentlyAfterRetries(t *testing.T) {
	projects := newFakeProjectStore()
	boom := errors.New("connection reset")
	projects.addErrs = []error{boom, boom, boom, boom, boom}

	a := newTestAutosaver(projects)

	if saved := a.Save(context.Background(), uuid.New(), launchForm("Acme", "https://acme.io")); saved != nil {
		t.Fatalf("Save returned %v, want silent nil after exhausted retries", saved)
	}
	if a.DraftID() != uuid.Nil {
		t.Errorf("DraftID = %s after failed save, want Nil", a.DraftID())
	}

	// The autosaver must be usable again after a failed cycle.
	projects.addErrs = nil
	if saved := a.Save(context.Background(), uuid.New(), launchForm("Acme", "https://acme.io")); saved == nil {
		t.Fatal("Save returned nil after the in-flight flag should have been cleared")
	}
}
