package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// The autosaver registry is touched only through autosaverFor and
// releaseAutosaver here; no Save call ever runs, so nil collaborators are
// fine.
func newRegistryHandler() *projectHandler {
	return newProjectHandler(nil, nil, nil, nil, nil)
}

func TestAutosaverRegistryReusesSession(t *testing.T) {
	h := newRegistryHandler()
	userID := uuid.New()

	first := h.autosaverFor(userID, "form-1")
	second := h.autosaverFor(userID, "form-1")
	if first != second {
		t.Error("same editing session got two autosavers")
	}

	other := h.autosaverFor(userID, "form-2")
	if other == first {
		t.Error("different form sessions share an autosaver")
	}
	if cross := h.autosaverFor(uuid.New(), "form-1"); cross == first {
		t.Error("different users share an autosaver")
	}
}

func TestReleaseAutosaverDropsSession(t *testing.T) {
	h := newRegistryHandler()
	userID := uuid.New()

	first := h.autosaverFor(userID, "form-1")
	h.releaseAutosaver(userID, "form-1")

	h.mu.Lock()
	remaining := len(h.autosavers)
	h.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("registry holds %d entries after release, want 0", remaining)
	}

	if h.autosaverFor(userID, "form-1") == first {
		t.Error("released session came back with the old autosaver")
	}
}

func TestAutosaverRegistryEvictsIdleSessions(t *testing.T) {
	h := newRegistryHandler()
	staleUser := uuid.New()

	h.autosaverFor(staleUser, "form-1")
	h.mu.Lock()
	h.autosavers[autosaverKey(staleUser, "form-1")].lastUsed = time.Now().Add(-2 * autosaverIdleTTL)
	h.mu.Unlock()

	// Any later lookup sweeps idle entries.
	h.autosaverFor(uuid.New(), "form-9")

	h.mu.Lock()
	_, staleAlive := h.autosavers[autosaverKey(staleUser, "form-1")]
	size := len(h.autosavers)
	h.mu.Unlock()

	if staleAlive {
		t.Error("idle session survived the sweep")
	}
	if size != 1 {
		t.Errorf("registry holds %d entries, want only the fresh one", size)
	}
}
