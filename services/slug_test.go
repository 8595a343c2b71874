package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/launchit-app/launchit/backend/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme", "acme"},
		{"Acme Labs", "acme-labs"},
		{"  Acme   Labs  ", "acme-labs"},
		{"Acme!!! Labs???", "acme-labs"},
		{"ACME 2.0", "acme-2-0"},
		{"---", "project"},
		{"", "project"},
		{"héllo wörld", "h-llo-w-rld"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	first := Slugify("My Cool Startup")
	for i := 0; i < 10; i++ {
		if got := Slugify("My Cool Startup"); got != first {
			t.Fatalf("Slugify not deterministic: %q then %q", first, got)
		}
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	got := Slugify(strings.Repeat("a", 500))
	if len(got) > 100 {
		t.Errorf("slug length = %d, want <= 100", len(got))
	}
}

func TestUniqueReturnsBaseWhenFree(t *testing.T) {
	store := newFakeProjectStore()
	gen := NewSlugGenerator(store)

	if got := gen.Unique("Acme Labs", uuid.Nil); got != "acme-labs" {
		t.Errorf("Unique = %q, want %q", got, "acme-labs")
	}
}

func TestUniqueSuffixesOnCollision(t *testing.T) {
	store := newFakeProjectStore()
	store.seed(&models.Project{ID: uuid.New(), Slug: "acme"})
	store.seed(&models.Project{ID: uuid.New(), Slug: "acme-2"})
	gen := NewSlugGenerator(store)

	if got := gen.Unique("Acme", uuid.Nil); got != "acme-3" {
		t.Errorf("Unique = %q, want %q", got, "acme-3")
	}
}

func TestUniqueSkipsOwnRow(t *testing.T) {
	id := uuid.New()
	store := newFakeProjectStore()
	store.seed(&models.Project{ID: id, Slug: "acme"})
	gen := NewSlugGenerator(store)

	// Re-saving the same project must keep its own slug instead of
	// colliding with itself.
	if got := gen.Unique("Acme", id); got != "acme" {
		t.Errorf("Unique = %q, want %q", got, "acme")
	}
}

func TestUniqueFallsBackToTimestampOnStoreError(t *testing.T) {
	store := newFakeProjectStore()
	store.findErr = errors.New("connection refused")
	gen := NewSlugGenerator(store)
	gen.now = func() time.Time { return time.UnixMilli(1700000000000) }

	if got := gen.Unique("Acme", uuid.Nil); got != "acme-1700000000000" {
		t.Errorf("Unique = %q, want %q", got, "acme-1700000000000")
	}
}

func TestRandomizedVaries(t *testing.T) {
	gen := NewSlugGenerator(newFakeProjectStore())

	a := gen.Randomized("Acme")
	b := gen.Randomized("Acme")
	if a == b {
		t.Errorf("Randomized returned %q twice", a)
	}
	if !strings.HasPrefix(a, "acme-") {
		t.Errorf("Randomized = %q, want acme- prefix", a)
	}
}
