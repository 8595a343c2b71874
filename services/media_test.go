package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("encode fixture image: %v", err)
	}
	return buf.Bytes()
}

func TestPersistZeroInputResolvesEmpty(t *testing.T) {
	u := NewMediaUploader(newFakeObjectStore())

	url, err := u.Persist(context.Background(), "logos", MediaInput{})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if url != "" {
		t.Errorf("url = %q, want empty for zero input", url)
	}
}

func TestPersistFirstPartyURLPassesThrough(t *testing.T) {
	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	existing := store.BaseURL() + "/logos/already-there.png"
	url, err := u.Persist(context.Background(), "logos", MediaInput{URL: existing})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if url != existing {
		t.Errorf("url = %q, want passthrough %q", url, existing)
	}
	if len(store.uploads) != 0 {
		t.Errorf("first-party URL triggered %d uploads", len(store.uploads))
	}
}

func TestPersistUploadsBytes(t *testing.T) {
	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	input := MediaInput{
		Data:        jpegBytes(t, 32, 32),
		ContentType: "image/jpeg",
		Filename:    "logo.jpg",
	}
	url, err := u.Persist(context.Background(), "logos", input)
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if !strings.HasPrefix(url, store.BaseURL()+"/logos/") {
		t.Errorf("url = %q, want logos/ key under the store base", url)
	}
	if len(store.uploads) != 1 {
		t.Errorf("uploads = %d, want 1", len(store.uploads))
	}
}

func TestPersistKeepsOriginalWhenReencodeLooksCorrupt(t *testing.T) {
	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	// Not an image at all: the re-encode fails and the raw bytes go up.
	raw := []byte("definitely not an image")
	if _, err := u.Persist(context.Background(), "logos", MediaInput{Data: raw, ContentType: "application/octet-stream"}); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	for _, body := range store.uploads {
		if !bytes.Equal(body, raw) {
			t.Error("uploaded bytes differ from the original")
		}
	}
}

func TestPersistSurfacesUploadFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.uploadErr = errors.New("access denied")
	u := NewMediaUploader(store)

	if _, err := u.Persist(context.Background(), "logos", MediaInput{Data: jpegBytes(t, 8, 8), ContentType: "image/jpeg"}); err == nil {
		t.Fatal("Persist succeeded despite upload failures")
	}
}

func TestPersistRemoteURLIsReuploaded(t *testing.T) {
	img := jpegBytes(t, 16, 16)
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(img)
	}))
	defer remote.Close()

	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	url, err := u.Persist(context.Background(), "logos", MediaInput{URL: remote.URL + "/logo.jpg"})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if !strings.HasPrefix(url, store.BaseURL()+"/") {
		t.Errorf("url = %q, want first-party copy", url)
	}
}

func TestPersistRemoteFetchFailureKeepsReference(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer remote.Close()

	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	remoteURL := remote.URL + "/gone.png"
	url, err := u.Persist(context.Background(), "logos", MediaInput{URL: remoteURL})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if url != remoteURL {
		t.Errorf("url = %q, want unchanged remote reference %q", url, remoteURL)
	}
}

func TestPersistFormResolvesAllSlots(t *testing.T) {
	store := newFakeObjectStore()
	u := NewMediaUploader(store)

	form := &ProjectForm{
		Logo:      MediaInput{Data: jpegBytes(t, 8, 8), ContentType: "image/jpeg"},
		Thumbnail: MediaInput{Data: jpegBytes(t, 8, 8), ContentType: "image/jpeg"},
		Covers: []MediaInput{
			{Data: jpegBytes(t, 8, 8), ContentType: "image/jpeg"},
			{},
		},
	}

	logoURL, thumbURL, coverURLs, err := u.PersistForm(context.Background(), form)
	if err != nil {
		t.Fatalf("PersistForm returned error: %v", err)
	}
	if logoURL == "" || thumbURL == "" {
		t.Errorf("logo = %q thumbnail = %q, want both resolved", logoURL, thumbURL)
	}
	if len(coverURLs) != 2 {
		t.Fatalf("coverURLs = %d entries, want 2", len(coverURLs))
	}
	if coverURLs[0] == "" {
		t.Error("first cover did not resolve")
	}
	if coverURLs[1] != "" {
		t.Errorf("empty cover slot resolved to %q", coverURLs[1])
	}
}
