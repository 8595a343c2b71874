package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Re-encoded output smaller than this fraction of the source is treated as a
// botched decode and the original bytes are kept.
const reencodeMinRatio = 0.8

const maxRemoteFetchBytes = 20 << 20

// ObjectStore persists a blob under a key and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	BaseURL() string
}

// MediaUploader turns form media inputs into persisted first-party URLs.
// It degrades instead of failing: re-encode problems fall back to the
// original bytes, and unreachable remote URLs are referenced as-is.
type MediaUploader struct {
	store      ObjectStore
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewMediaUploader(store ObjectStore) *MediaUploader {
	return &MediaUploader{
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("service", "mediaUploader").Logger(),
	}
}

// Persist resolves a single media input to a public URL. Zero inputs resolve
// to "" so optional slots stay optional.
func (u *MediaUploader) Persist(ctx context.Context, kind string, input MediaInput) (string, error) {
	switch {
	case len(input.Data) > 0:
		return u.uploadBytes(ctx, kind, input)
	case input.URL != "":
		if u.isFirstParty(input.URL) {
			return input.URL, nil
		}
		return u.uploadRemote(ctx, kind, input.URL)
	default:
		return "", nil
	}
}

// PersistForm uploads every media slot of a form concurrently and returns
// the resolved URLs in form order.
func (u *MediaUploader) PersistForm(ctx context.Context, form *ProjectForm) (logoURL, thumbnailURL string, coverURLs []string, err error) {
	coverURLs = make([]string, len(form.Covers))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logoURL, err = u.Persist(gctx, "logos", form.Logo)
		return err
	})
	g.Go(func() error {
		var err error
		thumbnailURL, err = u.Persist(gctx, "thumbnails", form.Thumbnail)
		return err
	})
	for i, cover := range form.Covers {
		i, cover := i, cover
		g.Go(func() error {
			var err error
			coverURLs[i], err = u.Persist(gctx, "covers", cover)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", nil, err
	}
	return logoURL, thumbnailURL, coverURLs, nil
}

// uploadBytes re-encodes the image to strip metadata and normalize quality,
// keeps the original when the re-encode looks corrupt, and retries the upload
// once with the untouched bytes if the first attempt fails.
func (u *MediaUploader) uploadBytes(ctx context.Context, kind string, input MediaInput) (string, error) {
	body := input.Data
	contentType := input.ContentType

	if encoded, encodedType, err := reencodeImage(input.Data); err == nil {
		if float64(len(encoded)) >= reencodeMinRatio*float64(len(input.Data)) {
			body = encoded
			contentType = encodedType
		} else {
			u.logger.Warn().
				Str("kind", kind).
				Int("original", len(input.Data)).
				Int("reencoded", len(encoded)).
				Msg("re-encoded image implausibly small, keeping original")
		}
	} else {
		u.logger.Debug().Err(err).Str("kind", kind).Msg("re-encode failed, uploading original")
	}

	key := u.objectKey(kind, input.Filename, contentType)
	url, err := u.store.Upload(ctx, key, contentType, body)
	if err == nil {
		return url, nil
	}

	if !bytes.Equal(body, input.Data) {
		u.logger.Warn().Err(err).Str("kind", kind).Msg("upload of re-encoded image failed, retrying with original")
		url, retryErr := u.store.Upload(ctx, key, input.ContentType, input.Data)
		if retryErr == nil {
			return url, nil
		}
		err = retryErr
	}
	return "", fmt.Errorf("upload %s: %w", kind, err)
}

// uploadRemote copies an externally hosted image (e.g. a generated logo) onto
// first-party storage. A failed fetch falls back to the remote URL itself.
func (u *MediaUploader) uploadRemote(ctx context.Context, kind, remoteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return remoteURL, nil
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.logger.Warn().Err(err).Str("url", remoteURL).Msg("remote media fetch failed, keeping external reference")
		return remoteURL, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		u.logger.Warn().Int("status", resp.StatusCode).Str("url", remoteURL).Msg("remote media fetch failed, keeping external reference")
		return remoteURL, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteFetchBytes))
	if err != nil || len(data) == 0 {
		u.logger.Warn().Err(err).Str("url", remoteURL).Msg("remote media read failed, keeping external reference")
		return remoteURL, nil
	}

	contentType := resp.Header.Get("Content-Type")
	key := u.objectKey(kind, path.Base(remoteURL), contentType)
	url, err := u.store.Upload(ctx, key, contentType, data)
	if err != nil {
		u.logger.Warn().Err(err).Str("url", remoteURL).Msg("re-upload of remote media failed, keeping external reference")
		return remoteURL, nil
	}
	return url, nil
}

func (u *MediaUploader) isFirstParty(url string) bool {
	base := u.store.BaseURL()
	return base != "" && strings.HasPrefix(url, base)
}

func (u *MediaUploader) objectKey(kind, filename, contentType string) string {
	ext := path.Ext(filename)
	if ext == "" {
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)
}

// reencodeImage decodes and re-encodes an image with stable settings. PNGs
// stay PNG, everything else comes out as JPEG.
func reencodeImage(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
