package services

import (
	"github.com/google/uuid"
)

// MediaInput is one media slot of the submission form: either raw bytes from
// a multipart upload, or a URL (first-party from an earlier save, or remote
// from the launch-data generator).
type MediaInput struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type,omitempty"`
	Filename    string `json:"filename,omitempty"`
	URL         string `json:"url,omitempty"`
}

func (m MediaInput) IsZero() bool {
	return len(m.Data) == 0 && m.URL == ""
}

// ProjectForm holds the user-entered submission fields. It is the wire shape
// of both the autosave and submit endpoints; monetization fields are absent
// on purpose and cannot be smuggled in.
type ProjectForm struct {
	ProjectID   uuid.UUID `json:"project_id,omitempty"`
	Name        string    `json:"name"`
	WebsiteURL  string    `json:"website_url"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	BuiltWith   []string  `json:"built_with,omitempty"`
	Links       []string  `json:"links,omitempty"`

	Logo      MediaInput   `json:"logo,omitempty"`
	Thumbnail MediaInput   `json:"thumbnail,omitempty"`
	Covers    []MediaInput `json:"covers,omitempty"`
}

// IsEmpty reports whether the user has typed anything worth saving.
func (f *ProjectForm) IsEmpty() bool {
	return f.Name == "" && f.WebsiteURL == "" && f.Tagline == "" &&
		f.Description == "" && f.Category == "" &&
		len(f.Tags) == 0 && len(f.Links) == 0 && len(f.BuiltWith) == 0 &&
		f.Logo.IsZero() && f.Thumbnail.IsZero() && len(f.Covers) == 0
}
