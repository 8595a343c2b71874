package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile mirrors an identity-service user. The ID is the auth identity.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username    string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	FullName    string    `json:"full_name" db:"full_name" gorm:"type:text"`
	Location    string    `json:"location" db:"location" gorm:"type:text"`
	Bio         string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	AvatarURL   string    `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	TwitterURL  string    `json:"twitter_url,omitempty" db:"twitter_url" gorm:"type:text"`
	LinkedinURL string    `json:"linkedin_url,omitempty" db:"linkedin_url" gorm:"type:text"`
	GithubURL   string    `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	WebsiteURL  string    `json:"website_url,omitempty" db:"website_url" gorm:"type:text"`
	Role        string    `json:"role" db:"role" gorm:"type:text;not null;default:user"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsComplete reports whether the profile meets the bar required to launch a
// project: a real name, a location and at least one social link.
func (p *Profile) IsComplete() bool {
	hasSocial := p.TwitterURL != "" || p.LinkedinURL != "" || p.GithubURL != "" || p.WebsiteURL != ""
	return p.FullName != "" && p.Location != "" && hasSocial
}

// UsernameChange is a bookkeeping row used to rate-limit username changes.
type UsernameChange struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID      uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	OldUsername string    `json:"old_username" db:"old_username" gorm:"type:text;not null"`
	NewUsername string    `json:"new_username" db:"new_username" gorm:"type:text;not null"`
	ChangedAt   time.Time `json:"changed_at" db:"changed_at" gorm:"not null;index"`
}
