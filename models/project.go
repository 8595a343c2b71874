package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project lifecycle status values.
const (
	StatusDraft    = "draft"
	StatusLaunched = "launched"
)

// Sponsorship tiers. Written exclusively by the billing webhook.
const (
	TierNone      = "none"
	TierHighlight = "highlight"
	TierPremium   = "premium"
)

// Project represents a submitted startup project, either a private draft or a
// publicly launched listing.
type Project struct {
	ID            uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID        uuid.UUID                   `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Slug          string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Name          string                      `json:"name" db:"name" gorm:"type:text;not null"`
	Tagline       string                      `json:"tagline" db:"tagline" gorm:"type:text"`
	Description   string                      `json:"description" db:"description" gorm:"type:text"`
	WebsiteURL    string                      `json:"website_url" db:"website_url" gorm:"type:text"`
	NormalizedURL string                      `json:"-" db:"normalized_url" gorm:"type:text;index"`
	CategoryType  string                      `json:"category_type" db:"category_type" gorm:"type:text"`
	Tags          datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags"`
	BuiltWith     datatypes.JSONSlice[string] `json:"built_with,omitempty" db:"built_with"`
	Links         datatypes.JSONSlice[string] `json:"links,omitempty" db:"links"`
	LogoURL       string                      `json:"logo_url,omitempty" db:"logo_url" gorm:"type:text"`
	ThumbnailURL  string                      `json:"thumbnail_url,omitempty" db:"thumbnail_url" gorm:"type:text"`
	CoverURLs     datatypes.JSONSlice[string] `json:"cover_urls,omitempty" db:"cover_urls"`
	MediaURLs     datatypes.JSONSlice[string] `json:"media_urls,omitempty" db:"media_urls"`
	Status        string                      `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`

	// Monetization state. Never accepted from client payloads; the billing
	// webhook is the only writer.
	IsSponsored      bool       `json:"is_sponsored" db:"is_sponsored" gorm:"not null;default:false"`
	SponsoredTier    string     `json:"sponsored_tier" db:"sponsored_tier" gorm:"type:text;not null;default:none"`
	PlanType         string     `json:"plan_type,omitempty" db:"plan_type" gorm:"type:text"`
	SubscriptionID   string     `json:"-" db:"subscription_id" gorm:"type:text"`
	SubscriptionEnds *time.Time `json:"-" db:"subscription_ends"`

	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	LastRelaunchDate *time.Time `json:"last_relaunch_date,omitempty" db:"last_relaunch_date"`
}

// IsLaunched reports whether the project is publicly visible.
func (p *Project) IsLaunched() bool {
	return p.Status == StatusLaunched
}
