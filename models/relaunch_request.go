package models

import (
	"time"

	"github.com/google/uuid"
)

// Relaunch request statuses.
const (
	RelaunchPendingReview = "pending_review"
	RelaunchApproved      = "approved"
	RelaunchRejected      = "rejected"
)

// RelaunchRequest is a moderation-queue row asking admins to re-promote an
// existing launched project. Approval stamps the project's LastRelaunchDate;
// the live project is never mutated directly by the requester.
type RelaunchRequest struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID  uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Note       string     `json:"note,omitempty" db:"note" gorm:"type:text"`
	Status     string     `json:"status" db:"status" gorm:"type:text;not null;default:pending_review;index"`
	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty" db:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
