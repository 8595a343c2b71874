package models

import (
	"time"

	"github.com/google/uuid"
)

// DeletedProject records a deleted launch's URL and when that URL becomes
// eligible for relaunch. Submission checks it instead of the projects table,
// so deleting a project does not immediately free its URL.
type DeletedProject struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID          uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	ProjectName     string    `json:"project_name" db:"project_name" gorm:"type:text;not null"`
	NormalizedURL   string    `json:"normalized_url" db:"normalized_url" gorm:"type:text;not null;index"`
	DeletedAt       time.Time `json:"deleted_at" db:"deleted_at" gorm:"not null"`
	RelaunchEligAt  time.Time `json:"relaunch_eligible_at" db:"relaunch_eligible_at" gorm:"not null"`
}
