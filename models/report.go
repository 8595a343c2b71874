package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses.
const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
	ReportIgnored  = "ignored"
)

// Report target kinds.
const (
	ReportTargetProject = "project"
	ReportTargetComment = "comment"
)

// Report flags a project or comment for admin review.
type Report struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ReporterID uuid.UUID `json:"reporter_id" db:"reporter_id" gorm:"type:uuid;not null;index"`
	TargetType string    `json:"target_type" db:"target_type" gorm:"type:text;not null"`
	TargetID   uuid.UUID `json:"target_id" db:"target_id" gorm:"type:uuid;not null;index"`
	Reason     string    `json:"reason" db:"reason" gorm:"type:text"`
	Status     string    `json:"status" db:"status" gorm:"type:text;not null;default:pending;index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
