package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a project comment, threaded one level deep via ParentID.
// A comment that has replies is never hard-deleted: its content is blanked
// and Deleted is set, so the thread below it stays intact.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" db:"parent_id" gorm:"type:uuid;index"`
	Content   string     `json:"content" db:"content" gorm:"type:text;not null"`
	Deleted   bool       `json:"deleted" db:"deleted" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
