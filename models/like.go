package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is an upvote on a project, unique per user and project. Owners get a
// self-like when their project launches.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_project_user"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_project_user"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
