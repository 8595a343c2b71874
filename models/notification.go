package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationLike      = "like"
	NotificationComment   = "comment"
	NotificationBroadcast = "broadcast"
	NotificationRelaunch  = "relaunch"
)

// Notification is a fire-and-forget row inserted as a side effect of likes,
// comments and admin broadcasts. Inserts never block the primary operation.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Type      string    `json:"type" db:"type" gorm:"type:text;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Body      string    `json:"body,omitempty" db:"body" gorm:"type:text"`
	Read      bool      `json:"read" db:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
}
