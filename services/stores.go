package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/launchit-app/launchit/backend/models"
)

// Store interfaces cover exactly the persistence surface the submission
// pipeline touches. database.* repos satisfy them; tests use in-memory fakes.

type ProjectStore interface {
	FindByID(id uuid.UUID) (*models.Project, error)
	FindDraft(userID uuid.UUID, name string) (*models.Project, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	CountLaunchedSince(userID uuid.UUID, since time.Time) (int64, error)
	FindLaunchedByNormalizedURL(normalizedURL string, excludeID uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

type DeletedProjectStore interface {
	Add(record *models.DeletedProject) error
	FindByNormalizedURL(normalizedURL string) (*models.DeletedProject, error)
}

type LikeStore interface {
	Add(like *models.Like) error
}

type ProfileStore interface {
	FindByID(id uuid.UUID) (*models.Profile, error)
}

type RelaunchStore interface {
	Add(request *models.RelaunchRequest) error
	HasPending(projectID uuid.UUID) (bool, error)
}

type NotificationStore interface {
	Add(notification *models.Notification) error
	AddBatch(notifications []*models.Notification) error
}

type CommentStore interface {
	FindByID(id uuid.UUID) (*models.Comment, error)
	FindByProject(projectID uuid.UUID) ([]*models.Comment, error)
	CountReplies(id uuid.UUID) (int64, error)
	Add(comment *models.Comment) error
	SoftDelete(id uuid.UUID) error
	Delete(id uuid.UUID) error
}
