package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

// Comments implements the comment thread rules: one level of nesting, and a
// comment with replies is soft-deleted (blanked, flagged) instead of removed
// so the thread under it survives.
type Comments struct {
	store    CommentStore
	projects ProjectStore
	notifier *Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewComments(store CommentStore, projects ProjectStore, notifier *Notifier) *Comments {
	return &Comments{
		store:    store,
		projects: projects,
		notifier: notifier,
		logger:   log.With().Str("service", "comments").Logger(),
		now:      time.Now,
	}
}

// Create posts a comment or a reply. Replies to replies are rejected to keep
// threads one level deep. The project owner gets a best-effort notification.
func (c *Comments) Create(userID, projectID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}

	project, err := c.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil || !project.IsLaunched() {
		return nil, errs.NewNotFoundError("project not found")
	}

	if parentID != nil {
		parent, err := c.store.FindByID(*parentID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "comment", err)
		}
		if parent == nil || parent.ProjectID != projectID {
			return nil, errs.NewInvalidFieldError("parent_id", "parent comment does not exist on this project")
		}
		if parent.ParentID != nil {
			return nil, errs.NewInvalidFieldError("parent_id", "replies cannot be nested further")
		}
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: c.now(),
		UpdatedAt: c.now(),
	}
	if err := c.store.Add(comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}

	if project.UserID != userID {
		c.notifier.Notify(project.UserID, models.NotificationComment,
			fmt.Sprintf("New comment on %s", project.Name), content)
	}
	return comment, nil
}

// ListByProject returns all comments of a project, oldest first.
func (c *Comments) ListByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	comments, err := c.store.FindByProject(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "comments", err)
	}
	return comments, nil
}

// Delete removes a comment. Author or admin only. When replies exist the row
// is kept with blanked content and deleted=true; otherwise it is removed.
func (c *Comments) Delete(userID uuid.UUID, isAdmin bool, commentID uuid.UUID) error {
	comment, err := c.store.FindByID(commentID)
	if err != nil {
		return errs.NewDatabaseError("find", "comment", err)
	}
	if comment == nil {
		return errs.NewNotFoundError("comment not found")
	}
	if comment.UserID != userID && !isAdmin {
		return errs.NewForbiddenError("you do not own this comment")
	}

	replies, err := c.store.CountReplies(commentID)
	if err != nil {
		return errs.NewDatabaseError("count", "replies", err)
	}

	if replies > 0 {
		if err := c.store.SoftDelete(commentID); err != nil {
			return errs.NewDatabaseError("update", "comment", err)
		}
		return nil
	}
	if err := c.store.Delete(commentID); err != nil {
		return errs.NewDatabaseError("delete", "comment", err)
	}
	return nil
}
