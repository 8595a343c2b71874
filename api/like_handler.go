package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
	"github.com/launchit-app/launchit/backend/services"
)

type likeHandler struct {
	responder   Responder
	logger      zerolog.Logger
	likeRepo    *database.LikeRepo
	projectRepo *database.ProjectRepo
	notifier    *services.Notifier
}

func newLikeHandler(likeRepo *database.LikeRepo, projectRepo *database.ProjectRepo, notifier *services.Notifier) *likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return &likeHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		likeRepo:    likeRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
	}
}

// likeProject upvotes a launched project. The owner gets a best-effort
// notification; a duplicate vote is a conflict.
func (h *likeHandler) likeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil || !project.IsLaunched() {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		exists, err := h.likeRepo.Exists(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "like", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewConflictError("already liked"))
			return
		}

		like := &models.Like{
			ID:        uuid.New(),
			ProjectID: projectID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := h.likeRepo.Add(like); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like", err))
			return
		}

		if project.UserID != userID {
			h.notifier.Notify(project.UserID, models.NotificationLike,
				fmt.Sprintf("%s got a new upvote", project.Name), "")
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, like)
	}
}

// unlikeProject withdraws the caller's upvote.
func (h *likeHandler) unlikeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.likeRepo.Remove(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "like", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}
