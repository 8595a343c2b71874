package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
)

type notificationHandler struct {
	responder        Responder
	logger           zerolog.Logger
	notificationRepo *database.NotificationRepo
}

func newNotificationHandler(notificationRepo *database.NotificationRepo) *notificationHandler {
	logger := log.With().Str("handlerName", "notificationHandler").Logger()

	return &notificationHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		notificationRepo: notificationRepo,
	}
}

// listNotifications returns the caller's notifications plus the unread badge
// count.
func (h *notificationHandler) listNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		notifications, err := h.notificationRepo.FindByUser(userID, 100)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "notifications", err))
			return
		}

		unread, err := h.notificationRepo.CountUnread(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "notifications", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"notifications": notifications,
			"unread":        unread,
		})
	}
}

// markRead marks one notification read.
func (h *notificationHandler) markRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		notificationID, err := uuid.Parse(chi.URLParam(r, "notificationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid notificationID"))
			return
		}

		if err := h.notificationRepo.MarkRead(notificationID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "notification", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// markAllRead clears the caller's unread badge.
func (h *notificationHandler) markAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := h.notificationRepo.MarkAllRead(userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "notifications", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}
