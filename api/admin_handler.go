package api

import (
	"encoding/json"
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

type adminHandler struct {
	responder    Responder
	logger       zerolog.Logger
	reportRepo   *database.ReportRepo
	relaunchRepo *database.RelaunchRequestRepo
	projectRepo  *database.ProjectRepo
	profileRepo  *database.ProfileRepo
	notifier     *services.Notifier
}

func newAdminHandler(
	reportRepo *database.ReportRepo,
	relaunchRepo *database.RelaunchRequestRepo,
	projectRepo *database.ProjectRepo,
	profileRepo *database.ProfileRepo,
	notifier *services.Notifier,
) *adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return &adminHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		reportRepo:   reportRepo,
		relaunchRepo: relaunchRepo,
		projectRepo:  projectRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
	}
}

// listReports returns the pending report queue (or another status via query).
func (h *adminHandler) listReports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status == "" {
			status = models.ReportPending
		}

		reports, err := h.reportRepo.FindByStatus(status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "reports", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"reports": reports})
	}
}

// reviewReport resolves or ignores a report.
func (h *adminHandler) reviewReport() http.HandlerFunc {
	type reviewPayload struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reportID"))
			return
		}

		var payload reviewPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("report review", err))
			return
		}
		if payload.Status != models.ReportResolved && payload.Status != models.ReportIgnored {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be resolved or ignored"))
			return
		}

		report, err := h.reportRepo.FindByID(reportID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "report", err))
			return
		}
		if report == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("report not found"))
			return
		}

		if err := h.reportRepo.SetStatus(reportID, payload.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "report", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// listRelaunchRequests returns the pending relaunch queue.
func (h *adminHandler) listRelaunchRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := h.relaunchRepo.FindPending()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relaunch requests", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"requests": requests})
	}
}

// reviewRelaunch approves or rejects a relaunch request. Approval stamps the
// project's last relaunch date and notifies the owner.
func (h *adminHandler) reviewRelaunch() http.HandlerFunc {
	type reviewPayload struct {
		Approve bool `json:"approve"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		adminID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid requestID"))
			return
		}

		var payload reviewPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("relaunch review", err))
			return
		}

		request, err := h.relaunchRepo.FindByID(requestID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relaunch request", err))
			return
		}
		if request == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("relaunch request not found"))
			return
		}
		if request.Status != models.RelaunchPendingReview {
			h.responder.WriteError(w, errs.NewConflictError("relaunch request already reviewed"))
			return
		}

		status := models.RelaunchRejected
		if payload.Approve {
			status = models.RelaunchApproved
		}
		if err := h.relaunchRepo.Review(requestID, adminID, status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "relaunch request", err))
			return
		}

		if payload.Approve {
			if err := h.projectRepo.StampRelaunch(request.ProjectID, time.Now()); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
				return
			}
			h.notifier.Notify(request.UserID, models.NotificationRelaunch,
				"Your relaunch request was approved", "")
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// broadcast sends a notification to every user.
func (h *adminHandler) broadcast() http.HandlerFunc {
	type broadcastPayload struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload broadcastPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("broadcast", err))
			return
		}
		if payload.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		userIDs, err := h.profileRepo.FindAllIDs()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profiles", err))
			return
		}

		h.notifier.Broadcast(userIDs, payload.Title, payload.Body)

		h.responder.WriteJSONStatus(w, http.StatusAccepted, map[string]any{
			"status":     "success",
			"recipients": len(userIDs),
		})
	}
}
