package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

type reportHandler struct {
	responder   Responder
	logger      zerolog.Logger
	reportRepo  *database.ReportRepo
	projectRepo *database.ProjectRepo
	commentRepo *database.CommentRepo
}

func newReportHandler(reportRepo *database.ReportRepo, projectRepo *database.ProjectRepo, commentRepo *database.CommentRepo) *reportHandler {
	logger := log.With().Str("handlerName", "reportHandler").Logger()

	return &reportHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		reportRepo:  reportRepo,
		projectRepo: projectRepo,
		commentRepo: commentRepo,
	}
}

// createReport flags a project or comment for admin review.
func (h *reportHandler) createReport() http.HandlerFunc {
	type reportPayload struct {
		TargetType string    `json:"target_type"`
		TargetID   uuid.UUID `json:"target_id"`
		Reason     string    `json:"reason"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var payload reportPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("report", err))
			return
		}

		switch payload.TargetType {
		case models.ReportTargetProject:
			project, err := h.projectRepo.FindByID(payload.TargetID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
				return
			}
			if project == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
				return
			}
		case models.ReportTargetComment:
			comment, err := h.commentRepo.FindByID(payload.TargetID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
				return
			}
			if comment == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
				return
			}
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("target_type", "must be project or comment"))
			return
		}

		report := &models.Report{
			ID:         uuid.New(),
			ReporterID: userID,
			TargetType: payload.TargetType,
			TargetID:   payload.TargetID,
			Reason:     payload.Reason,
			Status:     models.ReportPending,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := h.reportRepo.Add(report); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "report", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, report)
	}
}
