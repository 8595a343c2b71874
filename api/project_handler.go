package api

import (
	"encoding/json"
	"net/http"
	"sync"
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

// autosaverIdleTTL is how long an editing session's autosaver survives
// without being used before the registry drops it.
const autosaverIdleTTL = time.Hour

type autosaverEntry struct {
	autosaver *services.Autosaver
	lastUsed  time.Time
}

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	likeRepo    *database.LikeRepo
	submitter   *services.Submitter
	slugs       *services.SlugGenerator
	media       *services.MediaUploader

	// One autosaver per editing session, created lazily on the first
	// autosave call and keyed by user + form session. Entries leave the
	// registry when their draft is submitted or they go idle.
	mu         sync.Mutex
	autosavers map[string]*autosaverEntry
}

func newProjectHandler(
	projectRepo *database.ProjectRepo,
	likeRepo *database.LikeRepo,
	submitter *services.Submitter,
	slugs *services.SlugGenerator,
	media *services.MediaUploader,
) *projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return &projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		likeRepo:    likeRepo,
		submitter:   submitter,
		slugs:       slugs,
		media:       media,
		autosavers:  make(map[string]*autosaverEntry),
	}
}

// ProjectWithStats is a project plus the counters the directory UI shows.
type ProjectWithStats struct {
	Project models.Project `json:"project"`
	Likes   int64          `json:"likes"`
}

// listProjects returns the public launch directory, filterable by category
// and search term, sortable by "newest" or "popular".
func (h *projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := database.ListOptions{
			Category: q.Get("category"),
			Search:   q.Get("q"),
			Sort:     q.Get("sort"),
			Limit:    50,
		}

		projects, err := h.projectRepo.FindLaunched(opts)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		result := make([]ProjectWithStats, 0, len(projects))
		for _, project := range projects {
			likes, err := h.likeRepo.CountByProject(project.ID)
			if err != nil {
				h.logger.Warn().Err(err).Str("projectID", project.ID.String()).Msg("like count failed")
			}
			result = append(result, ProjectWithStats{Project: *project, Likes: likes})
		}

		h.responder.WriteJSON(w, map[string]any{
			"projects": result,
			"total":    len(result),
		})
	}
}

// getProjectBySlug returns a single launched project by slug.
func (h *projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil || !project.IsLaunched() {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		likes, err := h.likeRepo.CountByProject(project.ID)
		if err != nil {
			h.logger.Warn().Err(err).Str("projectID", project.ID.String()).Msg("like count failed")
		}

		h.responder.WriteJSON(w, ProjectWithStats{Project: *project, Likes: likes})
	}
}

// getMyProjects returns the caller's projects, drafts included.
func (h *projectHandler) getMyProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projects, err := h.projectRepo.FindByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"projects": projects})
	}
}

// autosaveDraft persists the submitted form as a draft. It always answers
// 202: autosave is fire-and-forget by design and failures stay invisible.
func (h *projectHandler) autosaveDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var form services.ProjectForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("draft", err))
			return
		}

		autosaver := h.autosaverFor(userID, r.Header.Get("X-Form-Session"))
		saved := autosaver.Save(r.Context(), userID, &form)

		if saved != nil {
			h.responder.WriteJSONStatus(w, http.StatusAccepted, map[string]any{"draft_id": saved.ID})
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusAccepted, map[string]any{"draft_id": nil})
	}
}

// submitProject launches a new project or updates an existing one.
func (h *projectHandler) submitProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var form services.ProjectForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.submitter.Submit(r.Context(), userID, &form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The editing session is over; drop its autosaver.
		h.releaseAutosaver(userID, r.Header.Get("X-Form-Session"))

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// deleteProject removes a project, recording the URL cooldown for launches.
func (h *projectHandler) deleteProject() http.HandlerFunc {
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

		if err := h.submitter.Delete(userID, projectID, ctxIsAdmin(r.Context())); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// requestRelaunch queues an admin-reviewed relaunch request.
func (h *projectHandler) requestRelaunch() http.HandlerFunc {
	type relaunchPayload struct {
		Note string `json:"note"`
	}

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

		var payload relaunchPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("relaunch request", err))
			return
		}

		request, err := h.submitter.RequestRelaunch(userID, projectID, payload.Note)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusAccepted, request)
	}
}

func (h *projectHandler) autosaverFor(userID uuid.UUID, formSession string) *services.Autosaver {
	key := autosaverKey(userID, formSession)
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	// Abandoned editing sessions never call back in, so sweep them here.
	for k, entry := range h.autosavers {
		if now.Sub(entry.lastUsed) > autosaverIdleTTL {
			delete(h.autosavers, k)
		}
	}

	if entry, ok := h.autosavers[key]; ok {
		entry.lastUsed = now
		return entry.autosaver
	}
	entry := &autosaverEntry{
		autosaver: services.NewAutosaver(h.projectRepo, h.slugs, h.media),
		lastUsed:  now,
	}
	h.autosavers[key] = entry
	return entry.autosaver
}

// releaseAutosaver drops an editing session's autosaver once its draft has
// been submitted.
func (h *projectHandler) releaseAutosaver(userID uuid.UUID, formSession string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.autosavers, autosaverKey(userID, formSession))
}

func autosaverKey(userID uuid.UUID, formSession string) string {
	return userID.String() + "|" + formSession
}
