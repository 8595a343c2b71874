package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

// usernameChangeWindow is the minimum time between username changes.
const usernameChangeWindow = 30 * 24 * time.Hour

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
}

func newProfileHandler(profileRepo *database.ProfileRepo) *profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return &profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
	}
}

// getMyProfile returns the caller's profile, creating a skeleton row on the
// first call after sign-up.
func (h *profileHandler) getMyProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		profile, err := h.profileRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			profile = &models.Profile{
				ID:       userID,
				Username: "user-" + userID.String()[:8],
				Role:     models.RoleUser,
			}
			if err := h.profileRepo.Add(profile); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create", "profile", err))
				return
			}
		}

		h.responder.WriteJSON(w, map[string]any{
			"profile":  profile,
			"complete": profile.IsComplete(),
		})
	}
}

// getProfileByUsername returns a public profile.
func (h *profileHandler) getProfileByUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing username"))
			return
		}

		profile, err := h.profileRepo.FindByUsername(username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("profile not found"))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile edits the caller's profile. Username changes are unique and
// rate-limited to one per 30 days; role is never writable here.
func (h *profileHandler) updateProfile() http.HandlerFunc {
	type profilePayload struct {
		Username    *string `json:"username,omitempty"`
		FullName    *string `json:"full_name,omitempty"`
		Location    *string `json:"location,omitempty"`
		Bio         *string `json:"bio,omitempty"`
		AvatarURL   *string `json:"avatar_url,omitempty"`
		TwitterURL  *string `json:"twitter_url,omitempty"`
		LinkedinURL *string `json:"linkedin_url,omitempty"`
		GithubURL   *string `json:"github_url,omitempty"`
		WebsiteURL  *string `json:"website_url,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		profile, err := h.profileRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("profile not found"))
			return
		}

		var payload profilePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile", err))
			return
		}

		oldUsername := profile.Username
		usernameChanged := payload.Username != nil && *payload.Username != profile.Username

		if usernameChanged {
			if *payload.Username == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
				return
			}

			lastChange, err := h.profileRepo.LastUsernameChange(userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "username change", err))
				return
			}
			if lastChange != nil {
				nextAllowed := lastChange.ChangedAt.Add(usernameChangeWindow)
				if nextAllowed.After(time.Now()) {
					h.responder.WriteError(w, errs.NewUsernameRateLimitError(nextAllowed))
					return
				}
			}

			taken, err := h.profileRepo.FindByUsername(*payload.Username)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
				return
			}
			if taken != nil {
				h.responder.WriteError(w, errs.NewAlreadyExists("username"))
				return
			}
			profile.Username = *payload.Username
		}

		applyIfSet := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyIfSet(&profile.FullName, payload.FullName)
		applyIfSet(&profile.Location, payload.Location)
		applyIfSet(&profile.Bio, payload.Bio)
		applyIfSet(&profile.AvatarURL, payload.AvatarURL)
		applyIfSet(&profile.TwitterURL, payload.TwitterURL)
		applyIfSet(&profile.LinkedinURL, payload.LinkedinURL)
		applyIfSet(&profile.GithubURL, payload.GithubURL)
		applyIfSet(&profile.WebsiteURL, payload.WebsiteURL)

		if err := h.profileRepo.Update(profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		if usernameChanged {
			if err := h.profileRepo.RecordUsernameChange(userID, oldUsername, profile.Username); err != nil {
				h.logger.Warn().Err(err).Msg("username change bookkeeping failed")
			}
		}

		h.responder.WriteJSON(w, profile)
	}
}
