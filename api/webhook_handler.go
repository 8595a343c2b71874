package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/models"
)

type webhookHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	secret      []byte
}

func newWebhookHandler(projectRepo *database.ProjectRepo, secret string) *webhookHandler {
	logger := log.With().Str("handlerName", "webhookHandler").Logger()

	return &webhookHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		secret:      []byte(secret),
	}
}

// billingClaims is the payload the billing provider signs into its webhook
// token.
type billingClaims struct {
	ProjectID      string `json:"project_id"`
	Sponsored      bool   `json:"sponsored"`
	Tier           string `json:"tier"`
	PlanType       string `json:"plan_type"`
	SubscriptionID string `json:"subscription_id"`
	EndsAt         *int64 `json:"ends_at,omitempty"`
	jwt.RegisteredClaims
}

// handleBillingEvent applies a signed billing event to a project's
// sponsorship fields. This is the only code path that writes them.
func (h *webhookHandler) handleBillingEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(h.secret) == 0 {
			h.responder.WriteError(w, errs.NewInternalError("billing webhook secret not configured"))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("unreadable body"))
			return
		}

		claims := &billingClaims{}
		token, err := jwt.ParseWithClaims(string(body), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return h.secret, nil
		})
		if err != nil || !token.Valid {
			h.logger.Warn().Err(err).Msg("rejected billing webhook")
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(claims.ProjectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("project_id", "must be a UUID"))
			return
		}

		tier := claims.Tier
		if tier == "" {
			tier = models.TierNone
		}

		var endsAt *time.Time
		if claims.EndsAt != nil {
			t := time.Unix(*claims.EndsAt, 0)
			endsAt = &t
		}

		if err := h.projectRepo.SetSponsorship(projectID, claims.Sponsored, tier, claims.PlanType, claims.SubscriptionID, endsAt); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.logger.Info().
			Str("projectID", projectID.String()).
			Bool("sponsored", claims.Sponsored).
			Str("tier", tier).
			Msg("applied billing event")

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}
