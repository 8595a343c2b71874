package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/errs"
	"github.com/launchit-app/launchit/backend/services"
)

type generateHandler struct {
	responder Responder
	logger    zerolog.Logger
	generator *services.Generator

	// In-flight generations keyed by user + form session so a later cancel
	// call can reach the right request.
	mu     sync.Mutex
	tokens map[string]*services.CancelToken
}

func newGenerateHandler(generator *services.Generator) *generateHandler {
	logger := log.With().Str("handlerName", "generateHandler").Logger()

	return &generateHandler{
		responder: NewResponder(logger),
		logger:    logger,
		generator: generator,
		tokens:    make(map[string]*services.CancelToken),
	}
}

// generateLaunchData prefills launch form fields from a website URL. The
// response is always 200: when generation fails the fields come back empty
// and the user fills the form by hand.
func (h *generateHandler) generateLaunchData() http.HandlerFunc {
	type generatePayload struct {
		WebsiteURL string `json:"website_url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var payload generatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generate", err))
			return
		}
		if payload.WebsiteURL == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("website_url"))
			return
		}

		key := userID.String() + "|" + r.Header.Get("X-Form-Session")
		token := services.NewCancelToken()

		h.mu.Lock()
		if previous, ok := h.tokens[key]; ok {
			previous.Cancel()
		}
		h.tokens[key] = token
		h.mu.Unlock()

		data := h.generator.Generate(r.Context(), payload.WebsiteURL, token)

		h.mu.Lock()
		if h.tokens[key] == token {
			delete(h.tokens, key)
		}
		h.mu.Unlock()

		h.responder.WriteJSON(w, data)
	}
}

// cancelGenerate aborts the caller's in-flight generation, if any.
func (h *generateHandler) cancelGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		key := userID.String() + "|" + r.Header.Get("X-Form-Session")

		h.mu.Lock()
		token, ok := h.tokens[key]
		if ok {
			delete(h.tokens, key)
		}
		h.mu.Unlock()

		if ok {
			token.Cancel()
		}

		h.responder.WriteJSON(w, map[string]bool{"cancelled": ok})
	}
}
