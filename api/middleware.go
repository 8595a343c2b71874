package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/descope/go-sdk/descope/client"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/config"
	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/errs"
)

type authMiddleware struct {
	responder Responder
	profiles  *database.ProfileRepo
	descope   *client.DescopeClient
}

// newAuthMiddleware validates sessions against the Descope identity service
// when DESCOPE_PROJECT_ID is configured. Without it (local development) the
// bearer token is taken to be the user's raw ID.
func newAuthMiddleware(profiles *database.ProfileRepo, cfg map[string]string) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()

	var descopeClient *client.DescopeClient
	if projectID := config.GetString(cfg, "DESCOPE_PROJECT_ID", ""); projectID != "" {
		var err error
		descopeClient, err = client.NewWithConfig(&client.Config{ProjectID: projectID})
		if err != nil {
			logger.Error().Err(err).Msg("descope client init failed, falling back to raw bearer IDs")
			descopeClient = nil
		}
	}

	return authMiddleware{
		responder: NewResponder(logger),
		profiles:  profiles,
		descope:   descopeClient,
	}
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}
		sessionToken := strings.TrimPrefix(authHeader, "Bearer ")
		if sessionToken == "" {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		userID, err := m.resolveUserID(r, sessionToken)
		if err != nil {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		role := "user"
		if profile, err := m.profiles.FindByID(userID); err == nil && profile != nil {
			role = profile.Role
		}

		ctx := ctxWithRole(ctxWithUserID(r.Context(), userID), role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m authMiddleware) resolveUserID(r *http.Request, sessionToken string) (uuid.UUID, error) {
	if m.descope == nil {
		return uuid.Parse(sessionToken)
	}

	ok, token, err := m.descope.Auth.ValidateSessionWithToken(r.Context(), sessionToken)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, errs.ErrUnauthorized
	}
	return uuid.Parse(token.ID)
}

// requireAdmin gates admin routes on the role resolved during authenticate.
func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxIsAdmin(r.Context()) {
			m.responder.WriteError(w, errs.NewForbiddenError("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
