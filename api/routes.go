package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func setupRoutes(router *chi.Mux, handlers routeHandlers, auth authMiddleware, startupTime time.Time) {
	// Public routes, no session required.
	router.Group(func(r chi.Router) {
		r.Get("/health", healthCheck(startupTime))

		r.Get("/projects", handlers.project.listProjects())
		r.Get("/projects/{slug}", handlers.project.getProjectBySlug())
		r.Get("/projects/{projectID}/comments", handlers.comment.listComments())
		r.Get("/profiles/{username}", handlers.profile.getProfileByUsername())
	})

	// Billing provider callback, authenticated by its own signed token.
	router.Post("/webhooks/billing", handlers.webhook.handleBillingEvent())

	// Routes for signed-in users.
	router.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)

		r.Get("/me/projects", handlers.project.getMyProjects())
		r.Put("/me/projects/draft", handlers.project.autosaveDraft())
		r.Post("/me/projects/submit", handlers.project.submitProject())
		r.Delete("/me/projects/{projectID}", handlers.project.deleteProject())
		r.Post("/me/projects/{projectID}/relaunch", handlers.project.requestRelaunch())

		r.Post("/projects/{projectID}/like", handlers.like.likeProject())
		r.Delete("/projects/{projectID}/like", handlers.like.unlikeProject())

		r.Post("/projects/{projectID}/comments", handlers.comment.createComment())
		r.Delete("/comments/{commentID}", handlers.comment.deleteComment())

		r.Get("/me/profile", handlers.profile.getMyProfile())
		r.Put("/me/profile", handlers.profile.updateProfile())

		r.Get("/me/notifications", handlers.notification.listNotifications())
		r.Put("/me/notifications/{notificationID}/read", handlers.notification.markRead())
		r.Put("/me/notifications/read-all", handlers.notification.markAllRead())

		r.Post("/reports", handlers.report.createReport())

		r.Post("/generate", handlers.generate.generateLaunchData())
		r.Post("/generate/cancel", handlers.generate.cancelGenerate())
	})

	// Admin-only moderation routes.
	router.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)
		r.Use(auth.requireAdmin)

		r.Get("/admin/reports", handlers.admin.listReports())
		r.Put("/admin/reports/{reportID}", handlers.admin.reviewReport())
		r.Get("/admin/relaunches", handlers.admin.listRelaunchRequests())
		r.Put("/admin/relaunches/{requestID}", handlers.admin.reviewRelaunch())
		r.Post("/admin/broadcast", handlers.admin.broadcast())
	})
}

func healthCheck(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Server has been up for: " + time.Since(startupTime).String()))
	}
}
