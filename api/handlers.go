package api

import (
	"github.com/launchit-app/launchit/backend/config"
	"github.com/launchit-app/launchit/backend/database"
	"github.com/launchit-app/launchit/backend/services"
)

// routeHandlers collects every handler the router mounts.
type routeHandlers struct {
	project      *projectHandler
	comment      *commentHandler
	like         *likeHandler
	profile      *profileHandler
	notification *notificationHandler
	report       *reportHandler
	admin        *adminHandler
	generate     *generateHandler
	webhook      *webhookHandler
}

// initializeHandlers builds the service layer on top of the repositories and
// hands each handler exactly the collaborators it needs.
func initializeHandlers(db database.Database, deps Dependencies, cfg map[string]string) routeHandlers {
	slugs := services.NewSlugGenerator(db.ProjectRepo())
	notifier := services.NewNotifier(db.NotificationRepo())
	submitter := services.NewSubmitter(
		db.ProjectRepo(),
		db.DeletedProjectRepo(),
		db.LikeRepo(),
		db.ProfileRepo(),
		db.RelaunchRequestRepo(),
		slugs,
		deps.Media,
		notifier,
	)
	comments := services.NewComments(db.CommentRepo(), db.ProjectRepo(), notifier)

	return routeHandlers{
		project:      newProjectHandler(db.ProjectRepo(), db.LikeRepo(), submitter, slugs, deps.Media),
		comment:      newCommentHandler(comments),
		like:         newLikeHandler(db.LikeRepo(), db.ProjectRepo(), notifier),
		profile:      newProfileHandler(db.ProfileRepo()),
		notification: newNotificationHandler(db.NotificationRepo()),
		report:       newReportHandler(db.ReportRepo(), db.ProjectRepo(), db.CommentRepo()),
		admin:        newAdminHandler(db.ReportRepo(), db.RelaunchRequestRepo(), db.ProjectRepo(), db.ProfileRepo(), notifier),
		generate:     newGenerateHandler(deps.Generator),
		webhook:      newWebhookHandler(db.ProjectRepo(), config.GetString(cfg, "BILLING_WEBHOOK_SECRET", "")),
	}
}
