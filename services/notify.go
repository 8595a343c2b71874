package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/launchit-app/launchit/backend/models"
)

// Notifier writes fire-and-forget notification rows. Every method is
// best-effort: failures are logged and swallowed so side effects can never
// block the operation that triggered them.
type Notifier struct {
	store  NotificationStore
	logger zerolog.Logger
}

func NewNotifier(store NotificationStore) *Notifier {
	return &Notifier{
		store:  store,
		logger: log.With().Str("service", "notifier").Logger(),
	}
}

func (n *Notifier) Notify(userID uuid.UUID, notificationType, title, body string) {
	err := n.store.Add(&models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		n.logger.Warn().Err(err).
			Str("type", notificationType).
			Str("userID", userID.String()).
			Msg("notification insert failed")
	}
}

// Broadcast fans one message out to every given user.
func (n *Notifier) Broadcast(userIDs []uuid.UUID, title, body string) {
	now := time.Now()
	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, &models.Notification{
			ID:        uuid.New(),
			UserID:    id,
			Type:      models.NotificationBroadcast,
			Title:     title,
			Body:      body,
			CreatedAt: now,
		})
	}
	if err := n.store.AddBatch(notifications); err != nil {
		n.logger.Warn().Err(err).Int("recipients", len(userIDs)).Msg("broadcast insert failed")
	}
}
