package handlers

import (
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"go.uber.org/zap"
)

// Notifier records user-facing activity events as a side effect of another
// handler's successful state change. Emit failures never fail the triggering
// operation; they are logged and dropped.
type Notifier struct {
	repo repositories.NotificationRepository
	log  *zap.SugaredLogger
}

// NewNotifier creates a Notifier
func NewNotifier(repo repositories.NotificationRepository, log *zap.SugaredLogger) *Notifier {
	return &Notifier{repo: repo, log: log}
}

// Emit appends one notification row
func (n *Notifier) Emit(notification *models.Notification) {
	if err := n.repo.CreateNotification(notification); err != nil {
		n.log.Warnw("notification emit failed",
			"type", notification.Type,
			"recipient", notification.UserID,
			"error", err,
		)
	}
}
