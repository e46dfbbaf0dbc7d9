package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService fans events out into notification rows and owns their
// read-state and retention lifecycle. It never owns the clock: the retention
// sweep is invoked by an external scheduler.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	retention     time.Duration
	pages         pageBounds
	log           *zap.Logger
}

// NewNotificationService creates a new NotificationService. A retention of
// zero falls back to models.DefaultNotificationRetention; non-positive page
// bounds fall back to the models defaults.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	retention time.Duration,
	pageDefault, pageMax int,
	log *zap.Logger,
) *NotificationService {
	if retention <= 0 {
		retention = models.DefaultNotificationRetention
	}
	return &NotificationService{
		notifications: notificationRepo,
		users:         userRepo,
		retention:     retention,
		pages:         newPageBounds(pageDefault, pageMax),
		log:           log,
	}
}

// Dispatch persists a notification for the event's recipient. Events whose
// recipient equals the actor are dropped silently: users are never notified
// about their own actions.
func (s *NotificationService) Dispatch(event models.Event) error {
	if event.RecipientID == event.ActorID {
		return nil
	}

	notification := &models.Notification{
		Type:        event.Type,
		RecipientID: event.RecipientID,
		ActorID:     event.ActorID,
		StoryID:     event.StoryID,
		CommentID:   event.CommentID,
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return fmt.Errorf("dispatch %s notification: %w", event.Type, err)
	}
	return nil
}

// NormalizePage clamps a page request to the configured bounds
func (s *NotificationService) NormalizePage(page models.PageSpec) models.PageSpec {
	return s.pages.normalize(page)
}

// ListForUser returns a page of the user's notifications, newest first
func (s *NotificationService) ListForUser(userID uint, page models.PageSpec) ([]models.Notification, int64, error) {
	page = s.pages.normalize(page)
	return s.notifications.ListByRecipient(userID, page)
}

// UnreadCount returns the number of unread notifications for the user
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(userID)
}

// MarkRead marks one notification as read. Missing rows and rows belonging
// to another user are silent no-ops so that existence is never leaked.
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	notification, err := s.notifications.GetNotificationByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if notification.RecipientID != userID {
		return nil
	}
	return s.notifications.MarkAsRead(notificationID)
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notifications.MarkAllAsRead(userID)
}

// PurgeOlderThan deletes the user's notifications beyond the retention
// window and returns how many rows were removed.
func (s *NotificationService) PurgeOlderThan(userID uint, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = s.retention
	}
	cutoff := time.Now().Add(-retention)
	return s.notifications.DeleteOlderThan(userID, cutoff)
}

// SweepExpired runs the retention purge for every user. A failure for one
// user is logged and must not block the rest of the batch.
func (s *NotificationService) SweepExpired() {
	userIDs, err := s.users.ListUserIDs()
	if err != nil {
		s.log.Error("notification sweep: listing users failed", zap.Error(err))
		return
	}

	var purged int64
	for _, userID := range userIDs {
		n, err := s.PurgeOlderThan(userID, s.retention)
		if err != nil {
			s.log.Error("notification sweep: purge failed",
				zap.Uint("user_id", userID), zap.Error(err))
			continue
		}
		purged += n
	}
	s.log.Info("notification sweep finished",
		zap.Int("users", len(userIDs)), zap.Int64("purged", purged))
}
