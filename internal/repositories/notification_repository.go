package repositories

import (
	"time"

	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	ListByRecipient(recipientID uint, page models.PageSpec) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteOlderThan(recipientID uint, cutoff time.Time) (int64, error)
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateNotification persists a notification row
func (r *PostgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationByID retrieves a single notification
func (r *PostgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (r *PostgresNotificationRepository) ListByRecipient(recipientID uint, page models.PageSpec) ([]models.Notification, int64, error) {
	q := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&notifications).Error
	return notifications, total, err
}

// GetUnreadCount returns the number of unread notifications for a recipient
func (r *PostgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips the read flag on one notification
func (r *PostgresNotificationRepository) MarkAsRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("read", true).Error
}

// MarkAllAsRead flips the read flag on all of a recipient's unread rows
func (r *PostgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Update("read", true).Error
}

// DeleteOlderThan purges a recipient's notifications created before the
// cutoff and returns how many rows were removed.
func (r *PostgresNotificationRepository) DeleteOlderThan(recipientID uint, cutoff time.Time) (int64, error) {
	res := r.db.Where("recipient_id = ? AND created_at < ?", recipientID, cutoff).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
