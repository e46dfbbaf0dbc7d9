package models

import "time"

// NotificationType enumerates the event kinds that fan out to recipients
type NotificationType string

const (
	NotificationStoryLiked     NotificationType = "STORY_LIKED"
	NotificationStoryCommented NotificationType = "STORY_COMMENTED"
	NotificationCommentReplied NotificationType = "COMMENT_REPLIED"
	NotificationNewFollower    NotificationType = "NEW_FOLLOWER"
)

// DefaultNotificationRetention is how long notifications are kept before the
// retention sweep removes them.
const DefaultNotificationRetention = 30 * 24 * time.Hour

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"type" gorm:"type:varchar(32);not null;index"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	ActorID     uint             `json:"actor_id" gorm:"not null;index"`
	StoryID     *uint            `json:"story_id,omitempty" gorm:"index"`
	CommentID   *uint            `json:"comment_id,omitempty"`
	Read        bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// Event is the input to the notification dispatcher. Events whose recipient
// equals the actor are dropped silently.
type Event struct {
	Type        NotificationType
	RecipientID uint
	ActorID     uint
	StoryID     *uint
	CommentID   *uint
}
