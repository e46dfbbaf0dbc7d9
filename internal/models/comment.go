package models

import "time"

// Validation bounds for comment content
const (
	CommentMinLength = 1
	CommentMaxLength = 1000
)

// Comment represents a comment on a story. A comment with a nil
// ParentCommentID is top-level; otherwise it is a single-level reply whose
// parent must itself be a top-level comment of the same story.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	StoryID         uint      `json:"story_id" gorm:"not null;index"`
	AuthorID        uint      `json:"author_id" gorm:"not null;index"`
	Author          *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty" gorm:"index"`
	Body            string    `json:"body" gorm:"size:1000;not null"`
	Edited          bool      `json:"edited" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsReply reports whether the comment is a reply to another comment
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body            string `json:"body" validate:"required,min=1,max=1000"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}
