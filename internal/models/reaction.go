package models

import "time"

// ReactionType is the kind of reaction a user can place on a story
type ReactionType string

const (
	ReactionLike     ReactionType = "LIKE"
	ReactionBookmark ReactionType = "BOOKMARK"
)

// Valid reports whether the reaction type is one of the known kinds
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionBookmark
}

// Reaction is a (story, user, type) row. The composite unique index is the
// invariant that prevents double-counting: a concurrent duplicate insert is
// rejected by the database, not by read-then-write logic.
type Reaction struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	StoryID   uint         `json:"story_id" gorm:"not null;index;uniqueIndex:idx_story_user_reaction"`
	UserID    uint         `json:"user_id" gorm:"not null;index;uniqueIndex:idx_story_user_reaction"`
	Type      ReactionType `json:"type" gorm:"type:varchar(16);not null;uniqueIndex:idx_story_user_reaction"`
	CreatedAt time.Time    `json:"created_at"`
}

// ToggleResult is the outcome of a reaction toggle
type ToggleResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
