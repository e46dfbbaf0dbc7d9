package models

import (
	"math"
	"strings"
	"time"
)

// StoryStatus is the lifecycle state of a story
type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "DRAFT"
	StoryStatusPublished StoryStatus = "PUBLISHED"
	StoryStatusArchived  StoryStatus = "ARCHIVED"
)

// Validation bounds for story content
const (
	TitleMinLength       = 3
	TitleMaxLength       = 255
	MinPublishableLength = 100 // minimum body length (runes) for a story to be publishable
	WordsPerMinute       = 200
)

// Story represents a long-form story authored by a user (PostgreSQL)
type Story struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Body        string      `json:"body" gorm:"type:text;not null"`
	Status      StoryStatus `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT';index"`
	AuthorID    uint        `json:"author_id" gorm:"not null;index"`
	Author      *User       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CategoryID  *uint       `json:"category_id,omitempty" gorm:"index"`
	Category    *Category   `json:"category,omitempty"`
	Tags        []Tag       `json:"tags,omitempty" gorm:"many2many:story_tags;"`
	ReadingTime int         `json:"reading_time" gorm:"not null;default:1"` // minutes, derived from body
	ViewCount   int64       `json:"view_count" gorm:"not null;default:0"`
	LikeCount   int64       `json:"like_count" gorm:"not null;default:0"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	PublishedAt *time.Time  `json:"published_at,omitempty" gorm:"index"` // set exactly once, on first publish
}

// IsPublishable reports whether the story body meets the minimum publishable length
func (s *Story) IsPublishable() bool {
	return len([]rune(s.Body)) >= MinPublishableLength
}

// ComputeReadingTime derives the reading time in minutes for a body:
// whitespace-separated word count at WordsPerMinute, rounded up, floor of 1.
func ComputeReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / float64(WordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// CreateStoryRequest defines the request body for creating a new story
type CreateStoryRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=255"`
	Body     string   `json:"body" validate:"required"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdateStoryRequest defines the request body for updating an existing story.
// Nil fields are left untouched.
type UpdateStoryRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Body     *string   `json:"body,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}
