package models

import "time"

// Tag is a name-keyed label attached to stories (many-to-many). Tags never
// affect story invariants; they exist for filtering and aggregation only.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a name-keyed grouping a story belongs to (many-to-one)
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
