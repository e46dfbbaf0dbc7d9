package models

import "time"

// SortMode orders search and listing results
type SortMode string

const (
	SortNewest      SortMode = "newest"
	SortPopular     SortMode = "popular"
	SortTrending    SortMode = "trending"
	SortReadingTime SortMode = "reading_time"
)

// Valid reports whether the sort mode is a known ordering
func (m SortMode) Valid() bool {
	switch m {
	case SortNewest, SortPopular, SortTrending, SortReadingTime:
		return true
	}
	return false
}

// DefaultTrendingWindow is the rolling window for the trending ordering
const DefaultTrendingWindow = 7 * 24 * time.Hour

// SearchFilters is the independently-optional filter set for story search.
// Every supplied filter is ANDed; multiple categories are ORed among
// themselves. Zero values impose no constraint.
type SearchFilters struct {
	Query          string     `json:"query" query:"query"`
	Categories     []string   `json:"categories" query:"categories"`
	Author         string     `json:"author" query:"author"` // username handle
	MinReadingTime int        `json:"min_reading_time" query:"min_reading_time"`
	MaxReadingTime int        `json:"max_reading_time" query:"max_reading_time"`
	PublishedAfter *time.Time `json:"published_after" query:"published_after"`
	PublishedBefore *time.Time `json:"published_before" query:"published_before"`
	Sort           SortMode   `json:"sort" query:"sort"`
}

// SearchCriteria is the repository-level query produced from SearchFilters
// once the author handle has been resolved to an ID.
type SearchCriteria struct {
	Query           string
	Categories      []string
	AuthorID        *uint
	MinReadingTime  int
	MaxReadingTime  int
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
	Sort            SortMode
	TrendingSince   time.Time // lower publish bound applied for SortTrending
}
