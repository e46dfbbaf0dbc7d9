package services

import (
	"errors"
	"strings"
	"time"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"gorm.io/gorm"
)

// SearchService composes the optional discovery filters into a single
// repository query. Only PUBLISHED stories are ever eligible; an author
// handle that resolves to nobody yields an empty page, never an ignored
// filter.
type SearchService struct {
	stories        repositories.StoryRepository
	users          repositories.UserRepository
	trendingWindow time.Duration
	pages          pageBounds
}

// NewSearchService creates a new SearchService. A trendingWindow of zero
// falls back to models.DefaultTrendingWindow; non-positive page bounds fall
// back to the models defaults.
func NewSearchService(
	storyRepo repositories.StoryRepository,
	userRepo repositories.UserRepository,
	trendingWindow time.Duration,
	pageDefault, pageMax int,
) *SearchService {
	if trendingWindow <= 0 {
		trendingWindow = models.DefaultTrendingWindow
	}
	return &SearchService{
		stories:        storyRepo,
		users:          userRepo,
		trendingWindow: trendingWindow,
		pages:          newPageBounds(pageDefault, pageMax),
	}
}

// NormalizePage clamps a page request to the configured bounds
func (s *SearchService) NormalizePage(page models.PageSpec) models.PageSpec {
	return s.pages.normalize(page)
}

// Search runs a filtered, ordered story query
func (s *SearchService) Search(filters models.SearchFilters, page models.PageSpec) ([]models.Story, int64, error) {
	criteria, empty, err := s.buildCriteria(filters)
	if err != nil {
		return nil, 0, err
	}
	if empty {
		return []models.Story{}, 0, nil
	}
	page = s.pages.normalize(page)
	return s.stories.Search(criteria, page)
}

// buildCriteria normalizes the filters and resolves the author handle. The
// empty flag short-circuits the query when no story can possibly match.
func (s *SearchService) buildCriteria(filters models.SearchFilters) (models.SearchCriteria, bool, error) {
	if filters.MinReadingTime < 0 || filters.MaxReadingTime < 0 {
		return models.SearchCriteria{}, false, apperrors.Validation("reading-time bounds must not be negative")
	}
	if filters.MinReadingTime > 0 && filters.MaxReadingTime > 0 &&
		filters.MinReadingTime > filters.MaxReadingTime {
		return models.SearchCriteria{}, false, apperrors.Validation("min reading time exceeds max")
	}
	if filters.PublishedAfter != nil && filters.PublishedBefore != nil &&
		filters.PublishedAfter.After(*filters.PublishedBefore) {
		return models.SearchCriteria{}, false, apperrors.Validation("publish-date range start is after its end")
	}

	sort := filters.Sort
	if sort == "" {
		sort = models.SortNewest
	}
	if !sort.Valid() {
		return models.SearchCriteria{}, false, apperrors.Validation("unknown sort mode %q", filters.Sort)
	}

	categories := make([]string, 0, len(filters.Categories))
	for _, name := range filters.Categories {
		if name = strings.TrimSpace(name); name != "" {
			categories = append(categories, name)
		}
	}

	criteria := models.SearchCriteria{
		Query:           strings.TrimSpace(filters.Query),
		Categories:      categories,
		MinReadingTime:  filters.MinReadingTime,
		MaxReadingTime:  filters.MaxReadingTime,
		PublishedAfter:  filters.PublishedAfter,
		PublishedBefore: filters.PublishedBefore,
		Sort:            sort,
	}
	if sort == models.SortTrending {
		criteria.TrendingSince = time.Now().Add(-s.trendingWindow)
	}

	if handle := strings.TrimSpace(filters.Author); handle != "" {
		author, err := s.users.GetUserByUsername(handle)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.SearchCriteria{}, true, nil
			}
			return models.SearchCriteria{}, false, err
		}
		criteria.AuthorID = &author.ID
	}

	return criteria, false, nil
}
