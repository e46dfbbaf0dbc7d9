package services

import (
	"errors"
	"strings"
	"time"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StoryService enforces the story lifecycle: DRAFT -> PUBLISHED -> ARCHIVED,
// publish-time validation, author-only mutation and explicit delete cascade.
type StoryService struct {
	stories        repositories.StoryRepository
	users          repositories.UserRepository
	taxonomy       repositories.TaxonomyRepository
	trendingWindow time.Duration
	pages          pageBounds
	sanitizer      *bluemonday.Policy
	log            *zap.Logger
}

// NewStoryService creates a new StoryService. A trendingWindow of zero falls
// back to models.DefaultTrendingWindow; non-positive page bounds fall back
// to the models defaults.
func NewStoryService(
	storyRepo repositories.StoryRepository,
	userRepo repositories.UserRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	trendingWindow time.Duration,
	pageDefault, pageMax int,
	log *zap.Logger,
) *StoryService {
	if trendingWindow <= 0 {
		trendingWindow = models.DefaultTrendingWindow
	}
	return &StoryService{
		stories:        storyRepo,
		users:          userRepo,
		taxonomy:       taxonomyRepo,
		trendingWindow: trendingWindow,
		pages:          newPageBounds(pageDefault, pageMax),
		sanitizer:      bluemonday.UGCPolicy(),
		log:            log,
	}
}

func validTitle(title string) bool {
	n := len([]rune(strings.TrimSpace(title)))
	return n >= models.TitleMinLength && n <= models.TitleMaxLength
}

// Create validates the input and stores a new DRAFT story for the author
func (s *StoryService) Create(authorID uint, req models.CreateStoryRequest) (*models.Story, error) {
	if !validTitle(req.Title) {
		return nil, apperrors.Validation("title must be between %d and %d characters",
			models.TitleMinLength, models.TitleMaxLength)
	}
	body := s.sanitizer.Sanitize(req.Body)
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.Validation("body must not be empty")
	}

	if _, err := s.users.GetUserByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", authorID)
		}
		return nil, err
	}

	story := &models.Story{
		Title:       strings.TrimSpace(req.Title),
		Body:        body,
		Status:      models.StoryStatusDraft,
		AuthorID:    authorID,
		ReadingTime: models.ComputeReadingTime(body),
	}

	if req.Category != "" {
		category, err := s.taxonomy.GetOrCreateCategory(req.Category)
		if err != nil {
			return nil, err
		}
		story.CategoryID = &category.ID
	}
	if len(req.Tags) > 0 {
		tags, err := s.taxonomy.GetOrCreateTags(req.Tags)
		if err != nil {
			return nil, err
		}
		story.Tags = tags
	}

	if err := s.stories.CreateStory(story); err != nil {
		return nil, err
	}
	return story, nil
}

// Update applies partial edits to a story. Only the author may edit, the
// reading time is recomputed whenever the body changes, and an edit may
// never shrink a PUBLISHED story below the publishable minimum.
func (s *StoryService) Update(storyID, requesterID uint, req models.UpdateStoryRequest) (*models.Story, error) {
	story, err := s.getStory(storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != requesterID {
		return nil, apperrors.Authorization("only the author may edit story %d", storyID)
	}

	if req.Title != nil {
		if !validTitle(*req.Title) {
			return nil, apperrors.Validation("title must be between %d and %d characters",
				models.TitleMinLength, models.TitleMaxLength)
		}
		story.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		body := s.sanitizer.Sanitize(*req.Body)
		if strings.TrimSpace(body) == "" {
			return nil, apperrors.Validation("body must not be empty")
		}
		story.Body = body
		story.ReadingTime = models.ComputeReadingTime(body)
		if story.Status == models.StoryStatusPublished && !story.IsPublishable() {
			return nil, apperrors.InvalidState(
				"a published story's body must stay at least %d characters",
				models.MinPublishableLength)
		}
	}
	if req.Category != nil {
		if *req.Category == "" {
			story.CategoryID = nil
			story.Category = nil
		} else {
			category, err := s.taxonomy.GetOrCreateCategory(*req.Category)
			if err != nil {
				return nil, err
			}
			story.CategoryID = &category.ID
			story.Category = category
		}
	}

	// Resolve tags before saving so the field edits and the association
	// replace commit as one unit of work.
	var tags *[]models.Tag
	if req.Tags != nil {
		resolved, err := s.taxonomy.GetOrCreateTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}
	if err := s.stories.UpdateStory(story, tags); err != nil {
		return nil, err
	}
	return story, nil
}

// Publish moves a DRAFT story to PUBLISHED. The published timestamp is set
// only on the first transition; the operation is idempotent with respect to
// the timestamp.
func (s *StoryService) Publish(storyID, requesterID uint) (*models.Story, error) {
	story, err := s.getStory(storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != requesterID {
		return nil, apperrors.Authorization("only the author may publish story %d", storyID)
	}
	if story.Status != models.StoryStatusDraft {
		return nil, apperrors.InvalidState("story %d is %s, only drafts can be published", storyID, story.Status)
	}
	if !story.IsPublishable() {
		return nil, apperrors.InvalidState("story body must be at least %d characters to publish",
			models.MinPublishableLength)
	}

	story.Status = models.StoryStatusPublished
	if story.PublishedAt == nil {
		now := time.Now()
		story.PublishedAt = &now
	}
	if err := s.stories.UpdateStory(story, nil); err != nil {
		return nil, err
	}
	s.log.Info("story published",
		zap.Uint("story_id", story.ID), zap.Uint("author_id", story.AuthorID))
	return story, nil
}

// Archive moves a PUBLISHED story to ARCHIVED. Counters are kept.
func (s *StoryService) Archive(storyID, requesterID uint) (*models.Story, error) {
	return s.transition(storyID, requesterID, models.StoryStatusPublished, models.StoryStatusArchived)
}

// Unarchive restores an ARCHIVED story to PUBLISHED. The original published
// timestamp is preserved.
func (s *StoryService) Unarchive(storyID, requesterID uint) (*models.Story, error) {
	return s.transition(storyID, requesterID, models.StoryStatusArchived, models.StoryStatusPublished)
}

func (s *StoryService) transition(storyID, requesterID uint, from, to models.StoryStatus) (*models.Story, error) {
	story, err := s.getStory(storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != requesterID {
		return nil, apperrors.Authorization("only the author may change story %d", storyID)
	}
	if story.Status != from {
		return nil, apperrors.InvalidState("story %d is %s, expected %s", storyID, story.Status, from)
	}
	story.Status = to
	if err := s.stories.UpdateStory(story, nil); err != nil {
		return nil, err
	}
	return story, nil
}

// Delete removes a story and everything hanging off it: comments,
// reactions, notifications and tag links. Allowed for the author or an
// admin.
func (s *StoryService) Delete(storyID, requesterID uint) error {
	story, err := s.getStory(storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != requesterID {
		requester, err := s.users.GetUserByID(requesterID)
		if err != nil || !requester.IsAdmin() {
			return apperrors.Authorization("only the author or an admin may delete story %d", storyID)
		}
	}
	if err := s.stories.DeleteStoryCascade(storyID); err != nil {
		return err
	}
	s.log.Info("story deleted",
		zap.Uint("story_id", storyID), zap.Uint("requester_id", requesterID))
	return nil
}

// GetByID retrieves a story with its associations
func (s *StoryService) GetByID(storyID uint) (*models.Story, error) {
	return s.getStory(storyID)
}

// RecordView bumps the story's view counter. Plain increment: views are a
// popularity signal and may be approximate under concurrency.
func (s *StoryService) RecordView(storyID uint) error {
	return s.stories.IncrementViewCount(storyID)
}

// NormalizePage clamps a page request to the configured bounds
func (s *StoryService) NormalizePage(page models.PageSpec) models.PageSpec {
	return s.pages.normalize(page)
}

// ListPublished returns a page of published stories in the given ordering
func (s *StoryService) ListPublished(sort models.SortMode, page models.PageSpec) ([]models.Story, int64, error) {
	if sort == "" {
		sort = models.SortNewest
	}
	if !sort.Valid() {
		return nil, 0, apperrors.Validation("unknown sort mode %q", sort)
	}
	page = s.pages.normalize(page)
	criteria := models.SearchCriteria{Sort: sort}
	if sort == models.SortTrending {
		criteria.TrendingSince = time.Now().Add(-s.trendingWindow)
	}
	return s.stories.Search(criteria, page)
}

// ListByAuthor returns a page of an author's stories, optionally filtered
// by lifecycle status. Drafts are included; this is the author's own shelf,
// access control over whose shelf may be read belongs to the caller.
func (s *StoryService) ListByAuthor(authorID uint, status *models.StoryStatus, page models.PageSpec) ([]models.Story, int64, error) {
	page = s.pages.normalize(page)
	return s.stories.ListByAuthor(authorID, status, page)
}

func (s *StoryService) getStory(storyID uint) (*models.Story, error) {
	story, err := s.stories.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("story %d not found", storyID)
		}
		return nil, err
	}
	return story, nil
}
