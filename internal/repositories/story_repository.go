package repositories

import (
	"strings"

	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetStoryByID(id uint) (*models.Story, error)
	UpdateStory(story *models.Story, tags *[]models.Tag) error
	DeleteStoryCascade(id uint) error
	ListByAuthor(authorID uint, status *models.StoryStatus, page models.PageSpec) ([]models.Story, int64, error)
	Search(criteria models.SearchCriteria, page models.PageSpec) ([]models.Story, int64, error)
	IncrementViewCount(id uint) error
	SetLikeCount(id uint, count int64) error
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// CreateStory creates a new story
func (r *PostgresStoryRepository) CreateStory(story *models.Story) error {
	return r.db.Create(story).Error
}

// GetStoryByID retrieves a story with its author, category and tags
func (r *PostgresStoryRepository) GetStoryByID(id uint) (*models.Story, error) {
	var story models.Story
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").First(&story, id).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// UpdateStory persists all fields of an existing story and, when tags is
// non-nil, swaps the tag associations in the same transaction. A failing
// tag replace rolls the field edits back.
func (r *PostgresStoryRepository) UpdateStory(story *models.Story, tags *[]models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(story).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(story).Association("Tags").Replace(*tags); err != nil {
				return err
			}
			story.Tags = *tags
		}
		return nil
	})
}

// DeleteStoryCascade removes a story together with its comments, reactions,
// notifications and tag links in a single transaction. Cascade order matters
// only for readability; all rows reference the same story id.
func (r *PostgresStoryRepository) DeleteStoryCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM story_tags WHERE story_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Story{}, id).Error
	})
}

// ListByAuthor retrieves an author's stories, optionally filtered by status,
// newest-created first.
func (r *PostgresStoryRepository) ListByAuthor(authorID uint, status *models.StoryStatus, page models.PageSpec) ([]models.Story, int64, error) {
	q := r.db.Model(&models.Story{}).Where("author_id = ?", authorID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stories []models.Story
	err := q.Preload("Category").Preload("Tags").
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&stories).Error
	return stories, total, err
}

// Search composes the optional filters into one conjunctive query over
// PUBLISHED stories and applies the requested ordering.
func (r *PostgresStoryRepository) Search(criteria models.SearchCriteria, page models.PageSpec) ([]models.Story, int64, error) {
	q := r.db.Model(&models.Story{}).Where("stories.status = ?", models.StoryStatusPublished)

	if criteria.Query != "" {
		like := "%" + strings.ToLower(criteria.Query) + "%"
		q = q.Where("LOWER(stories.title) LIKE ? OR LOWER(stories.body) LIKE ?", like, like)
	}
	if len(criteria.Categories) > 0 {
		// OR within the category set, AND with everything else
		q = q.Joins("JOIN categories ON categories.id = stories.category_id").
			Where("categories.name IN ?", criteria.Categories)
	}
	if criteria.AuthorID != nil {
		q = q.Where("stories.author_id = ?", *criteria.AuthorID)
	}
	if criteria.MinReadingTime > 0 {
		q = q.Where("stories.reading_time >= ?", criteria.MinReadingTime)
	}
	if criteria.MaxReadingTime > 0 {
		q = q.Where("stories.reading_time <= ?", criteria.MaxReadingTime)
	}
	if criteria.PublishedAfter != nil {
		q = q.Where("stories.published_at >= ?", *criteria.PublishedAfter)
	}
	if criteria.PublishedBefore != nil {
		q = q.Where("stories.published_at <= ?", *criteria.PublishedBefore)
	}
	if criteria.Sort == models.SortTrending {
		q = q.Where("stories.published_at >= ?", criteria.TrendingSince)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch criteria.Sort {
	case models.SortPopular:
		q = q.Order("stories.like_count DESC").Order("stories.published_at DESC")
	case models.SortTrending:
		q = q.Order("stories.view_count DESC").Order("stories.published_at DESC")
	case models.SortReadingTime:
		q = q.Order("stories.reading_time ASC").Order("stories.published_at DESC")
	default: // SortNewest
		q = q.Order("stories.published_at DESC")
	}

	var stories []models.Story
	err := q.Preload("Author").Preload("Category").Preload("Tags").
		Offset(page.Offset()).Limit(page.Size).
		Find(&stories).Error
	return stories, total, err
}

// IncrementViewCount bumps the view counter. Views are a popularity signal,
// not a ledger: a plain increment is deliberately good enough.
func (r *PostgresStoryRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// SetLikeCount overwrites the denormalized like counter with the
// authoritative value recomputed from the reactions table.
func (r *PostgresStoryRepository) SetLikeCount(id uint, count int64) error {
	return r.db.Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn("like_count", count).Error
}
