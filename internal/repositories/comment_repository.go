package repositories

import (
	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteCommentWithReplies(id uint) error
	ListTopLevelByStory(storyID uint, page models.PageSpec) ([]models.Comment, int64, error)
	ListReplies(parentCommentID uint) ([]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment persists an edited comment
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCommentWithReplies removes a comment, its direct replies, and every
// notification referencing any of them in one transaction.
func (r *PostgresCommentRepository) DeleteCommentWithReplies(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(
			"comment_id = ? OR comment_id IN (SELECT id FROM comments WHERE parent_comment_id = ?)",
			id, id,
		).Delete(&models.Notification{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("parent_comment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// ListTopLevelByStory retrieves a story's top-level comments, newest first
func (r *PostgresCommentRepository) ListTopLevelByStory(storyID uint, page models.PageSpec) ([]models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{}).
		Where("story_id = ? AND parent_comment_id IS NULL", storyID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Preload("Author").
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&comments).Error
	return comments, total, err
}

// ListReplies retrieves the direct replies of a comment in conversation order
func (r *PostgresCommentRepository) ListReplies(parentCommentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.Preload("Author").
		Where("parent_comment_id = ?", parentCommentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}
