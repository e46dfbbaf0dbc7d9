package repositories

import (
	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations.
// CreateReaction must surface gorm.ErrDuplicatedKey when the composite
// unique constraint rejects a concurrent duplicate insert.
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	DeleteReaction(storyID, userID uint, rtype models.ReactionType) (bool, error)
	HasReacted(storyID, userID uint, rtype models.ReactionType) (bool, error)
	CountByStory(storyID uint, rtype models.ReactionType) (int64, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction inserts a reaction row. A duplicate (story, user, type)
// insert fails with gorm.ErrDuplicatedKey (TranslateError is enabled on the
// connection).
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

// DeleteReaction removes the (story, user, type) row and reports whether a
// row existed.
func (r *PostgresReactionRepository) DeleteReaction(storyID, userID uint, rtype models.ReactionType) (bool, error) {
	res := r.db.Where("story_id = ? AND user_id = ? AND type = ?", storyID, userID, rtype).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasReacted checks whether the user has an active reaction of the type
func (r *PostgresReactionRepository) HasReacted(storyID, userID uint, rtype models.ReactionType) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).
		Where("story_id = ? AND user_id = ? AND type = ?", storyID, userID, rtype).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStory returns the authoritative reaction count for a story and type
func (r *PostgresReactionRepository) CountByStory(storyID uint, rtype models.ReactionType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).
		Where("story_id = ? AND type = ?", storyID, rtype).
		Count(&count).Error
	return count, err
}
