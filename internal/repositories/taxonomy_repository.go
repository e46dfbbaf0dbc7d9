package repositories

import (
	"errors"

	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// TaxonomyRepository defines the interface for tag and category lookups
type TaxonomyRepository interface {
	GetOrCreateTags(names []string) ([]models.Tag, error)
	GetOrCreateCategory(name string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	ListTags() ([]models.Tag, error)
}

// PostgresTaxonomyRepository implements TaxonomyRepository for PostgreSQL
type PostgresTaxonomyRepository struct {
	db *gorm.DB
}

// NewPostgresTaxonomyRepository creates a new PostgresTaxonomyRepository
func NewPostgresTaxonomyRepository(db *gorm.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

// GetOrCreateTags resolves tag names into rows, creating missing ones
func (r *PostgresTaxonomyRepository) GetOrCreateTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := r.db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			err = r.db.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetOrCreateCategory resolves a category name, creating it when missing
func (r *PostgresTaxonomyRepository) GetOrCreateCategory(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: name}
		err = r.db.Create(&category).Error
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryByName retrieves a category by its name
func (r *PostgresTaxonomyRepository) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories sorted by name
func (r *PostgresTaxonomyRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// ListTags returns all tags sorted by name
func (r *PostgresTaxonomyRepository) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}
