package repository

import (
	"context"

	"delivery-service/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository is the gorm-backed category store.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository constructs a repository bound to the given database handle.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category and returns it with its assigned id.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}
