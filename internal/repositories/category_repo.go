package repositories

import (
	"context"

	"katalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context, page Pagination) (*Page[models.Category], error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, changes models.CategoryChanges) (*models.Category, error)
	// Delete refuses with ErrCategoryInUse while products still reference the category.
	Delete(ctx context.Context, id uint) error
}

var (
	_ CategoryRepository = (*GORMCategoryRepository)(nil)
	_ CategoryRepository = (*MemoryCategoryRepository)(nil)
)
