package repositories

import (
	"context"
	"errors"
	"fmt"

	"katalog/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// List returns one page of categories ordered by ID.
func (r *GORMCategoryRepository) List(ctx context.Context, page Pagination) (*Page[models.Category], error) {
	page = page.Normalize()

	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, page.PerPage)
	if err := r.db.WithContext(ctx).Order("id asc").Offset(page.Offset()).Limit(page.PerPage).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &Page[models.Category]{Items: categories, Total: total, Page: page.Page, PerPage: page.PerPage}, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *GORMCategoryRepository) find(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// Count returns the number of stored categories.
func (r *GORMCategoryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return total, nil
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update writes only the supplied fields and returns the stored category.
func (r *GORMCategoryRepository) Update(ctx context.Context, id uint, changes models.CategoryChanges) (*models.Category, error) {
	var updated *models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			updated = current
			return nil
		}
		values := map[string]interface{}{}
		if changes.Name != nil {
			values["name"] = *changes.Name
		}
		if changes.Description != nil {
			values["description"] = *changes.Description
		}
		if err := tx.Model(&models.Category{ID: id}).Updates(values).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		updated, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deletes a category that no product references.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		var products int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to count products of category %d: %w", id, err)
		}
		if products > 0 {
			return fmt.Errorf("%w: category %d has %d products", ErrCategoryInUse, id, products)
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}
