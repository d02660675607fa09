package services

import (
	"context"

	"katalog/internal/events"
	"katalog/internal/models"
	"katalog/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	notifier *events.Notifier
}

// NewCategoryService creates a new CategoryService. notifier may be nil.
func NewCategoryService(repo repositories.CategoryRepository, notifier *events.Notifier) *CategoryService {
	return &CategoryService{
		repo:     repo,
		notifier: notifier,
	}
}

// ListCategories returns one page of categories.
func (s *CategoryService) ListCategories(ctx context.Context, page repositories.Pagination) (*repositories.Page[models.Category], error) {
	return s.repo.List(ctx, page)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.repo.Create(ctx, category); err != nil {
		return err
	}
	s.notifier.Notify("category", events.Created, category.ID)
	return nil
}

// UpdateCategory applies changes to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, changes models.CategoryChanges) (*models.Category, error) {
	category, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if !changes.IsEmpty() {
		s.notifier.Notify("category", events.Updated, id)
	}
	return category, nil
}

// DeleteCategory deletes a category. Categories that still have products are kept
// and repositories.ErrCategoryInUse is returned.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify("category", events.Deleted, id)
	return nil
}
