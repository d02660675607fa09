package services

import (
	"context"
	"errors"
	"fmt"

	"katalog/internal/events"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/requests"
	"katalog/internal/validation"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	notifier   *events.Notifier
}

// NewProductService creates a new ProductService. notifier may be nil.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, notifier *events.Notifier) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		notifier:   notifier,
	}
}

// ListProducts returns one filtered, sorted page of products.
func (s *ProductService) ListProducts(ctx context.Context, query repositories.ProductQuery) (*repositories.Page[models.Product], error) {
	return s.repo.List(ctx, query)
}

// GetProductByID retrieves a single product with its category.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a product after checking that its category exists.
// The returned product carries its category.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := s.requireCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.notifier.Notify("product", events.Created, product.ID)

	created, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product %d: %w", product.ID, err)
	}
	return created, nil
}

// UpdateProduct applies changes to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, changes models.ProductChanges) (*models.Product, error) {
	// The product is resolved first so a missing product is reported before a bad category.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if changes.CategoryID != nil {
		if err := s.requireCategory(ctx, *changes.CategoryID); err != nil {
			return nil, err
		}
	}
	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if !changes.IsEmpty() {
		s.notifier.Notify("product", events.Updated, id)
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify("product", events.Deleted, id)
	return nil
}

// requireCategory reports a missing category as a validation failure on category_id.
func (s *ProductService) requireCategory(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return validation.NewError("category_id", requests.CategoryNotFoundMessage)
		}
		return err
	}
	return nil
}
