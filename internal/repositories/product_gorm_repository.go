package repositories

import (
	"context"
	"errors"
	"fmt"

	"katalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// productFilters applies the optional category and price range filters of q.
func productFilters(q ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.CategoryID != nil {
			db = db.Where("category_id = ?", *q.CategoryID)
		}
		if q.MinPrice != nil {
			db = db.Where("price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			db = db.Where("price <= ?", *q.MaxPrice)
		}
		return db
	}
}

// List returns one page of products matching q, each with its category preloaded.
func (r *GORMProductRepository) List(ctx context.Context, q ProductQuery) (*Page[models.Product], error) {
	if q.SortBy != "" && !IsProductSortColumn(q.SortBy) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSort, q.SortBy)
	}
	q.Pagination = q.Pagination.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(productFilters(q)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	tx := r.db.WithContext(ctx).Scopes(productFilters(q)).Preload("Category")
	if q.SortBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: q.Descending()})
	}
	// id breaks ties so pages never overlap.
	tx = tx.Order("id asc")

	products := make([]models.Product, 0, q.PerPage)
	if err := tx.Offset(q.Offset()).Limit(q.PerPage).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &Page[models.Product]{Items: products, Total: total, Page: q.Page, PerPage: q.PerPage}, nil
}

// GetByID retrieves a single product with its category.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *GORMProductRepository) find(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes only the supplied fields and returns the stored product.
func (r *GORMProductRepository) Update(ctx context.Context, id uint, changes models.ProductChanges) (*models.Product, error) {
	var updated *models.Product
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
		if changes.CategoryID != nil {
			values["category_id"] = *changes.CategoryID
		}
		if changes.Name != nil {
			values["name"] = *changes.Name
		}
		if changes.Description != nil {
			values["description"] = *changes.Description
		}
		if changes.Price != nil {
			values["price"] = *changes.Price
		}
		if changes.StockQuantity != nil {
			values["stock_quantity"] = *changes.StockQuantity
		}
		if err := tx.Model(&models.Product{ID: id}).Updates(values).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		updated, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return nil
}
