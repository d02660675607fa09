package repositories

import (
	"context"

	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Products returned by List, GetByID and Update carry their category.
type ProductRepository interface {
	List(ctx context.Context, query ProductQuery) (*Page[models.Product], error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, changes models.ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

var (
	_ ProductRepository = (*GORMProductRepository)(nil)
	_ ProductRepository = (*MemoryProductRepository)(nil)
)
