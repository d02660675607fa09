// Package seed fills an empty catalog with demo data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DemoCategories          = 5
	DemoProductsPerCategory = 10
)

var (
	categoryWords = []string{"tools", "garden", "kitchen", "office", "outdoor", "toys", "audio", "books"}
	productWords  = []string{"hammer", "lamp", "kettle", "stapler", "tent", "puzzle", "speaker", "notebook", "brush", "clock", "mug", "drill"}
	sentences     = []string{
		"Built to last for everyday use.",
		"A customer favourite this season.",
		"Lightweight and easy to carry.",
		"Comes with a one year warranty.",
		"Made from recycled materials.",
	}
)

// Demo creates DemoCategories categories with DemoProductsPerCategory products each,
// unless the store already holds categories. It reports whether anything was seeded.
func Demo(ctx context.Context, categories repositories.CategoryRepository, products repositories.ProductRepository) (bool, error) {
	count, err := categories.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		log.Printf("Skipping demo data: %d categories already stored", count)
		return false, nil
	}

	for i := 0; i < DemoCategories; i++ {
		category := demoCategory()
		if err := categories.Create(ctx, &category); err != nil {
			return false, fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
		for j := 0; j < DemoProductsPerCategory; j++ {
			product := demoProduct(category.ID)
			if err := products.Create(ctx, &product); err != nil {
				return false, fmt.Errorf("failed to seed product %s: %w", product.Name, err)
			}
		}
		log.Printf("Seeded category: %s (ID: %d)", category.Name, category.ID)
	}
	return true, nil
}

func pick(words []string) string {
	return words[rand.Intn(len(words))]
}

func demoCategory() models.Category {
	description := pick(sentences)
	return models.Category{
		Name:        pick(categoryWords) + "_" + uuid.NewString()[:5],
		Description: &description,
	}
}

func demoProduct(categoryID uint) models.Product {
	description := pick(sentences)
	// 1.00 to 100.00 in whole cents.
	cents := 100 + rand.Int63n(9901)
	return models.Product{
		CategoryID:    categoryID,
		Name:          pick(productWords),
		Description:   &description,
		Price:         decimal.New(cents, -2),
		StockQuantity: rand.Intn(101),
	}
}
