package requests

import (
	"strings"

	"katalog/internal/models"
	"katalog/internal/validation"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	CategoryID    *uint    `json:"category_id" validate:"required,gt=0"`
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"required,gte=0"`
}

// Messages returns the custom validation messages.
func (CreateProductRequest) Messages() validation.Messages {
	return productMessages()
}

// Normalize trims the name. Call it before validating.
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Product builds the product to store.
func (r CreateProductRequest) Product() models.Product {
	return models.Product{
		CategoryID:    *r.CategoryID,
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Price:         decimal.NewFromFloat(*r.Price).Round(2),
		StockQuantity: *r.StockQuantity,
	}
}

// UpdateProductRequest is the body of PUT /products/:id. Absent fields are kept;
// supplied fields follow the create rules.
type UpdateProductRequest struct {
	CategoryID    *uint    `json:"category_id" validate:"omitnil,gt=0"`
	Name          *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitnil,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitnil,gte=0"`
}

// Messages returns the custom validation messages.
func (UpdateProductRequest) Messages() validation.Messages {
	m := productMessages()
	m["name.min"] = "Please provide a product name."
	return m
}

// Normalize trims the name. Call it before validating.
func (r *UpdateProductRequest) Normalize() {
	trimPtr(r.Name)
}

// Changes returns the fields to update.
func (r UpdateProductRequest) Changes() models.ProductChanges {
	changes := models.ProductChanges{
		CategoryID:    r.CategoryID,
		Description:   r.Description,
		StockQuantity: r.StockQuantity,
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		changes.Name = &name
	}
	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price).Round(2)
		changes.Price = &price
	}
	return changes
}

func productMessages() validation.Messages {
	return validation.Messages{
		"category_id.required":    "Please select a category.",
		"category_id.gt":          "Please select a category.",
		"category_id.type":        "The category must be referenced by its numeric id.",
		"name.required":           "Please provide a product name.",
		"name.max":                "Product name may not exceed 255 characters.",
		"name.type":               "Product name must be text.",
		"description.type":        "Description must be text if provided.",
		"price.required":          "A price is required.",
		"price.gte":               "Price cannot be negative.",
		"price.type":              "The price must be a valid number.",
		"stock_quantity.required": "Please specify how many items are in stock.",
		"stock_quantity.gte":      "Stock quantity cannot be negative.",
		"stock_quantity.type":     "Stock quantity must be a whole number.",
	}
}

// CategoryNotFoundMessage is reported on category_id when the referenced category does not exist.
const CategoryNotFoundMessage = "The selected category does not exist."
