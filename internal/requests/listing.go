package requests

import (
	"strconv"
	"strings"

	"katalog/internal/repositories"
	"katalog/internal/validation"

	"github.com/shopspring/decimal"
)

// ListCategoriesRequest holds the query string of GET /categories.
type ListCategoriesRequest struct {
	PerPage string `query:"per_page" validate:"omitempty,numeric"`
	Page    string `query:"page" validate:"omitempty,numeric"`
}

// Normalize trims every parameter. Call it before validating.
func (r *ListCategoriesRequest) Normalize() {
	r.PerPage = strings.TrimSpace(r.PerPage)
	r.Page = strings.TrimSpace(r.Page)
}

// Pagination converts the validated parameters. Out of range values are clamped.
func (r ListCategoriesRequest) Pagination() (repositories.Pagination, error) {
	return pagination(r.PerPage, r.Page)
}

// ListProductsRequest holds the query string of GET /products. Empty parameters are ignored.
type ListProductsRequest struct {
	CategoryID string `query:"category_id" validate:"omitempty,number"`
	MinPrice   string `query:"min_price" validate:"omitempty,numeric"`
	MaxPrice   string `query:"max_price" validate:"omitempty,numeric"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=name price stock_quantity created_at"`
	SortDir    string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	PerPage    string `query:"per_page" validate:"omitempty,numeric"`
	Page       string `query:"page" validate:"omitempty,numeric"`
}

// Messages returns the custom validation messages.
func (ListProductsRequest) Messages() validation.Messages {
	return validation.Messages{
		"sort_by.oneof":  "Products can only be sorted by name, price, stock_quantity or created_at.",
		"sort_dir.oneof": "The sort direction must be asc or desc.",
	}
}

// Normalize trims every parameter and lower-cases the sort options. Call it before validating.
func (r *ListProductsRequest) Normalize() {
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.MinPrice = strings.TrimSpace(r.MinPrice)
	r.MaxPrice = strings.TrimSpace(r.MaxPrice)
	r.SortBy = strings.ToLower(strings.TrimSpace(r.SortBy))
	r.SortDir = strings.ToLower(strings.TrimSpace(r.SortDir))
	r.PerPage = strings.TrimSpace(r.PerPage)
	r.Page = strings.TrimSpace(r.Page)
}

// Query converts the validated parameters into a repository query.
func (r ListProductsRequest) Query() (repositories.ProductQuery, error) {
	q := repositories.ProductQuery{SortBy: r.SortBy, SortDir: repositories.SortAsc}
	if r.SortDir != "" {
		q.SortDir = r.SortDir
	}

	if r.CategoryID != "" {
		id, err := strconv.ParseUint(r.CategoryID, 10, 0)
		if err != nil {
			return q, validation.NewError("category_id", "category_id must be a valid category id")
		}
		categoryID := uint(id)
		q.CategoryID = &categoryID
	}
	if r.MinPrice != "" {
		price, err := decimal.NewFromString(r.MinPrice)
		if err != nil {
			return q, validation.NewError("min_price", "min_price must be a valid number")
		}
		q.MinPrice = &price
	}
	if r.MaxPrice != "" {
		price, err := decimal.NewFromString(r.MaxPrice)
		if err != nil {
			return q, validation.NewError("max_price", "max_price must be a valid number")
		}
		q.MaxPrice = &price
	}

	page, err := pagination(r.PerPage, r.Page)
	if err != nil {
		return q, err
	}
	q.Pagination = page
	return q, nil
}

func pagination(perPage, page string) (repositories.Pagination, error) {
	var p repositories.Pagination
	if perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil {
			return p, validation.NewError("per_page", "per_page must be a valid number")
		}
		if n < 1 {
			n = 1
		}
		p.PerPage = n
	}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return p, validation.NewError("page", "page must be a valid number")
		}
		p.Page = n
	}
	return p.Normalize(), nil
}
