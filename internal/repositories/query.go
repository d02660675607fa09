package repositories

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ProductSortColumns is the allow-list of columns a product listing can be ordered by.
var ProductSortColumns = []string{"name", "price", "stock_quantity", "created_at"}

// IsProductSortColumn reports whether column may be used to order products.
func IsProductSortColumn(column string) bool {
	for _, c := range ProductSortColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Pagination selects one page of a listing. Zero values fall back to page 1 and DefaultPerPage.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps the page to >= 1 and the page size to [1, MaxPerPage].
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage <= 0:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ProductQuery describes a filtered, sorted, paginated product listing.
// Nil filters are not applied.
type ProductQuery struct {
	CategoryID *uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string
	SortDir    string
	Pagination
}

// Descending reports whether the sort direction is descending.
func (q ProductQuery) Descending() bool {
	return strings.EqualFold(q.SortDir, SortDesc)
}

// Page is one page of a listing together with the total number of matching rows.
type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
}
