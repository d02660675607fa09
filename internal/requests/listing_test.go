package requests_test

import (
	"errors"
	"testing"

	"katalog/internal/repositories"
	"katalog/internal/requests"
	"katalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsRequest_Query(t *testing.T) {
	req := requests.ListProductsRequest{
		CategoryID: " 3 ",
		MinPrice:   "10",
		MaxPrice:   "30.5",
		SortBy:     "Price",
		SortDir:    "DESC",
		PerPage:    "0",
		Page:       "-2",
	}
	req.Normalize()
	require.NoError(t, validation.New().Validate(&req))

	q, err := req.Query()
	require.NoError(t, err)
	require.NotNil(t, q.CategoryID)
	assert.Equal(t, uint(3), *q.CategoryID)
	assert.Equal(t, "10", q.MinPrice.String())
	assert.Equal(t, "30.5", q.MaxPrice.String())
	assert.Equal(t, "price", q.SortBy)
	assert.True(t, q.Descending())
	assert.Equal(t, repositories.Pagination{Page: 1, PerPage: 1}, q.Pagination)
}

func TestListProductsRequest_Defaults(t *testing.T) {
	var req requests.ListProductsRequest
	req.Normalize()
	require.NoError(t, validation.New().Validate(&req))

	q, err := req.Query()
	require.NoError(t, err)
	assert.Nil(t, q.CategoryID)
	assert.Nil(t, q.MinPrice)
	assert.Empty(t, q.SortBy)
	assert.Equal(t, repositories.SortAsc, q.SortDir)
	assert.Equal(t, repositories.Pagination{Page: 1, PerPage: repositories.DefaultPerPage}, q.Pagination)
}

func TestListProductsRequest_Invalid(t *testing.T) {
	req := requests.ListProductsRequest{SortBy: "password", SortDir: "up", CategoryID: "tools"}
	req.Normalize()

	err := validation.New().Validate(&req)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Products can only be sorted by name, price, stock_quantity or created_at."}, verr.Fields["sort_by"])
	assert.Equal(t, []string{"The sort direction must be asc or desc."}, verr.Fields["sort_dir"])
	assert.Contains(t, verr.Fields, "category_id")
}

func TestProductRequests(t *testing.T) {
	categoryID := uint(2)
	price := 9.999
	stock := 4
	product := requests.CreateProductRequest{CategoryID: &categoryID, Name: "  Hammer ", Price: &price, StockQuantity: &stock}.Product()
	assert.Equal(t, "Hammer", product.Name)
	assert.Equal(t, "10", product.Price.String())

	name := " Mallet "
	changes := requests.UpdateProductRequest{Name: &name}.Changes()
	require.NotNil(t, changes.Name)
	assert.Equal(t, "Mallet", *changes.Name)
	assert.Nil(t, changes.Price)
	assert.False(t, changes.IsEmpty())
	assert.True(t, requests.UpdateProductRequest{}.Changes().IsEmpty())
}

func TestListCategoriesRequest_Pagination(t *testing.T) {
	req := requests.ListCategoriesRequest{PerPage: " -1 ", Page: "-2"}
	req.Normalize()
	require.NoError(t, validation.New().Validate(&req))

	p, err := req.Pagination()
	require.NoError(t, err)
	assert.Equal(t, repositories.Pagination{Page: 1, PerPage: 1}, p)

	req = requests.ListCategoriesRequest{Page: "last"}
	err = validation.New().Validate(&req)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "page")
}

func TestBlankNamesFailValidation(t *testing.T) {
	v := validation.New()
	categoryID := uint(2)
	price := 1.0
	stock := 1
	blank := " \t "

	tests := []struct {
		name    string
		request interface {
			Normalize()
		}
		message string
	}{
		{"create category", &requests.CreateCategoryRequest{Name: "   "}, "Please provide a category name."},
		{"update category", &requests.UpdateCategoryRequest{Name: &blank}, "Please provide a category name when updating."},
		{"create product", &requests.CreateProductRequest{CategoryID: &categoryID, Name: "  ", Price: &price, StockQuantity: &stock}, "Please provide a product name."},
		{"update product", &requests.UpdateProductRequest{Name: &blank}, "Please provide a product name."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize()
			err := v.Validate(tt.request)
			var verr *validation.Error
			require.True(t, errors.As(err, &verr), "blank name passed validation")
			assert.Equal(t, []string{tt.message}, verr.Fields["name"])
		})
	}
}
