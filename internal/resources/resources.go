// Package resources shapes models into API responses.
package resources

import (
	"strconv"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

// Item wraps a single resource.
type Item[T any] struct {
	Data T `json:"data"`
}

// NewItem wraps data as {"data": ...}.
func NewItem[T any](data T) Item[T] {
	return Item[T]{Data: data}
}

// CategoryResource is the public shape of a category.
type CategoryResource struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category serializes a category.
func Category(c models.Category) CategoryResource {
	return CategoryResource{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ProductResource is the public shape of a product. Category is only present when loaded.
type ProductResource struct {
	ID            uint              `json:"id"`
	CategoryID    uint              `json:"category_id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Category      *CategoryResource `json:"category,omitempty"`
}

// Product serializes a product with its category when loaded.
func Product(p models.Product) ProductResource {
	r := ProductResource{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		category := Category(*p.Category)
		r.Category = &category
	}
	return r
}

// UserResource is the public shape of a user. The password hash is never exposed.
type UserResource struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User serializes a user.
func User(u models.User) UserResource {
	return UserResource{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Links points at the neighbouring pages of a collection.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta describes the position of a page within a collection.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
	LastPage    int    `json:"last_page"`
	From        *int   `json:"from"`
	To          *int   `json:"to"`
	Path        string `json:"path"`
}

// Collection is one page of resources.
type Collection[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// NewCollection serializes page with convert. Links keep every query parameter of the
// current request and only replace "page".
func NewCollection[M, R any](c *fiber.Ctx, page *repositories.Page[M], convert func(M) R) Collection[R] {
	data := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, convert(item))
	}

	lastPage := 1
	if page.PerPage > 0 && page.Total > 0 {
		lastPage = int((page.Total + int64(page.PerPage) - 1) / int64(page.PerPage))
	}

	meta := Meta{
		CurrentPage: page.Page,
		PerPage:     page.PerPage,
		Total:       page.Total,
		LastPage:    lastPage,
		Path:        c.BaseURL() + c.Path(),
	}
	if len(data) > 0 {
		from := (page.Page-1)*page.PerPage + 1
		to := from + len(data) - 1
		meta.From, meta.To = &from, &to
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	c.Request().URI().QueryArgs().CopyTo(args)
	pageURL := func(n int) string {
		args.Set("page", strconv.Itoa(n))
		return meta.Path + "?" + args.String()
	}

	links := Links{First: pageURL(1), Last: pageURL(lastPage)}
	if page.Page > 1 {
		prev := pageURL(page.Page - 1)
		links.Prev = &prev
	}
	if page.Page < lastPage {
		next := pageURL(page.Page + 1)
		links.Next = &next
	}
	return Collection[R]{Data: data, Links: links, Meta: meta}
}
