package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"katalog/internal/models"
)

// MemoryStore is an in-process store shared by the memory repositories.
// One lock guards every table so the category/product reference check is atomic.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[uint]models.Category
	products   map[uint]models.Product
	users      map[uint]models.User
	nextID     map[string]uint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[uint]models.Category),
		products:   make(map[uint]models.Product),
		users:      make(map[uint]models.User),
		nextID:     make(map[string]uint),
	}
}

func (s *MemoryStore) allocate(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

// Categories returns a CategoryRepository backed by the store.
func (s *MemoryStore) Categories() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{store: s}
}

// Products returns a ProductRepository backed by the store.
func (s *MemoryStore) Products() *MemoryProductRepository {
	return &MemoryProductRepository{store: s}
}

// Users returns a UserRepository backed by the store.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

func paginate[T any](items []T, page Pagination) *Page[T] {
	page = page.Normalize()
	total := len(items)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return &Page[T]{Items: out, Total: int64(total), Page: page.Page, PerPage: page.PerPage}
}

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	store *MemoryStore
}

// List returns one page of categories ordered by ID.
func (r *MemoryCategoryRepository) List(_ context.Context, page Pagination) (*Page[models.Category], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, page), nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(_ context.Context, id uint) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
	}
	return &category, nil
}

// Count returns the number of stored categories.
func (r *MemoryCategoryRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.categories)), nil
}

// Create adds a new category.
func (r *MemoryCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	category.ID = r.store.allocate("categories")
	category.CreatedAt = now
	category.UpdatedAt = now
	r.store.categories[category.ID] = *category
	return nil
}

// Update modifies the supplied fields of an existing category.
func (r *MemoryCategoryRepository) Update(_ context.Context, id uint, changes models.CategoryChanges) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
	}
	if changes.IsEmpty() {
		return &category, nil
	}
	if changes.Name != nil {
		category.Name = *changes.Name
	}
	if changes.Description != nil {
		description := *changes.Description
		category.Description = &description
	}
	category.UpdatedAt = time.Now()
	r.store.categories[id] = category
	return &category, nil
}

// Delete removes a category that no product references.
func (r *MemoryCategoryRepository) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
	}
	for _, p := range r.store.products {
		if p.CategoryID == id {
			return fmt.Errorf("%w: category %d", ErrCategoryInUse, id)
		}
	}
	delete(r.store.categories, id)
	return nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	store *MemoryStore
}

// withCategory attaches a copy of the product's category. Callers hold the store lock.
func (r *MemoryProductRepository) withCategory(p models.Product) models.Product {
	if c, ok := r.store.categories[p.CategoryID]; ok {
		p.Category = &c
	} else {
		p.Category = nil
	}
	return p
}

func (q ProductQuery) matches(p models.Product) bool {
	if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	return true
}

// compareProducts orders a and b by column; it returns <0, 0 or >0.
func compareProducts(a, b models.Product, column string) int {
	switch column {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "price":
		return a.Price.Cmp(b.Price)
	case "stock_quantity":
		return a.StockQuantity - b.StockQuantity
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

// List returns one page of products matching q.
func (r *MemoryProductRepository) List(_ context.Context, q ProductQuery) (*Page[models.Product], error) {
	if q.SortBy != "" && !IsProductSortColumn(q.SortBy) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSort, q.SortBy)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if q.matches(p) {
			list = append(list, r.withCategory(p))
		}
	}
	desc := q.Descending()
	sort.Slice(list, func(i, j int) bool {
		if q.SortBy != "" {
			if c := compareProducts(list[i], list[j], q.SortBy); c != 0 {
				if desc {
					return c > 0
				}
				return c < 0
			}
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, q.Pagination), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	product = r.withCategory(product)
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[product.CategoryID]; !ok {
		return fmt.Errorf("failed to create product: %w: id %d", ErrCategoryNotFound, product.CategoryID)
	}
	now := time.Now()
	product.ID = r.store.allocate("products")
	product.CreatedAt = now
	product.UpdatedAt = now
	stored := *product
	stored.Category = nil
	r.store.products[product.ID] = stored
	return nil
}

// Update modifies the supplied fields of an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, id uint, changes models.ProductChanges) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	if !changes.IsEmpty() {
		if changes.CategoryID != nil {
			if _, ok := r.store.categories[*changes.CategoryID]; !ok {
				return nil, fmt.Errorf("failed to update product: %w: id %d", ErrCategoryNotFound, *changes.CategoryID)
			}
			product.CategoryID = *changes.CategoryID
		}
		if changes.Name != nil {
			product.Name = *changes.Name
		}
		if changes.Description != nil {
			description := *changes.Description
			product.Description = &description
		}
		if changes.Price != nil {
			product.Price = *changes.Price
		}
		if changes.StockQuantity != nil {
			product.StockQuantity = *changes.StockQuantity
		}
		product.UpdatedAt = time.Now()
		r.store.products[id] = product
	}
	product = r.withCategory(product)
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	delete(r.store.products, id)
	return nil
}

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	store *MemoryStore
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("failed to create user: username or email already exists")
		}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := time.Now()
	user.ID = r.store.allocate("users")
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) find(match func(models.User) bool, what string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, what)
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }, "username "+username)
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }, "email "+email)
}

// GetByID returns a user by ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id }, fmt.Sprintf("id %d", id))
}

// UpdateRole changes the role of an existing user.
func (r *MemoryUserRepository) UpdateRole(_ context.Context, id uint, role string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUserNotFound, id)
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	r.store.users[id] = user
	return nil
}
