package handlers

import (
	"katalog/internal/repositories"
	"katalog/internal/requests"
	"katalog/internal/resources"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes. Mutations run behind guard.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard []fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", guarded(guard, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(guard, h.HandleUpdateProduct)...)
	productRoutes.Patch("/:id", guarded(guard, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(guard, h.HandleDeleteProduct)...)
}

// HandleListProducts returns one filtered, sorted page of products.
//
// Query parameters: category_id, min_price, max_price, sort_by (name, price,
// stock_quantity, created_at), sort_dir (asc, desc), per_page and page.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var req requests.ListProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return respondError(c, errInvalidBody)
	}
	req.Normalize()
	if err := h.validate.Validate(&req); err != nil {
		return respondError(c, err)
	}
	query, err := req.Query()
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.service.ListProducts(c.UserContext(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewCollection(c, products, resources.Product))
}

// HandleGetProduct retrieves a single product with its category.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewItem(resources.Product(*product)))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req requests.CreateProductRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	product := req.Product()
	created, err := h.service.CreateProduct(c.UserContext(), &product)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resources.NewItem(resources.Product(*created)))
}

// HandleUpdateProduct applies the supplied fields to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}
	var req requests.UpdateProductRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, req.Changes())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewItem(resources.Product(*product)))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrProductNotFound)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
