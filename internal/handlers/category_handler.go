package handlers

import (
	"katalog/internal/repositories"
	"katalog/internal/requests"
	"katalog/internal/resources"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validation.Validator
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, validate *validation.Validator) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the category routes. Mutations run behind guard.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guard []fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", guarded(guard, h.HandleCreateCategory)...)
	categoryRoutes.Put("/:id", guarded(guard, h.HandleUpdateCategory)...)
	categoryRoutes.Patch("/:id", guarded(guard, h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id", guarded(guard, h.HandleDeleteCategory)...)
}

// HandleListCategories returns one page of categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	var req requests.ListCategoriesRequest
	if err := c.QueryParser(&req); err != nil {
		return respondError(c, errInvalidBody)
	}
	req.Normalize()
	if err := h.validate.Validate(&req); err != nil {
		return respondError(c, err)
	}
	page, err := req.Pagination()
	if err != nil {
		return respondError(c, err)
	}

	categories, err := h.service.ListCategories(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewCollection(c, categories, resources.Category))
}

// HandleGetCategory retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrCategoryNotFound)
	if err != nil {
		return respondError(c, err)
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewItem(resources.Category(*category)))
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req requests.CreateCategoryRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	category := req.Category()
	if err := h.service.CreateCategory(c.UserContext(), &category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resources.NewItem(resources.Category(category)))
}

// HandleUpdateCategory applies the supplied fields to an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrCategoryNotFound)
	if err != nil {
		return respondError(c, err)
	}
	var req requests.UpdateCategoryRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, req.Changes())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewItem(resources.Category(*category)))
}

// HandleDeleteCategory deletes a category that no product references.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, repositories.ErrCategoryNotFound)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
