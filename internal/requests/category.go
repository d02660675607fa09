// Package requests holds the typed input schema of every API operation.
package requests

import (
	"strings"

	"katalog/internal/models"
	"katalog/internal/validation"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// Messages returns the custom validation messages.
func (CreateCategoryRequest) Messages() validation.Messages {
	return validation.Messages{
		"name.required":    "Please provide a category name.",
		"name.max":         "Category name may not exceed 255 characters.",
		"name.type":        "Category name must be text.",
		"description.type": "Description must be text if provided.",
	}
}

// Normalize trims the name. Call it before validating.
func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Category builds the category to store.
func (r CreateCategoryRequest) Category() models.Category {
	return models.Category{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
	}
}

// UpdateCategoryRequest is the body of PUT /categories/:id. Absent fields are kept.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
}

// Messages returns the custom validation messages.
func (UpdateCategoryRequest) Messages() validation.Messages {
	return validation.Messages{
		"name.min":         "Please provide a category name when updating.",
		"name.max":         "Category name may not exceed 255 characters.",
		"name.type":        "Category name must be text.",
		"description.type": "Description must be text if provided.",
	}
}

// Normalize trims the name. Call it before validating.
func (r *UpdateCategoryRequest) Normalize() {
	trimPtr(r.Name)
}

// Changes returns the fields to update.
func (r UpdateCategoryRequest) Changes() models.CategoryChanges {
	changes := models.CategoryChanges{Description: r.Description}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		changes.Name = &name
	}
	return changes
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
