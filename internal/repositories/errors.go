package repositories

import "errors"

// Sentinel errors returned by every repository implementation. Callers match them with errors.Is.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has products")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidSort      = errors.New("invalid sort column")
)
