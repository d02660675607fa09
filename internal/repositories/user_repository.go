package repositories

import (
	"context"

	"katalog/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
}

var (
	_ UserRepository = (*GORMUserRepository)(nil)
	_ UserRepository = (*MemoryUserRepository)(nil)
)
